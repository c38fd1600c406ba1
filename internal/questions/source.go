package questions

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/abhisek/quizline/internal/quiz"
)

// maxDocumentSize bounds what a source will read.
const maxDocumentSize = 4 << 20

// ErrDocumentTooLarge is returned for documents over maxDocumentSize.
var ErrDocumentTooLarge = fmt.Errorf("question document larger than %d bytes", maxDocumentSize)

// readDocument reads all of r, failing instead of truncating when r holds
// more than maxDocumentSize bytes.
func readDocument(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxDocumentSize {
		return nil, ErrDocumentTooLarge
	}
	return data, nil
}

// Options tunes the sources built by Open.
type Options struct {
	// Timeout bounds one HTTP fetch. Zero means 15s.
	Timeout time.Duration
	// Client overrides the HTTP client, mostly for tests.
	Client *http.Client
}

// Open returns an HTTPSource for http(s) URLs and a FileSource otherwise.
func Open(location string, opts Options) (quiz.Source, error) {
	if location == "" {
		return nil, fmt.Errorf("no question source given")
	}

	if u, err := url.Parse(location); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		client := opts.Client
		if client == nil {
			timeout := opts.Timeout
			if timeout <= 0 {
				timeout = 15 * time.Second
			}
			client = &http.Client{Timeout: timeout}
		}
		return &HTTPSource{URL: location, Client: client}, nil
	}

	format, ok := FormatFor(location)
	if !ok {
		return nil, fmt.Errorf("%s: unsupported file type (want .json, .yaml or .yml)", location)
	}
	return &FileSource{Path: location, Format: format}, nil
}

// FileSource reads a question document from disk.
type FileSource struct {
	Path   string
	Format Format
}

func (s *FileSource) Name() string { return s.Path }

func (s *FileSource) Load(ctx context.Context) ([]quiz.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, &quiz.LoadError{Source: s.Path, Err: err}
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, &quiz.LoadError{Source: s.Path, Err: err}
	}
	defer f.Close()

	data, err := readDocument(f)
	if err != nil {
		return nil, &quiz.LoadError{Source: s.Path, Err: err}
	}
	set, err := Decode(data, s.Format)
	if err != nil {
		return nil, &quiz.LoadError{Source: s.Path, Err: err}
	}
	return set, nil
}

// HTTPSource fetches a question document with a GET request.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s *HTTPSource) Name() string { return s.URL }

func (s *HTTPSource) Load(ctx context.Context) ([]quiz.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, &quiz.LoadError{Source: s.URL, Err: err}
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &quiz.LoadError{Source: s.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &quiz.LoadError{Source: s.URL, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	data, err := readDocument(resp.Body)
	if err != nil {
		return nil, &quiz.LoadError{Source: s.URL, Err: fmt.Errorf("read body: %w", err)}
	}

	format, ok := formatForContentType(resp.Header.Get("Content-Type"))
	if !ok {
		format, _ = FormatFor(req.URL.Path)
	}
	set, err := Decode(data, format)
	if err != nil {
		return nil, &quiz.LoadError{Source: s.URL, Err: err}
	}
	return set, nil
}
