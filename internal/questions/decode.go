package questions

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/quizline/internal/llm"
	"github.com/abhisek/quizline/internal/quiz"
)

type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// FormatFor picks a format from a file name or URL path. Unknown
// extensions report ok=false.
func FormatFor(name string) (Format, bool) {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	}
	return FormatJSON, false
}

// formatForContentType maps an HTTP Content-Type header to a format.
func formatForContentType(header string) (Format, bool) {
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return FormatJSON, false
	}
	switch {
	case strings.HasSuffix(mediaType, "json"):
		return FormatJSON, true
	case strings.HasSuffix(mediaType, "yaml"):
		return FormatYAML, true
	}
	return FormatJSON, false
}

// Decode parses a question document, checks it against DocumentSchema and
// then checks every record with quiz.ValidateSet.
func Decode(data []byte, format Format) ([]quiz.Question, error) {
	raw := data
	if format == FormatYAML {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		var err error
		if raw, err = json.Marshal(doc); err != nil {
			return nil, fmt.Errorf("convert yaml: %w", err)
		}
	}

	if err := DocumentSchema.Validate(raw); err != nil {
		var inv *llm.InvalidResponseError
		if errors.As(err, &inv) {
			return nil, fmt.Errorf("invalid question document: %w", inv.Err)
		}
		return nil, err
	}

	var set []quiz.Question
	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		if err := json.Unmarshal(raw, &set); err != nil {
			return nil, fmt.Errorf("decode questions: %w", err)
		}
	} else {
		var doc struct {
			Questions []quiz.Question `json:"questions"`
		}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode questions: %w", err)
		}
		set = doc.Questions
	}

	if err := quiz.ValidateSet(set); err != nil {
		return nil, err
	}
	return set, nil
}

// Encode writes set as an indented JSON array, the format FileSource reads.
func Encode(w io.Writer, set []quiz.Question) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(set)
}
