package telegram

import (
	"context"
	"errors"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/abhisek/quizline/internal/quiz"
)

// API is the part of *tgbotapi.BotAPI the bot needs.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Config configures a Bot.
type Config struct {
	// ChatID pins the bot to one chat. Zero lets the first chat that sends
	// /quiz claim it.
	ChatID        int64
	FeedbackDelay time.Duration
	Logger        *zap.Logger
}

type loadResult struct {
	gen       int
	questions []quiz.Question
	err       error
}

type advanceEvent struct {
	gen      int
	question int
}

// Bot runs one quiz for one chat. All controller calls happen on the
// goroutine running Run; loads and feedback timers report back over
// channels and are tagged with the quiz generation so a restart drops
// stale results.
type Bot struct {
	api    API
	source quiz.Source
	cfg    Config
	log    *zap.Logger

	chatID    int64
	gen       int
	ctrl      *quiz.Controller
	view      *view
	messageID int

	loaded  chan loadResult
	advance chan advanceEvent
	done    chan struct{}
}

var _ quiz.Timer = (*Bot)(nil)

// Connect logs in with token and returns the API client.
func Connect(token string, debug bool) (*tgbotapi.BotAPI, error) {
	if token == "" {
		return nil, errors.New("telegram bot token is required (set telegram.token or TELEGRAM_BOT_TOKEN)")
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}
	api.Debug = debug
	return api, nil
}

func New(api API, source quiz.Source, cfg Config) *Bot {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Bot{
		api:     api,
		source:  source,
		cfg:     cfg,
		log:     cfg.Logger.Named("telegram"),
		chatID:  cfg.ChatID,
		loaded:  make(chan loadResult, 1),
		advance: make(chan advanceEvent, 8),
		done:    make(chan struct{}),
	}
}

// Run polls for updates until ctx is cancelled or the update channel closes.
func (b *Bot) Run(ctx context.Context) error {
	defer close(b.done)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	b.log.Info("bot started", zap.Int64("chat", b.chatID))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, upd)
		case res := <-b.loaded:
			b.handleLoaded(res)
		case ev := <-b.advance:
			b.handleAdvance(ev)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, upd tgbotapi.Update) {
	switch {
	case upd.CallbackQuery != nil:
		b.handleCallback(ctx, upd.CallbackQuery)
	case upd.Message != nil && upd.Message.IsCommand():
		b.handleCommand(ctx, upd.Message)
	}
}

// owns reports whether chatID may drive the quiz, claiming the bot for it
// when unclaimed.
func (b *Bot) owns(chatID int64, claim bool) bool {
	if b.chatID == 0 && claim {
		b.chatID = chatID
		b.log.Info("chat claimed", zap.Int64("chat", chatID))
	}
	return b.chatID == chatID
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	switch msg.Command() {
	case "start", "quiz":
		if !b.owns(chatID, true) {
			b.send(tgbotapi.NewMessage(chatID, "This bot is busy with another chat."))
			return
		}
		b.start(ctx)
	case "repeat":
		if !b.owns(chatID, false) || b.ctrl == nil {
			return
		}
		if err := b.ctrl.Redraw(); err != nil {
			b.log.Debug("redraw ignored", zap.Error(err))
			return
		}
		b.render()
	default:
		if b.owns(chatID, false) {
			b.send(tgbotapi.NewMessage(chatID, "Send /quiz to start a new quiz."))
		}
	}
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil || cq.Message.Chat == nil || !b.owns(cq.Message.Chat.ID, false) {
		b.answer(cq.ID, "")
		return
	}

	if cq.Data == restartData {
		b.answer(cq.ID, "")
		b.start(ctx)
		return
	}

	a, ok := parseAnswer(cq.Data)
	if !ok || b.ctrl == nil {
		b.answer(cq.ID, "")
		return
	}
	if a.gen != b.gen {
		b.log.Debug("answer from earlier quiz ignored", zap.String("data", cq.Data))
		b.answer(cq.ID, "That quiz is over. Answer the latest question.")
		return
	}

	out, err := b.ctrl.Submit(a.question, a.option)
	switch {
	case err != nil:
		b.log.Debug("answer ignored", zap.Error(err), zap.String("data", cq.Data))
		b.answer(cq.ID, "That question is already answered.")
	case out.Correct:
		b.answer(cq.ID, quiz.FeedbackCorrect)
	default:
		b.answer(cq.ID, quiz.FeedbackIncorrect)
	}
	b.render()
}

// start throws away any running quiz and loads a fresh question set.
func (b *Bot) start(ctx context.Context) {
	b.gen++
	b.view = &view{}
	b.messageID = 0

	var opts []quiz.ControllerOption
	if b.cfg.FeedbackDelay > 0 {
		opts = append(opts, quiz.WithFeedbackDelay(b.cfg.FeedbackDelay))
	}
	opts = append(opts, quiz.WithLogger(b.log.With(zap.Int("quiz", b.gen))))
	b.ctrl = quiz.NewController(b.view, b, opts...)

	if err := b.ctrl.Begin(); err != nil {
		b.log.Error("begin load", zap.Error(err))
		return
	}
	b.send(tgbotapi.NewMessage(b.chatID, "Loading questions..."))

	gen, src := b.gen, b.source
	go func() {
		questions, err := src.Load(ctx)
		select {
		case b.loaded <- loadResult{gen: gen, questions: questions, err: err}:
		case <-b.done:
		}
	}()
}

func (b *Bot) handleLoaded(res loadResult) {
	if res.gen != b.gen || b.ctrl == nil {
		return
	}
	// Failures reach the chat through view.ShowError.
	_ = b.ctrl.Loaded(res.questions, res.err)
	b.render()
}

func (b *Bot) handleAdvance(ev advanceEvent) {
	if ev.gen != b.gen || b.ctrl == nil {
		return
	}
	if err := b.ctrl.Advance(ev.question); err != nil {
		b.log.Debug("advance ignored", zap.Error(err))
		return
	}
	b.render()
}

// AfterFeedback implements quiz.Timer.
func (b *Bot) AfterFeedback(delay time.Duration, question int) {
	ev := advanceEvent{gen: b.gen, question: question}
	time.AfterFunc(delay, func() {
		select {
		case b.advance <- ev:
		case <-b.done:
		}
	})
}

// render pushes pending view changes to the chat.
func (b *Bot) render() {
	v := b.view
	snap := b.ctrl.Snapshot()

	switch {
	case v.err != nil:
		b.send(tgbotapi.NewMessage(b.chatID, "Could not load questions: "+v.err.Error()))
		v.err = nil
	case v.fresh:
		msg := tgbotapi.NewMessage(b.chatID, v.text(snap.Index, snap.Total))
		msg.ReplyMarkup = v.keyboard(b.gen, snap.Index)
		if sent, ok := b.send(msg); ok {
			b.messageID = sent.MessageID
		}
	case v.dirty && b.messageID != 0:
		edit := tgbotapi.NewEditMessageTextAndMarkup(b.chatID, b.messageID,
			v.text(snap.Index, snap.Total), v.keyboard(b.gen, snap.Index))
		b.send(edit)
	}
	v.fresh, v.dirty = false, false

	if v.completed {
		v.completed = false
		msg := tgbotapi.NewMessage(b.chatID, summaryText(v.score, v.total))
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("Play again", restartData),
			),
		)
		b.send(msg)
	}
}

func (b *Bot) send(c tgbotapi.Chattable) (tgbotapi.Message, bool) {
	msg, err := b.api.Send(c)
	if err != nil {
		b.log.Warn("send failed", zap.Error(err))
		return msg, false
	}
	return msg, true
}

func (b *Bot) answer(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		b.log.Debug("answer callback", zap.Error(err))
	}
}
