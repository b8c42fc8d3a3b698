package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ShakhCo/trading-bot/internal/config"
	"github.com/ShakhCo/trading-bot/internal/domain"
	"github.com/ShakhCo/trading-bot/internal/history"
)

// Dispatcher sends an assembled context to the completion API.
type Dispatcher interface {
	Dispatch(ctx context.Context, model string, turns []Turn, firstName string, now time.Time) (*Completion, error)
}

// Messenger delivers replies on the chat surface.
type Messenger interface {
	Reply(ctx context.Context, chatID int64, replyTo int, text string) (int, error)
}

// ChatService runs the conversation pipeline: context assembly, quota
// enforcement, dispatch, and accounting, with a typing indicator in
// flight and a per-user busy token around the whole thing.
type ChatService struct {
	store      *history.Store
	dispatcher Dispatcher
	messenger  Messenger
	sessions   *Sessions
	presence   *Presence
	model      string
}

func NewChatService(store *history.Store, dispatcher Dispatcher, messenger Messenger, sessions *Sessions, presence *Presence, model string) *ChatService {
	return &ChatService{
		store:      store,
		dispatcher: dispatcher,
		messenger:  messenger,
		sessions:   sessions,
		presence:   presence,
		model:      model,
	}
}

// ChatRequest carries one incoming user message through the pipeline.
// Now is threaded explicitly so quota checks and timestamps stay
// deterministic under test.
type ChatRequest struct {
	UserID    int64
	ChatID    int64
	MessageID int
	Text      string
	ImageURL  string
	ReplyToID int // 0 = not a reply
	FirstName string
	Now       time.Time
}

// WithSession runs fn while holding the user's busy token, with the
// typing indicator signaling. It returns domain.ErrSessionBusy without
// running fn when a dispatch is already in flight for the user; callers
// use it to fence slow pre-dispatch work (like the photo relay) behind
// the same guard as the pipeline itself. Token and indicator are torn
// down on every exit path.
func (s *ChatService) WithSession(ctx context.Context, userID, chatID int64, fn func(context.Context) error) error {
	if !s.sessions.TryAcquire(userID) {
		return domain.ErrSessionBusy
	}
	defer s.sessions.Release(userID)

	stopTyping := s.presence.Start(ctx, chatID)
	defer stopTyping()

	return fn(ctx)
}

// HandleText runs the full pipeline for one message. It returns
// domain.ErrSessionBusy when a dispatch is already in flight for the user
// and domain.ErrDailyQuotaExceeded when today's quota is spent; in both
// cases nothing is written and nothing is dispatched.
func (s *ChatService) HandleText(ctx context.Context, req ChatRequest) error {
	return s.WithSession(ctx, req.UserID, req.ChatID, func(ctx context.Context) error {
		return s.Complete(ctx, req)
	})
}

// Complete runs quota, context assembly, dispatch, and accounting. The
// caller must already hold the user's session via WithSession.
func (s *ChatService) Complete(ctx context.Context, req ChatRequest) error {
	log := s.store.ReadAll(req.UserID, req.Now)

	if countUserMessages(log, req.Now) >= config.DailyMessageLimit {
		return domain.ErrDailyQuotaExceeded
	}

	newTurns := newUserTurns(req)
	turns := buildContext(log, req.ReplyToID, newTurns)

	reqCtx, cancel := context.WithTimeout(ctx, config.RequestTimeout)
	defer cancel()

	completion, err := s.dispatcher.Dispatch(reqCtx, s.model, turns, req.FirstName, req.Now)
	if err != nil {
		return fmt.Errorf("dispatch: %w", err)
	}

	price := PriceFor(s.model)
	inputCost := price.InputCost(completion.InputTokens)
	outputCost := price.OutputCost(completion.OutputTokens)

	// Tokens and price go on the first turn only, so a message split into
	// text + image is not double counted.
	for i, content := range newTurns {
		rec := domain.Record{
			Role:      domain.RoleUser,
			Content:   content,
			MessageID: req.MessageID,
			ModelName: s.model,
			Timestamp: req.Now,
		}
		if i == 0 {
			rec.Tokens = completion.InputTokens
			rec.Price = domain.NewPrice(inputCost)
		}
		if err := s.store.Append(req.UserID, req.Now, rec); err != nil {
			return fmt.Errorf("record user turn: %w", err)
		}
	}

	replyID, err := s.messenger.Reply(ctx, req.ChatID, req.MessageID, completion.Text)
	if err != nil {
		return fmt.Errorf("send reply: %w", err)
	}

	// The assistant record carries the delivered reply's Telegram id so
	// future reply-threading lookups can find it.
	assistant := domain.Record{
		Role:      domain.RoleAssistant,
		Content:   domain.TextContent(completion.Text),
		MessageID: replyID,
		ModelName: s.model,
		Tokens:    completion.OutputTokens,
		Price:     domain.NewPrice(outputCost),
		Timestamp: req.Now,
	}
	if err := s.store.Append(req.UserID, req.Now, assistant); err != nil {
		return fmt.Errorf("record assistant turn: %w", err)
	}

	return nil
}

// countUserMessages counts role=user records whose timestamp falls on the
// same calendar day as now.
func countUserMessages(log []domain.Record, now time.Time) int {
	y, m, d := now.Date()
	count := 0
	for _, rec := range log {
		if rec.Role != domain.RoleUser {
			continue
		}
		ry, rm, rd := rec.Timestamp.In(now.Location()).Date()
		if ry == y && rm == m && rd == d {
			count++
		}
	}
	return count
}

// newUserTurns builds the new turn(s) for the incoming message: an image
// splits into an optional caption turn plus a separate image turn.
func newUserTurns(req ChatRequest) []domain.Content {
	if req.ImageURL != "" {
		var turns []domain.Content
		if req.Text != "" {
			turns = append(turns, domain.TextContent(req.Text))
		}
		return append(turns, domain.ImageContent(req.ImageURL))
	}
	return []domain.Content{domain.TextContent(req.Text)}
}

// buildContext assembles the ordered turn list: trailing window, then
// reply-thread injection, then the new turn(s). Metadata is stripped;
// only role and content go to the model.
func buildContext(log []domain.Record, replyToID int, newTurns []domain.Content) []Turn {
	window := log
	if len(window) > config.ContextWindow {
		window = window[len(window)-config.ContextWindow:]
	}

	turns := make([]Turn, 0, len(window)+len(newTurns)+2)
	for _, rec := range window {
		turns = append(turns, Turn{Role: rec.Role, Content: rec.Content.Value()})
	}

	if replyToID != 0 {
		for i, rec := range log {
			if rec.MessageID != replyToID {
				continue
			}
			turns = append(turns, Turn{Role: rec.Role, Content: rec.Content.Value()})
			// A paired user/assistant exchange shares one external id;
			// pull in the second half when it is adjacent.
			if i+1 < len(log) && log[i+1].MessageID == replyToID {
				next := log[i+1]
				turns = append(turns, Turn{Role: next.Role, Content: next.Content.Value()})
			}
			break
		}
	}

	for _, content := range newTurns {
		turns = append(turns, Turn{Role: domain.RoleUser, Content: content.Value()})
	}
	return turns
}
