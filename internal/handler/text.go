package handler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/ShakhCo/trading-bot/internal/domain"
	"github.com/ShakhCo/trading-bot/internal/service"
)

const (
	quotaReply   = "🛑 Kunlik limitga yetdingiz (100 ta xabar). Iltimos, ertaga yana urinib ko‘ring."
	failureReply = "❌ Xatolik yuz berdi. Birozdan so‘ng qayta urinib ko‘ring."
)

// HandleMessage routes non-command messages: photos go through the
// upload relay, everything else straight into the chat pipeline.
func (h *Handler) HandleMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	if len(msg.Photo) > 0 {
		h.handlePhoto(ctx, msg)
		return
	}
	if msg.Text == "" {
		return
	}

	err := h.chat.HandleText(ctx, chatRequest(msg, ""))
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrSessionBusy):
		// Second message while a dispatch is in flight: drop it silently.
		h.tg.Delete(ctx, msg.Chat.ID, msg.ID)
	case errors.Is(err, domain.ErrDailyQuotaExceeded):
		h.tg.Send(ctx, msg.Chat.ID, quotaReply)
	default:
		slog.Error("chat pipeline failed", "error", err, "user_id", msg.From.ID)
		h.tg.Send(ctx, msg.Chat.ID, failureReply)
	}
}

// chatRequest maps a Telegram message onto a pipeline request.
func chatRequest(msg *models.Message, imageURL string) service.ChatRequest {
	text := msg.Text
	if msg.Caption != "" {
		text = msg.Caption
	}

	req := service.ChatRequest{
		UserID:    msg.From.ID,
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Text:      text,
		ImageURL:  imageURL,
		FirstName: msg.From.FirstName,
		Now:       time.Now(),
	}
	if msg.ReplyToMessage != nil {
		req.ReplyToID = msg.ReplyToMessage.ID
	}
	return req
}
