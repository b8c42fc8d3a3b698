package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
)

// Logging returns middleware that logs update processing time under a
// per-update correlation id.
func Logging() bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			start := time.Now()
			requestID := uuid.NewString()

			updateType := "unknown"
			var chatID int64
			var userID int64

			if update.Message != nil {
				updateType = "message"
				chatID = update.Message.Chat.ID
				if update.Message.From != nil {
					userID = update.Message.From.ID
				}
			}

			next(ctx, b, update)

			slog.Debug("update processed",
				"request_id", requestID,
				"type", updateType,
				"chat_id", chatID,
				"user_id", userID,
				"duration", time.Since(start),
			)
		}
	}
}
