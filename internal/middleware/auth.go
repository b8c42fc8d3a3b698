package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/ShakhCo/trading-bot/internal/domain"
	"github.com/ShakhCo/trading-bot/internal/service"
)

// Auth returns middleware that registers first-time users before the
// message reaches any handler. Registration failures are logged and the
// message is still handled.
func Auth(users *service.Users) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if update.Message != nil && update.Message.From != nil {
				from := update.Message.From
				if !users.Registered(from.ID) {
					err := users.Register(domain.User{
						TelegramID:   from.ID,
						FirstName:    from.FirstName,
						LastName:     from.LastName,
						Username:     from.Username,
						RegisteredAt: time.Now().UTC(),
					})
					if err != nil {
						slog.Error("register user", "error", err, "user_id", from.ID)
					}
				}
			}
			next(ctx, b, update)
		}
	}
}
