package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/ShakhCo/trading-bot/internal/config"
)

// handleUsers lists registered users with a per-user usage preview.
// Admin only.
func (h *Handler) handleUsers(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	if !h.cfg.IsAdmin(update.Message.From.ID) {
		return
	}

	chatID := update.Message.Chat.ID

	users, err := h.users.List()
	if err != nil {
		slog.Error("list users", "error", err)
		h.tg.Send(ctx, chatID, "❌ 'users' directory not found.")
		return
	}

	response := fmt.Sprintf("👥 Total registered users: %d", len(users))

	now := time.Now()
	var preview []string
	for i, user := range users {
		if i >= config.UsersPreviewLimit {
			break
		}
		profile := h.chat.ProfileSummary(user.TelegramID, now)

		display := fmt.Sprintf("ID: %d", user.TelegramID)
		if user.Username != "" {
			display = "@" + user.Username
		}
		preview = append(preview, fmt.Sprintf("• %s: $%s, %d ta xabar",
			display, profile.TotalCost.StringFixed(3), profile.MessageCount))
	}

	if len(preview) > 0 {
		response += "\n\n📋 User usage:\n" + strings.Join(preview, "\n")
	}

	h.tg.Send(ctx, chatID, response)
}
