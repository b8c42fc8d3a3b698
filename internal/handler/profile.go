package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func (h *Handler) handleProfile(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	user := update.Message.From
	now := time.Now()
	profile := h.chat.ProfileSummary(user.ID, now)

	firstName := user.FirstName
	if firstName == "" {
		firstName = "Nomaʼlum"
	}

	usageLine := fmt.Sprintf("<b>- %s:</b> $%s", now.Format("January"), profile.TotalCost.StringFixed(3))
	if profile.MessageCount > 0 {
		usageLine += fmt.Sprintf(", jami %d ta xabar", profile.MessageCount)
	}

	text := fmt.Sprintf(
		"<blockquote>👤 <b>Profil</b></blockquote>\n"+
			"<b>- Ism:</b> %s\n"+
			"<b>- Holat:</b> 🟢 Faol\n\n"+
			"<blockquote>💰 <b>Hisob-kitob</b></blockquote>\n"+
			"%s",
		firstName, usageLine,
	)

	h.tg.Send(ctx, update.Message.Chat.ID, text)
}
