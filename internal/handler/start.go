package handler

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	text := fmt.Sprintf(
		"👋 Assalamu alaykum %s!\n\n"+
			"Men sun'iy intellekt asosida ishlaydigan chat botman.\n"+
			"Hozircha matnli xabarlar va rasmlarga javob bera olaman.\n\n"+
			"Savoling bormi yoki rasm yubormoqchisan? Marhamat, yozaver 😉",
		update.Message.From.FirstName,
	)

	h.tg.Send(ctx, update.Message.Chat.ID, text)
}
