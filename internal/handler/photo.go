package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot/models"

	"github.com/ShakhCo/trading-bot/internal/domain"
)

// handlePhoto relays the highest-resolution photo to the trading API's
// upload endpoint and dispatches the returned image URL (plus any
// caption) into the chat pipeline. The whole relay runs inside the
// user's session scope, so a busy user's photo is dropped before any
// external call and the typing indicator covers the upload.
func (h *Handler) handlePhoto(ctx context.Context, msg *models.Message) {
	err := h.chat.WithSession(ctx, msg.From.ID, msg.Chat.ID, func(ctx context.Context) error {
		photo := msg.Photo[len(msg.Photo)-1]

		data, err := h.tg.DownloadPhoto(ctx, photo.FileID)
		if err != nil {
			return fmt.Errorf("download photo: %w", err)
		}

		imageURL, err := h.uploader.Upload(ctx, msg.From.ID, data)
		if err != nil {
			return err
		}

		return h.chat.Complete(ctx, chatRequest(msg, imageURL))
	})

	switch {
	case err == nil:
	case errors.Is(err, domain.ErrSessionBusy):
		h.tg.Delete(ctx, msg.Chat.ID, msg.ID)
	case errors.Is(err, domain.ErrUploadFailed):
		slog.Error("upload photo", "error", err, "user_id", msg.From.ID)
		h.tg.Send(ctx, msg.Chat.ID, "❌ Failed to upload the photo.")
	case errors.Is(err, domain.ErrDailyQuotaExceeded):
		h.tg.Send(ctx, msg.Chat.ID, quotaReply)
	default:
		slog.Error("photo pipeline failed", "error", err, "user_id", msg.From.ID)
		h.tg.Send(ctx, msg.Chat.ID, failureReply)
	}
}
