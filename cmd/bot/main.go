package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/ShakhCo/trading-bot/internal/config"
	"github.com/ShakhCo/trading-bot/internal/handler"
	"github.com/ShakhCo/trading-bot/internal/history"
	"github.com/ShakhCo/trading-bot/internal/middleware"
	"github.com/ShakhCo/trading-bot/internal/service"
	"github.com/ShakhCo/trading-bot/internal/telegram"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize stores and services
	store := history.NewStore(cfg.HistoryDir)
	users := service.NewUsers(cfg.UsersDir, cfg.BaseURL)
	uploader := service.NewUploader(cfg.BaseURL)
	openAI := service.NewOpenAIService(cfg.OpenAIKey)
	sessions := service.NewSessions()

	// Handler pointer for use in the default handler closure
	var h *handler.Handler

	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
			middleware.Auth(users),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if h == nil || update.Message == nil {
				return
			}
			// Skip commands; they are routed by registered handlers
			if len(update.Message.Text) > 0 && update.Message.Text[0] == '/' {
				return
			}
			h.HandleMessage(ctx, b, update)
		}),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	tg := telegram.NewClient(b)
	presence := service.NewPresence(config.TypingPeriod, tg.SendTyping)
	chat := service.NewChatService(store, openAI, tg, sessions, presence, cfg.Model)

	// Get bot info
	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}

	h = handler.New(handler.Deps{
		Bot:      b,
		Cfg:      cfg,
		Chat:     chat,
		Users:    users,
		Uploader: uploader,
		Tg:       tg,
	})
	h.Register()

	slog.Info("starting bot", "username", me.Username, "id", me.ID, "model", cfg.Model)
	b.Start(ctx)

	slog.Info("bot stopped gracefully")
}
