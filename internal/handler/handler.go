package handler

import (
	"github.com/go-telegram/bot"

	"github.com/ShakhCo/trading-bot/internal/config"
	"github.com/ShakhCo/trading-bot/internal/service"
	"github.com/ShakhCo/trading-bot/internal/telegram"
)

// Handler holds all dependencies needed by command and message handlers.
type Handler struct {
	bot      *bot.Bot
	cfg      *config.Config
	chat     *service.ChatService
	users    *service.Users
	uploader *service.Uploader
	tg       *telegram.Client
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot      *bot.Bot
	Cfg      *config.Config
	Chat     *service.ChatService
	Users    *service.Users
	Uploader *service.Uploader
	Tg       *telegram.Client
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:      deps.Bot,
		cfg:      deps.Cfg,
		chat:     deps.Chat,
		users:    deps.Users,
		uploader: deps.Uploader,
		tg:       deps.Tg,
	}
}

// Register registers all command handlers on the bot instance. Plain
// text and photos are routed through the default handler in main.
func (h *Handler) Register() {
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/profile", bot.MatchTypePrefix, h.handleProfile)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/users", bot.MatchTypePrefix, h.handleUsers)
}
