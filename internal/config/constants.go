package config

import "time"

const (
	// Per-user daily message quota
	DailyMessageLimit = 100

	// Trailing context window sent to the model
	ContextWindow = 60

	// Typing indicator cadence
	TypingPeriod = 5 * time.Second

	// AI request timeout
	RequestTimeout = 90 * time.Second

	// Registration notify timeout
	RegisterTimeout = 10 * time.Second

	// Telegram limits
	MaxTelegramMessageLen = 4096

	// Users shown in the /users admin preview
	UsersPreviewLimit = 10
)
