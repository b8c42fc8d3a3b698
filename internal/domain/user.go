package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is a registered bot user. The record is written once, on first
// contact, and its presence gates the one-time registration call to the
// trading API.
type User struct {
	TelegramID   int64     `json:"telegram_id"`
	FirstName    string    `json:"first"`
	LastName     string    `json:"last"`
	Username     string    `json:"username"`
	RegisteredAt time.Time `json:"date_registered"`
}

// Profile summarizes a user's usage for the current month.
type Profile struct {
	MessageCount int
	TotalCost    decimal.Decimal
}
