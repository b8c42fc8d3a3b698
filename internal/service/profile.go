package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ShakhCo/trading-bot/internal/domain"
)

// ProfileSummary reports the user's message count and total spend for
// now's calendar month.
func (s *ChatService) ProfileSummary(userID int64, now time.Time) domain.Profile {
	log := s.store.ReadAll(userID, now)

	total := decimal.Zero
	count := 0
	for _, rec := range log {
		if rec.Role == domain.RoleUser {
			count++
		}
		total = total.Add(rec.Price.Decimal)
	}
	return domain.Profile{MessageCount: count, TotalCost: total}
}
