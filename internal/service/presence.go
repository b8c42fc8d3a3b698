package service

import (
	"context"
	"time"
)

// SignalFunc sends one "typing" indication to the chat surface.
type SignalFunc func(ctx context.Context, chatID int64) error

// Presence repeatedly signals typing while a dispatch is in flight.
// Signaling failures stop the loop silently; they never reach the caller.
type Presence struct {
	period time.Duration
	signal SignalFunc
}

func NewPresence(period time.Duration, signal SignalFunc) *Presence {
	return &Presence{period: period, signal: signal}
}

// Start begins signaling on the configured cadence, emitting once
// immediately. The returned stop func cancels the loop and waits for it
// to exit, so no signal is sent after stop returns.
func (p *Presence) Start(ctx context.Context, chatID int64) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		if err := p.signal(ctx, chatID); err != nil {
			return
		}
		ticker := time.NewTicker(p.period)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := p.signal(ctx, chatID); err != nil {
					return
				}
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}
