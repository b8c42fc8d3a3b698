package service

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/ShakhCo/trading-bot/internal/config"
	"github.com/ShakhCo/trading-bot/internal/domain"
)

// Users stores one-time registration records as <dir>/<telegram_id>.json
// and fires a best-effort notification to the trading API when a user is
// seen for the first time.
type Users struct {
	dir    string
	client *resty.Client
}

func NewUsers(dir, baseURL string) *Users {
	return &Users{
		dir: dir,
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(config.RegisterTimeout),
	}
}

func (u *Users) path(telegramID int64) string {
	return filepath.Join(u.dir, strconv.FormatInt(telegramID, 10)+".json")
}

// Registered reports whether this Telegram id has been seen before.
func (u *Users) Registered(telegramID int64) bool {
	_, err := os.Stat(u.path(telegramID))
	return err == nil
}

// Register writes the user record once and kicks off the registration
// notification asynchronously. The notification never blocks or fails
// the caller; its result is logged and ignored.
func (u *Users) Register(user domain.User) error {
	if u.Registered(user.TelegramID) {
		return nil
	}

	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return fmt.Errorf("create users dir: %w", err)
	}

	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return fmt.Errorf("encode user record: %w", err)
	}
	if err := os.WriteFile(u.path(user.TelegramID), data, 0o644); err != nil {
		return fmt.Errorf("write user record: %w", err)
	}

	go u.notify(user)
	return nil
}

func (u *Users) notify(user domain.User) {
	resp, err := u.client.R().
		SetBody(map[string]any{
			"telegram_id": user.TelegramID,
			"first":       user.FirstName,
			"last":        user.LastName,
		}).
		Post("/register")
	if err != nil {
		slog.Warn("registration notify failed", "error", err, "user_id", user.TelegramID)
		return
	}
	if resp.IsError() {
		slog.Warn("registration notify rejected", "status", resp.StatusCode(), "user_id", user.TelegramID)
	}
}

// List returns all registered users ordered by Telegram id.
func (u *Users) List() ([]domain.User, error) {
	entries, err := os.ReadDir(u.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read users dir: %w", err)
	}

	var users []domain.User
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(u.dir, entry.Name()))
		if err != nil {
			continue
		}
		var user domain.User
		if err := json.Unmarshal(data, &user); err != nil {
			slog.Warn("user record unreadable", "file", entry.Name(), "error", err)
			continue
		}
		users = append(users, user)
	}

	sort.Slice(users, func(i, j int) bool { return users[i].TelegramID < users[j].TelegramID })
	return users, nil
}
