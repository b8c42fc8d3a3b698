package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/ShakhCo/trading-bot/internal/config"
	"github.com/ShakhCo/trading-bot/internal/domain"
)

// Uploader relays user photos to the trading API's upload endpoint and
// returns an absolute download URL for the stored image.
type Uploader struct {
	baseURL string
	client  *resty.Client
}

func NewUploader(baseURL string) *Uploader {
	return &Uploader{
		baseURL: baseURL,
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(config.RequestTimeout),
	}
}

func (u *Uploader) Upload(ctx context.Context, userID int64, photo []byte) (string, error) {
	resp, err := u.client.R().
		SetContext(ctx).
		SetFileReader("file", "photo.jpg", bytes.NewReader(photo)).
		Post(fmt.Sprintf("/users/%d/upload-photo/", userID))
	if err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}
	if resp.StatusCode() != http.StatusCreated {
		return "", domain.ErrUploadFailed
	}

	var body struct {
		DownloadURL string `json:"download_url"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("parse upload response: %w", err)
	}
	return u.baseURL + body.DownloadURL, nil
}
