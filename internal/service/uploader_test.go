package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShakhCo/trading-bot/internal/domain"
)

func TestUploadReturnsAbsoluteURL(t *testing.T) {
	var gotPath string
	var gotFile []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotFile, _ = io.ReadAll(file)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"download_url": "/media/42_photo.jpg"}`))
	}))
	defer srv.Close()

	u := NewUploader(srv.URL)
	url, err := u.Upload(context.Background(), 42, []byte("jpeg-bytes"))
	require.NoError(t, err)

	assert.Equal(t, srv.URL+"/media/42_photo.jpg", url)
	assert.Equal(t, "/users/42/upload-photo/", gotPath)
	assert.Equal(t, []byte("jpeg-bytes"), gotFile)
}

func TestUploadNonCreatedStatusFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	u := NewUploader(srv.URL)
	_, err := u.Upload(context.Background(), 1, []byte("x"))
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
}

func TestUploadMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	u := NewUploader(srv.URL)
	_, err := u.Upload(context.Background(), 1, []byte("x"))
	require.Error(t, err)
}
