package domain

import "errors"

var (
	ErrDailyQuotaExceeded = errors.New("daily message quota exceeded")
	ErrSessionBusy        = errors.New("dispatch already in flight for user")
	ErrEmptyCompletion    = errors.New("model returned no output")
	ErrUploadFailed       = errors.New("photo upload failed")
)
