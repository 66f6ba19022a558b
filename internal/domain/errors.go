package domain

import "errors"

// Бизнес-ошибки (маппятся на HTTP-коды в transport/web/v1)
var (
	ErrBadParams        = errors.New("bad_params")         // 400
	ErrUnauth           = errors.New("unauthorized")       // 401
	ErrForbidden        = errors.New("forbidden")          // 403
	ErrNotFound         = errors.New("not_found")          // 404
	ErrMethodNotAllowed = errors.New("method_not_allowed") // 405
	ErrTooLarge         = errors.New("payload_too_large")  // 413
	ErrUnsupportedMedia = errors.New("unsupported_media")  // 415
	ErrStore            = errors.New("store_error")        // 500 — хранилище авторитетно
	ErrStoreTimeout     = errors.New("store_timeout")      // 504
	ErrUnexpected       = errors.New("unexpected")         // 500
)

// Коды внутри конверта error.code
const (
	ErrCodeBadParams        = 400
	ErrCodeUnauth           = 401
	ErrCodeForbidden        = 403
	ErrCodeNotFound         = 404
	ErrCodeMethodNotAllowed = 405
	ErrCodeTooLarge         = 413
	ErrCodeUnsupportedMedia = 415
	ErrCodeUnexpected       = 500
	ErrCodeStoreTimeout     = 504
)
