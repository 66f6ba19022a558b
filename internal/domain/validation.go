package domain

import (
	"fmt"
	"strings"
)

// Ограничения на пакет вложений
const (
	MaxUploadFiles    = 10
	MaxUploadFileSize = 50 << 20 // 50MB на файл
)

// AllowedMime — allow-list для вложений заявлений: только изображения и видео.
func AllowedMime(mime string) bool {
	return strings.HasPrefix(mime, "image/") || strings.HasPrefix(mime, "video/")
}

// ValidateUploads проверяет весь пакет до первой записи на диск.
// Политика PartialUploadFailure: один плохой файл — отклоняется весь пакет.
func ValidateUploads(uploads []Upload) error {
	if len(uploads) > MaxUploadFiles {
		return fmt.Errorf("%w: too many files (%d > %d)", ErrBadParams, len(uploads), MaxUploadFiles)
	}
	for _, u := range uploads {
		if !AllowedMime(u.MimeType) {
			return fmt.Errorf("%w: %q (%s)", ErrUnsupportedMedia, u.OriginalName, u.MimeType)
		}
		if u.Size > MaxUploadFileSize {
			return fmt.Errorf("%w: %q (%d bytes)", ErrTooLarge, u.OriginalName, u.Size)
		}
	}
	return nil
}

// Правила учётных данных при регистрации.
// username: >= 4 символов, латиница и цифры; password: >= 8 символов,
// хотя бы одна буква и одна цифра.

func ValidUsername(username string) bool {
	if len(username) < 4 {
		return false
	}
	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}

func ValidPassword(pswd string) bool {
	if len(pswd) < 8 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range pswd {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasLetter = true
		}
	}
	return hasLetter && hasDigit
}

// ValidateForSubmit — обязательные поля заявления до открытия транзакции.
func (a *Application) ValidateForSubmit() error {
	if a.CitizenID <= 0 {
		return fmt.Errorf("%w: citizen id required", ErrBadParams)
	}
	if a.ApplicationTypeID <= 0 {
		return fmt.Errorf("%w: application type id required", ErrBadParams)
	}
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("%w: title required", ErrBadParams)
	}
	return nil
}
