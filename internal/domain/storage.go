package domain

import (
	"context"
	"io"
)

// Входной файл из multipart-запроса (тело ещё не сохранено).
type Upload struct {
	OriginalName string
	MimeType     string
	Size         int64
	Content      io.Reader
}

// Файл, сохранённый в контент-хранилище и готовый к привязке к заявлению.
type StagedFile struct {
	Path         string `json:"path"` // стабильный относительный путь
	Size         int64  `json:"size"`
	MimeType     string `json:"mime_type"`
	OriginalName string `json:"original_name"`
}

// Контент-хранилище вложений (локальный диск или S3/MinIO).
type FileStore interface {
	// Stage сохраняет пакет файлов целиком: валидация всех до первой записи,
	// при ошибке записи пакет прерывается. Не трогает реляционное хранилище.
	Stage(ctx context.Context, uploads []Upload) ([]StagedFile, error)
	// Get открывает поток контента для отдачи клиенту (поддержка Range).
	Get(ctx context.Context, path, rangeHeader string) (rc io.ReadCloser, contentLen int64, contentRange, contentType string, err error)
	Delete(ctx context.Context, path string) error
	Ping(ctx context.Context) error
}
