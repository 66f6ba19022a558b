// Пакет s3 — контент-хранилище вложений в S3/MinIO
// (альтернатива локальному диску, STORAGE_DRIVER=s3).
package s3

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Duonganhdu2002/government-sub000/internal/domain"
)

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PathStyle bool
}

type Storage struct {
	cl     *minio.Client
	bucket string
	logger *log.Logger
}

var _ domain.FileStore = (*Storage)(nil)

func New(cfg Config, logger *log.Logger) (*Storage, error) {
	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	}
	if cfg.PathStyle {
		opts.BucketLookup = minio.BucketLookupPath
	}
	cl, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, err
	}
	return &Storage{cl: cl, bucket: cfg.Bucket, logger: logger}, nil
}

func stagedKey(originalName string) string {
	ext := strings.ToLower(path.Ext(originalName))
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("attachments/%d_%s%s", time.Now().UnixNano(), suffix, ext)
}

// Stage заливает пакет в бакет; семантика та же, что у локального драйвера:
// валидация всех файлов до первой записи, первая ошибка прерывает пакет,
// уже залитые объекты остаются сиротами до внешней чистки.
func (s *Storage) Stage(ctx context.Context, uploads []domain.Upload) ([]domain.StagedFile, error) {
	if err := domain.ValidateUploads(uploads); err != nil {
		return nil, err
	}

	staged := make([]domain.StagedFile, 0, len(uploads))
	for _, u := range uploads {
		key := stagedKey(u.OriginalName)
		info, err := s.cl.PutObject(ctx, s.bucket, key, u.Content, u.Size, minio.PutObjectOptions{
			ContentType: u.MimeType,
		})
		if err != nil {
			s.logger.Printf("stage put %q failed: %v", key, err)
			return nil, fmt.Errorf("stage %q: %w", u.OriginalName, err)
		}
		staged = append(staged, domain.StagedFile{
			Path:         key,
			Size:         info.Size,
			MimeType:     u.MimeType,
			OriginalName: u.OriginalName,
		})
	}
	s.logger.Printf("staged %d object(s)", len(staged))
	return staged, nil
}

// Get открывает поток объекта; rangeHeader в формате "bytes=START-END" (опционально).
func (s *Storage) Get(ctx context.Context, storageKey, rangeHeader string) (io.ReadCloser, int64, string, string, error) {
	// HEAD: размер всего объекта и content-type
	info, err := s.cl.StatObject(ctx, s.bucket, storageKey, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			// строка в БД есть, объекта в бакете нет
			return nil, 0, "", "", fmt.Errorf("%w: %s", domain.ErrNotFound, storageKey)
		}
		return nil, 0, "", "", err
	}
	totalSize := info.Size
	contentType := info.ContentType

	var (
		start, end int64
		useRange   bool
	)
	if strings.HasPrefix(rangeHeader, "bytes=") {
		spec := strings.TrimPrefix(rangeHeader, "bytes=")
		parts := strings.SplitN(spec, "-", 2)

		switch {
		// bytes=A-B
		case len(parts) == 2 && parts[0] != "" && parts[1] != "":
			if a, e1 := strconv.ParseInt(parts[0], 10, 64); e1 == nil {
				// начало за концом объекта — диапазон невыполним, отдаём целиком
				if b, e2 := strconv.ParseInt(parts[1], 10, 64); e2 == nil && a >= 0 && a < totalSize && b >= a {
					if b >= totalSize {
						b = totalSize - 1
					}
					start, end, useRange = a, b, true
				}
			}
		// bytes=A- (от A до конца)
		case len(parts) == 2 && parts[0] != "" && parts[1] == "":
			if a, e := strconv.ParseInt(parts[0], 10, 64); e == nil && a >= 0 && a < totalSize {
				start, end, useRange = a, totalSize-1, true
			}
		// bytes=-N (последние N байт)
		case len(parts) == 2 && parts[0] == "" && parts[1] != "":
			if n, e := strconv.ParseInt(parts[1], 10, 64); e == nil && n > 0 {
				if n > totalSize {
					n = totalSize
				}
				start, end, useRange = totalSize-n, totalSize-1, true
			}
		}
	}

	opts := minio.GetObjectOptions{}
	contentLen := totalSize
	contentRange := ""
	if useRange {
		// NB: SetRange принимает включающие границы [start, end]
		if e := opts.SetRange(start, end); e != nil {
			return nil, 0, "", "", e
		}
		contentLen = end - start + 1
		contentRange = fmt.Sprintf("bytes %d-%d/%d", start, end, totalSize)
	}

	obj, err := s.cl.GetObject(ctx, s.bucket, storageKey, opts)
	if err != nil {
		return nil, 0, "", "", err
	}
	return obj, contentLen, contentRange, contentType, nil
}

func (s *Storage) Delete(ctx context.Context, storageKey string) error {
	return s.cl.RemoveObject(ctx, s.bucket, storageKey, minio.RemoveObjectOptions{})
}

func (s *Storage) Ping(ctx context.Context) error {
	ok, err := s.cl.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %q does not exist", s.bucket)
	}
	return nil
}
