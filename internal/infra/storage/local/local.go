// Пакет local — контент-хранилище вложений на локальном диске.
// Файлы складываются в upload-директорию под устойчивыми к коллизиям
// именами; реляционное хранилище пакет не трогает.
package local

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Duonganhdu2002/government-sub000/internal/domain"
)

type Store struct {
	dir    string
	logger *log.Logger
}

var _ domain.FileStore = (*Store)(nil)

func New(dir string, logger *log.Logger) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// stagedName — имя, устойчивое к коллизиям: unix-наносекунды + случайный
// суффикс + исходное расширение.
func stagedName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), suffix, ext)
}

// Stage сохраняет пакет файлов. Весь пакет валидируется до первой записи
// (один плохой файл отклоняет всё); первая ошибка записи прерывает пакет.
// Уже записанные к этому моменту файлы остаются на диске как сироты —
// их подбирает внешняя задача обслуживания, транзакция записей на них
// ещё не ссылается.
func (s *Store) Stage(ctx context.Context, uploads []domain.Upload) ([]domain.StagedFile, error) {
	if err := domain.ValidateUploads(uploads); err != nil {
		return nil, err
	}

	staged := make([]domain.StagedFile, 0, len(uploads))
	for _, u := range uploads {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := stagedName(u.OriginalName)
		full := filepath.Join(s.dir, name)

		f, err := os.Create(full)
		if err != nil {
			s.logger.Printf("stage create %q failed: %v", full, err)
			return nil, fmt.Errorf("stage %q: %w", u.OriginalName, err)
		}
		// +1 байт, чтобы поймать тело длиннее заявленного лимита
		n, err := io.Copy(f, io.LimitReader(u.Content, domain.MaxUploadFileSize+1))
		cerr := f.Close()
		if err == nil {
			err = cerr
		}
		if err == nil && n > domain.MaxUploadFileSize {
			err = fmt.Errorf("%w: %q", domain.ErrTooLarge, u.OriginalName)
		}
		if err != nil {
			// недописанный файл убираем, предыдущие остаются сиротами
			_ = os.Remove(full)
			s.logger.Printf("stage write %q failed: %v", full, err)
			return nil, err
		}

		staged = append(staged, domain.StagedFile{
			Path:         name,
			Size:         n,
			MimeType:     u.MimeType,
			OriginalName: u.OriginalName,
		})
	}
	s.logger.Printf("staged %d file(s)", len(staged))
	return staged, nil
}

// Get открывает файл и поддерживает Range вида "bytes=A-B", "bytes=A-", "bytes=-N".
func (s *Store) Get(ctx context.Context, path, rangeHeader string) (io.ReadCloser, int64, string, string, error) {
	full := filepath.Join(s.dir, filepath.Clean("/"+path))

	f, err := os.Open(full)
	if err != nil {
		if os.IsNotExist(err) {
			// строка в БД есть, контента на диске нет
			return nil, 0, "", "", fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, 0, "", "", err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, "", "", err
	}
	total := st.Size()

	start, end, useRange := parseRange(rangeHeader, total)
	if !useRange {
		return f, total, "", "", nil
	}

	if _, err := f.Seek(start, io.SeekStart); err != nil {
		f.Close()
		return nil, 0, "", "", err
	}
	length := end - start + 1
	rc := struct {
		io.Reader
		io.Closer
	}{io.LimitReader(f, length), f}
	contentRange := fmt.Sprintf("bytes %d-%d/%d", start, end, total)
	return rc, length, contentRange, "", nil
}

func (s *Store) Delete(_ context.Context, path string) error {
	full := filepath.Join(s.dir, filepath.Clean("/"+path))
	err := os.Remove(full)
	if os.IsNotExist(err) {
		return nil // удаление отсутствующего — no-op
	}
	return err
}

func (s *Store) Ping(context.Context) error {
	_, err := os.Stat(s.dir)
	return err
}

func parseRange(rangeHeader string, total int64) (start, end int64, ok bool) {
	if !strings.HasPrefix(rangeHeader, "bytes=") || total == 0 {
		return 0, 0, false
	}
	spec := strings.TrimPrefix(rangeHeader, "bytes=")
	parts := strings.SplitN(spec, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}

	switch {
	// bytes=A-B
	case parts[0] != "" && parts[1] != "":
		a, e1 := strconv.ParseInt(parts[0], 10, 64)
		b, e2 := strconv.ParseInt(parts[1], 10, 64)
		// начало за концом файла — диапазон невыполним, отдаём целиком
		if e1 == nil && e2 == nil && a >= 0 && a < total && b >= a {
			if b >= total {
				b = total - 1
			}
			return a, b, true
		}
	// bytes=A- (от A до конца)
	case parts[0] != "":
		if a, e := strconv.ParseInt(parts[0], 10, 64); e == nil && a >= 0 && a < total {
			return a, total - 1, true
		}
	// bytes=-N (последние N байт)
	case parts[1] != "":
		if n, e := strconv.ParseInt(parts[1], 10, 64); e == nil && n > 0 {
			if n > total {
				n = total
			}
			return total - n, total - 1, true
		}
	}
	return 0, 0, false
}
