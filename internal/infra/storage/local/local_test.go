package local

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Duonganhdu2002/government-sub000/internal/domain"
)

var discard = log.New(io.Discard, "", 0)

func newStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := New(dir, discard)
	require.NoError(t, err)
	return s, dir
}

func upload(name, mime, body string) domain.Upload {
	return domain.Upload{
		OriginalName: name,
		MimeType:     mime,
		Size:         int64(len(body)),
		Content:      strings.NewReader(body),
	}
}

func TestStageWritesFiles(t *testing.T) {
	s, dir := newStore(t)

	staged, err := s.Stage(context.Background(), []domain.Upload{
		upload("passport.jpg", "image/jpeg", "jpeg-bytes"),
		upload("proof.png", "image/png", "png-bytes"),
	})
	require.NoError(t, err)
	require.Len(t, staged, 2)

	for _, f := range staged {
		require.NotEmpty(t, f.Path)
		require.False(t, filepath.IsAbs(f.Path), "путь относительный")
		b, err := os.ReadFile(filepath.Join(dir, f.Path))
		require.NoError(t, err)
		require.Equal(t, f.Size, int64(len(b)))
	}
	require.Equal(t, "image/jpeg", staged[0].MimeType)
	require.True(t, strings.HasSuffix(staged[0].Path, ".jpg"), "расширение сохраняется: %s", staged[0].Path)
	require.NotEqual(t, staged[0].Path, staged[1].Path)
}

func TestStageNamesDoNotCollide(t *testing.T) {
	s, _ := newStore(t)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		staged, err := s.Stage(context.Background(), []domain.Upload{
			upload("same-name.jpg", "image/jpeg", "x"),
		})
		require.NoError(t, err)
		require.False(t, seen[staged[0].Path], "коллизия имени: %s", staged[0].Path)
		seen[staged[0].Path] = true
	}
}

func TestStageRejectsWholeBatchOnBadMime(t *testing.T) {
	s, dir := newStore(t)

	_, err := s.Stage(context.Background(), []domain.Upload{
		upload("ok.jpg", "image/jpeg", "good"),
		upload("bad.txt", "text/plain", "evil"),
	})
	require.ErrorIs(t, err, domain.ErrUnsupportedMedia)

	// валидация до записи: на диске ничего не появилось
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries, "запрещённый файл отклоняет пакет до записи")
}

func TestStageRejectsOversizeDeclared(t *testing.T) {
	s, _ := newStore(t)

	big := domain.Upload{
		OriginalName: "huge.mp4",
		MimeType:     "video/mp4",
		Size:         domain.MaxUploadFileSize + 1,
		Content:      bytes.NewReader(nil),
	}
	_, err := s.Stage(context.Background(), []domain.Upload{big})
	require.ErrorIs(t, err, domain.ErrTooLarge)
}

func TestGetFullAndRange(t *testing.T) {
	s, _ := newStore(t)
	staged, err := s.Stage(context.Background(), []domain.Upload{
		upload("doc.jpg", "image/jpeg", "0123456789"),
	})
	require.NoError(t, err)
	path := staged[0].Path

	// полное чтение
	rc, n, cr, _, err := s.Get(context.Background(), path, "")
	require.NoError(t, err)
	b, _ := io.ReadAll(rc)
	rc.Close()
	require.Equal(t, "0123456789", string(b))
	require.Equal(t, int64(10), n)
	require.Empty(t, cr)

	// bytes=2-5
	rc, n, cr, _, err = s.Get(context.Background(), path, "bytes=2-5")
	require.NoError(t, err)
	b, _ = io.ReadAll(rc)
	rc.Close()
	require.Equal(t, "2345", string(b))
	require.Equal(t, int64(4), n)
	require.Equal(t, "bytes 2-5/10", cr)

	// bytes=-3 (хвост)
	rc, n, cr, _, err = s.Get(context.Background(), path, "bytes=-3")
	require.NoError(t, err)
	b, _ = io.ReadAll(rc)
	rc.Close()
	require.Equal(t, "789", string(b))
	require.Equal(t, int64(3), n)
	require.Equal(t, "bytes 7-9/10", cr)
}

// Диапазон, начинающийся за концом файла, невыполним — отдаём контент
// целиком без Content-Range, а не отрицательную длину.
func TestGetRangeBeyondEOFServesFullContent(t *testing.T) {
	s, _ := newStore(t)
	staged, err := s.Stage(context.Background(), []domain.Upload{
		upload("doc.jpg", "image/jpeg", "0123456789"),
	})
	require.NoError(t, err)
	path := staged[0].Path

	for _, hdr := range []string{"bytes=20-30", "bytes=10-10", "bytes=10-"} {
		rc, n, cr, _, err := s.Get(context.Background(), path, hdr)
		require.NoError(t, err, hdr)
		b, _ := io.ReadAll(rc)
		rc.Close()
		require.Equal(t, "0123456789", string(b), hdr)
		require.Equal(t, int64(10), n, hdr)
		require.Empty(t, cr, hdr)
	}

	// конец за EOF при валидном начале — обрезается по факту
	rc, n, cr, _, err := s.Get(context.Background(), path, "bytes=8-30")
	require.NoError(t, err)
	b, _ := io.ReadAll(rc)
	rc.Close()
	require.Equal(t, "89", string(b))
	require.Equal(t, int64(2), n)
	require.Equal(t, "bytes 8-9/10", cr)
}

func TestGetMissingFileIsNotFound(t *testing.T) {
	s, _ := newStore(t)
	_, _, _, _, err := s.Get(context.Background(), "gone.jpg", "")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteMissingIsNoop(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.Delete(context.Background(), "no_such_file.jpg"))
}
