package v1

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Duonganhdu2002/government-sub000/internal/domain"
)

// TokenFromRequest достаёт сырой токен: query ?token=... или Bearer.
func TokenFromRequest(r *http.Request) string {
	if t := r.URL.Query().Get("token"); t != "" {
		return t
	}
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// PathID парсит числовой path-параметр (r.PathValue) в id > 0.
func PathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", domain.ErrBadParams, name, raw)
	}
	return id, nil
}

// QueryID — как PathID, но для query-параметра; 0 = отсутствует.
func QueryID(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", domain.ErrBadParams, name, raw)
	}
	return id, nil
}
