package mw

import (
	"log"
	"net/http"
	"strings"
	"time"
)

// Logging — access-лог запроса: статус, размер, длительность, адрес клиента.
// Health-пробы балансировщика не логируем, иначе лог состоит из них.
func Logging(l *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isProbe(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			reqID := RequestIDFromCtx(r.Context())
			start := time.Now()

			mw := &metaWriter{ResponseWriter: w}
			next.ServeHTTP(mw, r)

			l.Printf("lvl=info req_id=%s method=%s path=%q status=%d size=%d duration_ms=%d remote=%s",
				reqID, r.Method, r.URL.Path, mw.status, mw.size,
				time.Since(start).Milliseconds(), remoteAddr(r))
		})
	}
}

func isProbe(path string) bool {
	return path == "/v1/healthz" || path == "/v1/readyz"
}

// remoteAddr — адрес клиента; за обратным прокси берём X-Forwarded-For.
func remoteAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i > 0 {
			return fwd[:i]
		}
		return fwd
	}
	return r.RemoteAddr
}
