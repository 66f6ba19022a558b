package mw

import (
	"net/http"
	"strings"

	"github.com/Duonganhdu2002/government-sub000/internal/domain"
)

type AuthDeps struct {
	Tokens    domain.TokenManager
	Blacklist domain.TokenBlacklist
}

// RequireAuth требует валидный неотозванный Bearer-токен
// и кладёт Principal в контекст запроса.
func RequireAuth(deps AuthDeps, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := principalFromRequest(deps, r)
		if !ok {
			writeUnauth(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(domain.WithPrincipal(r.Context(), p)))
	})
}

// RequireStaff — как RequireAuth, но пускает только staff/admin.
func RequireStaff(deps AuthDeps, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := principalFromRequest(deps, r)
		if !ok {
			writeUnauth(w)
			return
		}
		if !p.IsStaff() {
			http.Error(w, `{"error":{"code":403,"text":"forbidden"}}`, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r.WithContext(domain.WithPrincipal(r.Context(), p)))
	})
}

func principalFromRequest(deps AuthDeps, r *http.Request) (domain.Principal, bool) {
	raw := extractBearer(r.Header.Get("Authorization"))
	if raw == "" {
		return domain.Principal{}, false
	}
	claims, err := deps.Tokens.Parse(r.Context(), raw)
	if err != nil {
		return domain.Principal{}, false
	}
	if revoked, _ := deps.Blacklist.IsRevoked(r.Context(), claims.JTI); revoked {
		return domain.Principal{}, false
	}
	return domain.Principal{ID: claims.SubjectID, Username: claims.Username, Role: claims.Role}, true
}

func writeUnauth(w http.ResponseWriter) {
	http.Error(w, `{"error":{"code":401,"text":"unauthorized"}}`, http.StatusUnauthorized)
}

func extractBearer(h string) string {
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
