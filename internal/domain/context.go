package domain

import "context"

// Аутентифицированный субъект запроса (из токена)
type Principal struct {
	ID       int64
	Username string
	Role     string
}

func (p Principal) IsStaff() bool { return p.Role == RoleStaff || p.Role == RoleAdmin }

type ctxKey int

const principalCtxKey ctxKey = 1

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey, p)
}

func PrincipalFromCtx(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalCtxKey).(Principal)
	return p, ok
}
