package domain

import (
	"context"
	"time"
)

// Роли субъектов токена
const (
	RoleCitizen = "citizen"
	RoleStaff   = "staff"
	RoleAdmin   = "admin"
)

type Token = string

type TokenClaims struct {
	JTI       string // уникальный id токена (для блэклиста)
	SubjectID int64  // id гражданина или сотрудника
	Username  string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Хеширование паролей (argon2id)
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, encodedHash string) (bool, error)
}

// Управление токенами (JWT, реализация в internal/auth/token)
type TokenManager interface {
	Issue(ctx context.Context, subjectID int64, username, role string) (Token, TokenClaims, error)
	Parse(ctx context.Context, raw Token) (TokenClaims, error)
}

// Блэклист отозванных токенов (Redis)
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, exp time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
