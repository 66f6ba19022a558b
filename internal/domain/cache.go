package domain

import (
	"context"
	"strconv"
)

// Ключи кэша — единое место, чтобы не расползались по коду
// и не расходились между read- и invalidate-путями.

func CacheKeyApplications() string          { return "applications:all" }
func CacheKeyApplication(id int64) string   { return "applications:id:" + i64(id) }
func CacheKeyApplicationsByCitizen(citizenID int64) string {
	return "applications:bycitizen:" + i64(citizenID)
}
func CacheKeyApplicationsByType(typeID int64) string {
	return "applications:bytype:" + i64(typeID)
}

func CacheKeyApplicationTypes() string        { return "apptypes:all" }
func CacheKeyApplicationType(id int64) string { return "apptypes:id:" + i64(id) }

func CacheKeySpecialTypes() string        { return "specialtypes:all" }
func CacheKeySpecialType(id int64) string { return "specialtypes:id:" + i64(id) }
func CacheKeySpecialTypesByApplicationType(typeID int64) string {
	return "specialtypes:bytype:" + i64(typeID)
}

func CacheKeyDashboardStats() string { return "dashboard:stats" }

func CacheKeyTokenJTI(jti string) string { return "jti:" + jti }

func i64(n int64) string { return strconv.FormatInt(n, 10) }

// Наборы ключей для инвалидации после коммита записи.
// Статическая функция от типа сущности: агрегат + by-id + вторичные индексы.

func ApplicationKeySet(id, citizenID, typeID int64) []string {
	return []string{
		CacheKeyApplications(),
		CacheKeyApplication(id),
		CacheKeyApplicationsByCitizen(citizenID),
		CacheKeyApplicationsByType(typeID),
		CacheKeyDashboardStats(),
	}
}

func ApplicationTypeKeySet(id int64) []string {
	return []string{
		CacheKeyApplicationTypes(),
		CacheKeyApplicationType(id),
	}
}

func SpecialTypeKeySet(id, applicationTypeID int64) []string {
	return []string{
		CacheKeySpecialTypes(),
		CacheKeySpecialType(id),
		CacheKeySpecialTypesByApplicationType(applicationTypeID),
	}
}

// Простой k/v интерфейс. Реализация — Redis.
// Кэш — best-effort: любая операция может упасть, это не фатально для запроса.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttlSeconds int) error
	Del(ctx context.Context, keys ...string) error
	SetNX(ctx context.Context, key string, val []byte, ttlSeconds int) (bool, error)
	Exists(ctx context.Context, key string) (bool, error)
	Ping(ctx context.Context) error
	Close()
}

// TTL по умолчанию (секунды); значения приходят из конфига,
// здесь — fallback на случай нулей.
const (
	DefaultCacheTTL   = 60
	DashboardCacheTTL = 300
)
