package web

import "github.com/Duonganhdu2002/government-sub000/internal/domain"

// Зависимости HTTP-слоя; собираются в app.Build.

type Repos struct {
	Citizens  domain.CitizensRepo
	Staff     domain.StaffRepo
	Apps      domain.ApplicationsRepo
	Ref       domain.ReferenceRepo
	Dashboard domain.DashboardRepo
}

type AuthDeps struct {
	Hasher    domain.PasswordHasher
	Tokens    domain.TokenManager
	Blacklist domain.TokenBlacklist
}

// TTL кэша по группам чтения (секунды).
type CacheTTL struct {
	Default   int
	Dashboard int
}
