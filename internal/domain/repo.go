package domain

import "context"

// Фильтр списка заявлений (staff-выборки)
type ApplicationFilter struct {
	Status ApplicationStatus // пусто — все
	TypeID int64             // 0 — все
	Limit  int
}

type CitizensRepo interface {
	Close()
	Ping(ctx context.Context) error
	CreateCitizen(ctx context.Context, c Citizen) (Citizen, error)
	CitizenByUsername(ctx context.Context, username string) (Citizen, error)
	CitizenByID(ctx context.Context, id int64) (Citizen, error)
}

type StaffRepo interface {
	StaffByUsername(ctx context.Context, username string) (Staff, error)
}

// Репозиторий заявлений. Create* — единственная операция,
// где родитель и вложения пишутся одной транзакцией.
type ApplicationsRepo interface {
	// CreateApplication вставляет заявление и все mediafile-строки атомарно.
	// При любой ошибке — полный откат: ни заявления, ни осиротевших вложений.
	CreateApplication(ctx context.Context, app Application, staged []StagedFile) (Application, []MediaFile, error)

	ApplicationByID(ctx context.Context, id int64) (Application, []MediaFile, error)
	ApplicationsList(ctx context.Context, f ApplicationFilter) ([]Application, error)
	ApplicationsByCitizen(ctx context.Context, citizenID int64) ([]Application, error)
	ApplicationsByType(ctx context.Context, typeID int64) ([]Application, error)

	// UpdateStatus меняет статус и в той же транзакции пишет
	// processinghistory и уведомление гражданину.
	UpdateStatus(ctx context.Context, id int64, status ApplicationStatus, staffID int64, notes string) (Application, error)

	// DeleteApplication удаляет заявление (FK каскадом убирает mediafiles)
	// и возвращает пути вложений для best-effort чистки хранилища.
	DeleteApplication(ctx context.Context, id, citizenID int64) ([]string, error)

	MediaFileByID(ctx context.Context, applicationID, fileID int64) (MediaFile, error)
}

// Справочники (admin CRUD). Удаление типа НЕ каскадирует на зависимые
// спец-типы и заявления — документированный пробел схемы.
type ReferenceRepo interface {
	ApplicationTypesList(ctx context.Context) ([]ApplicationType, error)
	ApplicationTypeByID(ctx context.Context, id int64) (ApplicationType, error)
	CreateApplicationType(ctx context.Context, t ApplicationType) (ApplicationType, error)
	UpdateApplicationType(ctx context.Context, t ApplicationType) (ApplicationType, error)
	DeleteApplicationType(ctx context.Context, id int64) error

	SpecialTypesList(ctx context.Context) ([]SpecialApplicationType, error)
	SpecialTypeByID(ctx context.Context, id int64) (SpecialApplicationType, error)
	SpecialTypesByApplicationType(ctx context.Context, typeID int64) ([]SpecialApplicationType, error)
	CreateSpecialType(ctx context.Context, t SpecialApplicationType) (SpecialApplicationType, error)
	UpdateSpecialType(ctx context.Context, t SpecialApplicationType) (SpecialApplicationType, error)
	DeleteSpecialType(ctx context.Context, id int64) error
}

type DashboardRepo interface {
	// Количество заявлений по статусам — дорогой агрегат, кэшируется дольше.
	StatusCounts(ctx context.Context) (map[ApplicationStatus]int64, error)
}
