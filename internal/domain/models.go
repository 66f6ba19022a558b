package domain

import "time"

// Статусы заявления — закрытый набор, хранится строкой (CHECK в миграции).
type ApplicationStatus string

const (
	StatusSubmitted  ApplicationStatus = "Submitted"
	StatusProcessing ApplicationStatus = "Processing"
	StatusCompleted  ApplicationStatus = "Completed"
	StatusRejected   ApplicationStatus = "Rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusSubmitted, StatusProcessing, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// Срок обработки по умолчанию, если у типа заявления не задан лимит (в днях).
const DefaultProcessingDays = 7

// DueDate считает крайний срок: дата подачи + лимит типа (в днях).
func DueDate(submitted time.Time, limitDays int) time.Time {
	if limitDays <= 0 {
		limitDays = DefaultProcessingDays
	}
	return submitted.AddDate(0, 0, limitDays)
}

// Гражданин (заявитель)
type Citizen struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	PassHash  string    `json:"-"` // argon2id, никогда не отдаём наружу
	AreaCode  string    `json:"area_code"`
	CreatedAt time.Time `json:"created_at"`
}

// Сотрудник ведомства
type Staff struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	PassHash  string    `json:"-"`
	AgencyID  int64     `json:"agency_id"`
	Role      string    `json:"role"` // staff | admin
	CreatedAt time.Time `json:"created_at"`
}

// Ведомство
type Agency struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	AreaCode string `json:"area_code"`
}

// Справочник: тип заявления
type ApplicationType struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	ProcessingTimeLimit int       `json:"processing_time_limit"` // дни
	CreatedAt           time.Time `json:"created_at"`
}

// Справочник: спец-тип, привязан к типу заявления
type SpecialApplicationType struct {
	ID                  int64     `json:"id"`
	ApplicationTypeID   int64     `json:"application_type_id"`
	Name                string    `json:"name"`
	ProcessingTimeLimit int       `json:"processing_time_limit"`
	CreatedAt           time.Time `json:"created_at"`
}

// Заявление — основная сущность записи.
// Создаётся атомарно вместе с вложениями; статус меняется отдельными операциями.
type Application struct {
	ID                       int64             `json:"id"`
	CitizenID                int64             `json:"citizen_id"`
	ApplicationTypeID        int64             `json:"application_type_id"`
	SpecialApplicationTypeID *int64            `json:"special_application_type_id,omitempty"`
	Title                    string            `json:"title"`
	Description              string            `json:"description"`
	Status                   ApplicationStatus `json:"status"`
	SubmissionDate           time.Time         `json:"submission_date"`
	DueDate                  time.Time         `json:"due_date"`
	HasAttachments           bool              `json:"has_attachments"`
	CreatedAt                time.Time         `json:"created_at"`
	UpdatedAt                time.Time         `json:"updated_at"`
}

// Вложение заявления. Неизменяемо после создания: только create/delete.
type MediaFile struct {
	ID            int64     `json:"id"`
	ApplicationID int64     `json:"application_id"`
	FilePath      string    `json:"file_path"`
	FileSize      int64     `json:"file_size"`
	MimeType      string    `json:"mime_type"`
	UploadDate    time.Time `json:"upload_date"`
}

// Запись истории обработки (кто и что сделал с заявлением)
type ProcessingStep struct {
	ID            int64     `json:"id"`
	ApplicationID int64     `json:"application_id"`
	StaffID       int64     `json:"staff_id"`
	ActionTaken   string    `json:"action_taken"`
	Notes         string    `json:"notes,omitempty"`
	ActionDate    time.Time `json:"action_date"`
}

// Уведомление гражданину (создаётся при смене статуса)
type Notification struct {
	ID            int64     `json:"id"`
	CitizenID     int64     `json:"citizen_id"`
	ApplicationID int64     `json:"application_id"`
	Message       string    `json:"message"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
}
