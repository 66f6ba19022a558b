package application

import (
	"log"
	"time"

	"github.com/Duonganhdu2002/government-sub000/internal/cacheaside"
	"github.com/Duonganhdu2002/government-sub000/internal/domain"
)

// Дедлайны походов в авторитетное хранилище; их истечение
// отдаётся клиенту как 504, а не generic 500. Транзакция подачи
// живёт дольше обычного чтения: в неё входит запись вложений.
const (
	storeTimeout  = 10 * time.Second
	submitTimeout = 30 * time.Second
)

type Handler struct {
	Log     *log.Logger
	Apps    domain.ApplicationsRepo
	Storage domain.FileStore
	Cache   domain.Cache

	ListTTL int // секунд
}

func (h *Handler) invalidator() cacheaside.Invalidator {
	return cacheaside.Invalidator{Cache: h.Cache, Log: h.Log}
}

// Заявление вместе с вложениями — форма ответа единичного чтения.
type applicationWithFiles struct {
	domain.Application
	Files []domain.MediaFile `json:"files"`
}
