package apptype

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Duonganhdu2002/government-sub000/internal/cacheaside"
	"github.com/Duonganhdu2002/government-sub000/internal/domain"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/logx"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/mw"
	v1 "github.com/Duonganhdu2002/government-sub000/internal/transport/web/v1"
)

const storeTimeout = 10 * time.Second

// Справочник типов заявлений: чтение через cache-aside,
// запись инвалидирует набор ключей после коммита.
type Handler struct {
	Log   *log.Logger
	Ref   domain.ReferenceRepo
	Cache domain.Cache

	TTL int // секунд
}

func (h *Handler) invalidator() cacheaside.Invalidator {
	return cacheaside.Invalidator{Cache: h.Cache, Log: h.Log}
}

type typeRequest struct {
	Name                string `json:"name"`
	Description         string `json:"description"`
	ProcessingTimeLimit int    `json:"processing_time_limit"`
}

// List godoc
// @Summary  List application types
// @Tags     application-types
// @Produce  json
// @Success  200 {object} domain.APIEnvelope{data=[]domain.ApplicationType}
// @Failure  504 {object} domain.APIEnvelope
// @Router   /api/v1/application-types [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "apptypes.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	types, found, err := cacheaside.GetOrLoad(ctx, h.Cache, h.Log,
		domain.CacheKeyApplicationTypes(), h.TTL,
		func(ctx context.Context) ([]domain.ApplicationType, bool, error) {
			list, err := h.Ref.ApplicationTypesList(ctx)
			if err != nil {
				return nil, false, err
			}
			return list, len(list) > 0, nil
		})
	if err != nil {
		logx.Error(h.Log, reqID, op, "load failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}
	if !found {
		types = []domain.ApplicationType{}
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(types))
	v1.WriteOKData(w, r, types)
}

// GetOne godoc
// @Summary  Get application type by id
// @Tags     application-types
// @Produce  json
// @Param    id path int true "type id"
// @Success  200 {object} domain.APIEnvelope{response=domain.ApplicationType}
// @Failure  400 {object} domain.APIEnvelope
// @Failure  404 {object} domain.APIEnvelope
// @Router   /api/v1/application-types/{id} [get]
func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request) {
	const op = "apptypes.get_one"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := v1.PathID(r, "id")
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	t, found, err := cacheaside.GetOrLoad(ctx, h.Cache, h.Log,
		domain.CacheKeyApplicationType(id), h.TTL,
		func(ctx context.Context) (domain.ApplicationType, bool, error) {
			t, err := h.Ref.ApplicationTypeByID(ctx, id)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return domain.ApplicationType{}, false, nil
				}
				return domain.ApplicationType{}, false, err
			}
			return t, true, nil
		})
	if err != nil {
		logx.Error(h.Log, reqID, op, "load failed", err, "type_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}
	if !found {
		v1.WriteDomainError(w, r, domain.ErrNotFound)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "type_id", id)
	v1.WriteOKResponse(w, r, t)
}

// Create godoc
// @Summary  Create application type (staff)
// @Tags     application-types
// @Accept   json
// @Produce  json
// @Param    request body typeRequest true "name, description, processing_time_limit"
// @Success  200 {object} domain.APIEnvelope{response=domain.ApplicationType}
// @Failure  400 {object} domain.APIEnvelope
// @Failure  403 {object} domain.APIEnvelope
// @Router   /api/v1/application-types [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "apptypes.create"
	reqID := mw.RequestIDFromCtx(r.Context())

	var req typeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		logx.Error(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	t, err := h.Ref.CreateApplicationType(ctx, domain.ApplicationType{
		Name:                req.Name,
		Description:         req.Description,
		ProcessingTimeLimit: req.ProcessingTimeLimit,
	})
	if err != nil {
		logx.Error(h.Log, reqID, op, "create failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.invalidator().Invalidate(r.Context(), domain.ApplicationTypeKeySet(t.ID)...)

	logx.Info(h.Log, reqID, op, "ok", "type_id", t.ID)
	v1.WriteOKResponse(w, r, t)
}

// Update godoc
// @Summary  Update application type (staff)
// @Tags     application-types
// @Accept   json
// @Produce  json
// @Param    id path int true "type id"
// @Param    request body typeRequest true "name, description, processing_time_limit"
// @Success  200 {object} domain.APIEnvelope{response=domain.ApplicationType}
// @Failure  400 {object} domain.APIEnvelope
// @Failure  404 {object} domain.APIEnvelope
// @Router   /api/v1/application-types/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "apptypes.update"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := v1.PathID(r, "id")
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	var req typeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		logx.Error(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	t, err := h.Ref.UpdateApplicationType(ctx, domain.ApplicationType{
		ID:                  id,
		Name:                req.Name,
		Description:         req.Description,
		ProcessingTimeLimit: req.ProcessingTimeLimit,
	})
	if err != nil {
		logx.Error(h.Log, reqID, op, "update failed", err, "type_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.invalidator().Invalidate(r.Context(), domain.ApplicationTypeKeySet(id)...)

	logx.Info(h.Log, reqID, op, "ok", "type_id", id)
	v1.WriteOKResponse(w, r, t)
}

// Delete godoc
// @Summary  Delete application type (staff)
// @Description Зависимые строки не трогаются: FK без каскада, при наличии
//              ссылок удаление упадёт ошибкой хранилища.
// @Tags     application-types
// @Produce  json
// @Param    id path int true "type id"
// @Success  200 {object} domain.APIEnvelope{response=int64}
// @Failure  400 {object} domain.APIEnvelope
// @Failure  404 {object} domain.APIEnvelope
// @Router   /api/v1/application-types/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "apptypes.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := v1.PathID(r, "id")
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	if err := h.Ref.DeleteApplicationType(ctx, id); err != nil {
		logx.Error(h.Log, reqID, op, "delete failed", err, "type_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.invalidator().Invalidate(r.Context(), domain.ApplicationTypeKeySet(id)...)

	logx.Info(h.Log, reqID, op, "ok", "type_id", id)
	v1.WriteOKResponse(w, r, id)
}
