package specialtype

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

// Справочник спец-типов заявлений; ключ by-parent инвалидируется
// вместе с агрегатом и by-id.
type Handler struct {
	Log   *log.Logger
	Ref   domain.ReferenceRepo
	Cache domain.Cache

	TTL int // секунд
}

func (h *Handler) invalidator() cacheaside.Invalidator {
	return cacheaside.Invalidator{Cache: h.Cache, Log: h.Log}
}

type specialTypeRequest struct {
	ApplicationTypeID   int64  `json:"application_type_id"`
	Name                string `json:"name"`
	ProcessingTimeLimit int    `json:"processing_time_limit"`
}

// List godoc
// @Summary  List special application types
// @Description Без параметров — все; ?applicationTypeId — по родительскому типу.
// @Tags     special-types
// @Produce  json
// @Param    applicationTypeId query int false "parent application type id"
// @Success  200 {object} domain.APIEnvelope{data=[]domain.SpecialApplicationType}
// @Failure  400 {object} domain.APIEnvelope
// @Failure  504 {object} domain.APIEnvelope
// @Router   /api/v1/special-types [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "specialtypes.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	parentID, err := v1.QueryID(r, "applicationTypeId")
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad applicationTypeId", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	key := domain.CacheKeySpecialTypes()
	load := func(ctx context.Context) ([]domain.SpecialApplicationType, bool, error) {
		list, lerr := h.Ref.SpecialTypesList(ctx)
		if lerr != nil {
			return nil, false, lerr
		}
		return list, len(list) > 0, nil
	}
	if parentID > 0 {
		key = domain.CacheKeySpecialTypesByApplicationType(parentID)
		load = func(ctx context.Context) ([]domain.SpecialApplicationType, bool, error) {
			list, lerr := h.Ref.SpecialTypesByApplicationType(ctx, parentID)
			if lerr != nil {
				return nil, false, lerr
			}
			return list, len(list) > 0, nil
		}
	}

	types, found, err := cacheaside.GetOrLoad(ctx, h.Cache, h.Log, key, h.TTL, load)
	if err != nil {
		logx.Error(h.Log, reqID, op, "load failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}
	if !found {
		types = []domain.SpecialApplicationType{}
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(types))
	v1.WriteOKData(w, r, types)
}

// GetOne godoc
// @Summary  Get special type by id
// @Tags     special-types
// @Produce  json
// @Param    id path int true "special type id"
// @Success  200 {object} domain.APIEnvelope{response=domain.SpecialApplicationType}
// @Failure  400 {object} domain.APIEnvelope
// @Failure  404 {object} domain.APIEnvelope
// @Router   /api/v1/special-types/{id} [get]
func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request) {
	const op = "specialtypes.get_one"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := v1.PathID(r, "id")
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	t, found, err := cacheaside.GetOrLoad(ctx, h.Cache, h.Log,
		domain.CacheKeySpecialType(id), h.TTL,
		func(ctx context.Context) (domain.SpecialApplicationType, bool, error) {
			t, lerr := h.Ref.SpecialTypeByID(ctx, id)
			if lerr != nil {
				if errors.Is(lerr, domain.ErrNotFound) {
					return domain.SpecialApplicationType{}, false, nil
				}
				return domain.SpecialApplicationType{}, false, lerr
			}
			return t, true, nil
		})
	if err != nil {
		logx.Error(h.Log, reqID, op, "load failed", err, "special_type_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}
	if !found {
		v1.WriteDomainError(w, r, domain.ErrNotFound)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "special_type_id", id)
	v1.WriteOKResponse(w, r, t)
}

// Create godoc
// @Summary  Create special type (staff)
// @Tags     special-types
// @Accept   json
// @Produce  json
// @Param    request body specialTypeRequest true "application_type_id, name, processing_time_limit"
// @Success  200 {object} domain.APIEnvelope{response=domain.SpecialApplicationType}
// @Failure  400 {object} domain.APIEnvelope
// @Router   /api/v1/special-types [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "specialtypes.create"
	reqID := mw.RequestIDFromCtx(r.Context())

	var req specialTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.ApplicationTypeID <= 0 {
		logx.Error(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	t, err := h.Ref.CreateSpecialType(ctx, domain.SpecialApplicationType{
		ApplicationTypeID:   req.ApplicationTypeID,
		Name:                req.Name,
		ProcessingTimeLimit: req.ProcessingTimeLimit,
	})
	if err != nil {
		logx.Error(h.Log, reqID, op, "create failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.invalidator().Invalidate(r.Context(), domain.SpecialTypeKeySet(t.ID, t.ApplicationTypeID)...)

	logx.Info(h.Log, reqID, op, "ok", "special_type_id", t.ID)
	v1.WriteOKResponse(w, r, t)
}

// Update godoc
// @Summary  Update special type (staff)
// @Tags     special-types
// @Accept   json
// @Produce  json
// @Param    id path int true "special type id"
// @Param    request body specialTypeRequest true "application_type_id, name, processing_time_limit"
// @Success  200 {object} domain.APIEnvelope{response=domain.SpecialApplicationType}
// @Failure  400 {object} domain.APIEnvelope
// @Failure  404 {object} domain.APIEnvelope
// @Router   /api/v1/special-types/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "specialtypes.update"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := v1.PathID(r, "id")
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	var req specialTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.ApplicationTypeID <= 0 {
		logx.Error(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	// при переносе под другой родительский тип нужно сбросить и старый
	// by-parent ключ — читаем запись до изменения
	prev, err := h.Ref.SpecialTypeByID(ctx, id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "lookup failed", err, "special_type_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	t, err := h.Ref.UpdateSpecialType(ctx, domain.SpecialApplicationType{
		ID:                  id,
		ApplicationTypeID:   req.ApplicationTypeID,
		Name:                req.Name,
		ProcessingTimeLimit: req.ProcessingTimeLimit,
	})
	if err != nil {
		logx.Error(h.Log, reqID, op, "update failed", err, "special_type_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	keys := domain.SpecialTypeKeySet(id, t.ApplicationTypeID)
	if prev.ApplicationTypeID != t.ApplicationTypeID {
		keys = append(keys, domain.CacheKeySpecialTypesByApplicationType(prev.ApplicationTypeID))
	}
	h.invalidator().Invalidate(r.Context(), keys...)

	logx.Info(h.Log, reqID, op, "ok", "special_type_id", id)
	v1.WriteOKResponse(w, r, t)
}

// Delete godoc
// @Summary  Delete special type (staff)
// @Tags     special-types
// @Produce  json
// @Param    id path int true "special type id"
// @Success  200 {object} domain.APIEnvelope{response=int64}
// @Failure  400 {object} domain.APIEnvelope
// @Failure  404 {object} domain.APIEnvelope
// @Router   /api/v1/special-types/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "specialtypes.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := v1.PathID(r, "id")
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	// by-parent ключ инвалидируем по данным записи — читаем её до удаления
	t, err := h.Ref.SpecialTypeByID(ctx, id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "lookup failed", err, "special_type_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	if err := h.Ref.DeleteSpecialType(ctx, id); err != nil {
		logx.Error(h.Log, reqID, op, "delete failed", err, "special_type_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.invalidator().Invalidate(r.Context(), domain.SpecialTypeKeySet(id, t.ApplicationTypeID)...)

	logx.Info(h.Log, reqID, op, "ok", "special_type_id", id)
	v1.WriteOKResponse(w, r, id)
}
