package application

import (
	"context"
	"net/http"

	"github.com/Duonganhdu2002/government-sub000/internal/cacheaside"
	"github.com/Duonganhdu2002/government-sub000/internal/domain"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/logx"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/mw"
	v1 "github.com/Duonganhdu2002/government-sub000/internal/transport/web/v1"
)

// List godoc
// @Summary     List applications (staff)
// @Description Список заявлений. Без фильтров ответ кэшируется; пустая
//              выборка отдаётся как 200 + [] и в кэш не пишется.
// @Tags        applications
// @Produce     json
// @Param       status query string false "Submitted|Processing|Completed|Rejected"
// @Param       typeId query int false "application type id"
// @Success     200 {object} domain.APIEnvelope{data=[]domain.Application}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     403 {object} domain.APIEnvelope
// @Failure     504 {object} domain.APIEnvelope
// @Router      /api/v1/applications [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "applications.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	var f domain.ApplicationFilter
	if raw := r.URL.Query().Get("status"); raw != "" {
		st := domain.ApplicationStatus(raw)
		if !st.Valid() {
			logx.Error(h.Log, reqID, op, "bad status", domain.ErrBadParams, "status", raw)
			v1.WriteDomainError(w, r, domain.ErrBadParams)
			return
		}
		f.Status = st
	}
	typeID, err := v1.QueryID(r, "typeId")
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad typeId", err)
		v1.WriteDomainError(w, r, err)
		return
	}
	f.TypeID = typeID

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	load := func(ctx context.Context) ([]domain.Application, bool, error) {
		apps, err := h.Apps.ApplicationsList(ctx, f)
		if err != nil {
			return nil, false, err
		}
		return apps, len(apps) > 0, nil
	}

	// Кэшируем только канонические выборки: без фильтров и by-type.
	// Фильтр по статусу меняется часто — читаем мимо кэша.
	var (
		apps  []domain.Application
		found bool
	)
	switch {
	case f.Status == "" && f.TypeID == 0:
		apps, found, err = cacheaside.GetOrLoad(ctx, h.Cache, h.Log, domain.CacheKeyApplications(), h.ListTTL, load)
	case f.Status == "" && f.TypeID > 0:
		apps, found, err = cacheaside.GetOrLoad(ctx, h.Cache, h.Log, domain.CacheKeyApplicationsByType(f.TypeID), h.ListTTL, load)
	default:
		apps, found, err = load(ctx)
	}
	if err != nil {
		logx.Error(h.Log, reqID, op, "load failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}
	if !found {
		apps = []domain.Application{}
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(apps))
	v1.WriteOKData(w, r, apps)
}

// Mine godoc
// @Summary     List own applications
// @Description Заявления текущего гражданина (кэш by-citizen).
// @Tags        applications
// @Produce     json
// @Success     200 {object} domain.APIEnvelope{data=[]domain.Application}
// @Failure     401 {object} domain.APIEnvelope
// @Failure     504 {object} domain.APIEnvelope
// @Router      /api/v1/applications/mine [get]
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	const op = "applications.mine"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := domain.PrincipalFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	apps, found, err := cacheaside.GetOrLoad(ctx, h.Cache, h.Log,
		domain.CacheKeyApplicationsByCitizen(me.ID), h.ListTTL,
		func(ctx context.Context) ([]domain.Application, bool, error) {
			apps, err := h.Apps.ApplicationsByCitizen(ctx, me.ID)
			if err != nil {
				return nil, false, err
			}
			return apps, len(apps) > 0, nil
		})
	if err != nil {
		logx.Error(h.Log, reqID, op, "load failed", err, "citizen_id", me.ID)
		v1.WriteDomainError(w, r, err)
		return
	}
	if !found {
		apps = []domain.Application{}
	}

	logx.Info(h.Log, reqID, op, "ok", "citizen_id", me.ID, "count", len(apps))
	v1.WriteOKData(w, r, apps)
}
