package application

import (
	"context"
	"errors"
	"net/http"

	"github.com/Duonganhdu2002/government-sub000/internal/cacheaside"
	"github.com/Duonganhdu2002/government-sub000/internal/domain"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/logx"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/mw"
	v1 "github.com/Duonganhdu2002/government-sub000/internal/transport/web/v1"
)

// GetOne godoc
// @Summary     Get application by id
// @Description Заявление с вложениями. Доступ: владелец или сотрудник.
// @Tags        applications
// @Produce     json
// @Param       id path int true "application id"
// @Success     200 {object} domain.APIEnvelope{response=applicationWithFiles}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     403 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Failure     504 {object} domain.APIEnvelope
// @Router      /api/v1/applications/{id} [get]
func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request) {
	const op = "applications.get_one"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := domain.PrincipalFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	id, err := v1.PathID(r, "id")
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	// Кэш хранит заявление целиком (с вложениями); проверка доступа —
	// после загрузки, по данным записи, одинаково для хита и промаха.
	out, found, err := cacheaside.GetOrLoad(ctx, h.Cache, h.Log,
		domain.CacheKeyApplication(id), h.ListTTL,
		func(ctx context.Context) (applicationWithFiles, bool, error) {
			app, files, err := h.Apps.ApplicationByID(ctx, id)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return applicationWithFiles{}, false, nil
				}
				return applicationWithFiles{}, false, err
			}
			return applicationWithFiles{Application: app, Files: files}, true, nil
		})
	if err != nil {
		logx.Error(h.Log, reqID, op, "load failed", err, "application_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}
	if !found {
		logx.Error(h.Log, reqID, op, "not found", domain.ErrNotFound, "application_id", id)
		v1.WriteDomainError(w, r, domain.ErrNotFound)
		return
	}

	if !me.IsStaff() && out.CitizenID != me.ID {
		logx.Error(h.Log, reqID, op, "access denied", domain.ErrForbidden, "application_id", id, "citizen_id", me.ID)
		v1.WriteDomainError(w, r, domain.ErrForbidden)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "application_id", id)
	v1.WriteOKResponse(w, r, out)
}
