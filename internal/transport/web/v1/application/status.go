package application

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Duonganhdu2002/government-sub000/internal/domain"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/logx"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/mw"
	v1 "github.com/Duonganhdu2002/government-sub000/internal/transport/web/v1"
)

type statusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// UpdateStatus godoc
// @Summary     Update application status (staff)
// @Description Меняет статус; запись истории и уведомление — в той же
//              транзакции. Инвалидация кэша — после коммита.
// @Tags        applications
// @Accept      json
// @Produce     json
// @Param       id path int true "application id"
// @Param       request body statusRequest true "status, notes"
// @Success     200 {object} domain.APIEnvelope{response=domain.Application}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     403 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Failure     504 {object} domain.APIEnvelope
// @Router      /api/v1/applications/{id}/status [patch]
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	const op = "applications.update_status"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := domain.PrincipalFromCtx(r.Context())
	if !ok || !me.IsStaff() {
		v1.WriteDomainError(w, r, domain.ErrForbidden)
		return
	}

	id, err := v1.PathID(r, "id")
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logx.Error(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	st := domain.ApplicationStatus(req.Status)
	if !st.Valid() {
		logx.Error(h.Log, reqID, op, "bad status", domain.ErrBadParams, "status", req.Status)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	updated, err := h.Apps.UpdateStatus(ctx, id, st, me.ID, req.Notes)
	if err != nil {
		logx.Error(h.Log, reqID, op, "update failed", err, "application_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.invalidator().Invalidate(r.Context(),
		domain.ApplicationKeySet(updated.ID, updated.CitizenID, updated.ApplicationTypeID)...)

	logx.Info(h.Log, reqID, op, "ok", "application_id", id, "status", st)
	v1.WriteOKResponse(w, r, updated)
}
