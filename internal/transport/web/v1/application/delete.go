package application

import (
	"context"
	"net/http"

	"github.com/Duonganhdu2002/government-sub000/internal/domain"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/logx"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/mw"
	v1 "github.com/Duonganhdu2002/government-sub000/internal/transport/web/v1"
)

type deleteResponse struct {
	Deleted int64 `json:"deleted"` // application id
	Files   int   `json:"files"`   // удалено вложений из хранилища
}

// Delete godoc
// @Summary     Delete own application
// @Description Удаляет заявление владельца; строки вложений уходят каскадом,
//              контент чистится из хранилища best-effort.
// @Tags        applications
// @Produce     json
// @Param       id path int true "application id"
// @Success     200 {object} domain.APIEnvelope{response=deleteResponse}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     403 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Failure     504 {object} domain.APIEnvelope
// @Router      /api/v1/applications/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "applications.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := domain.PrincipalFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	id, err := v1.PathID(r, "id")
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	// Для инвалидации нужны citizenid/typeid — читаем до удаления.
	app, _, err := h.Apps.ApplicationByID(ctx, id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "application lookup failed", err, "application_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	paths, err := h.Apps.DeleteApplication(ctx, id, me.ID)
	if err != nil {
		logx.Error(h.Log, reqID, op, "delete failed", err, "application_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	// Чистим контент best-effort: ошибка хранилища не откатывает удаление.
	removed := 0
	for _, p := range paths {
		if derr := h.Storage.Delete(r.Context(), p); derr != nil {
			logx.Error(h.Log, reqID, op, "storage delete failed", derr, "path", p)
			continue
		}
		removed++
	}

	h.invalidator().Invalidate(r.Context(),
		domain.ApplicationKeySet(app.ID, app.CitizenID, app.ApplicationTypeID)...)

	logx.Info(h.Log, reqID, op, "ok", "application_id", id, "files_removed", removed)
	v1.WriteOKResponse(w, r, deleteResponse{Deleted: id, Files: removed})
}
