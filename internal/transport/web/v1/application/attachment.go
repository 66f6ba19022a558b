package application

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/Duonganhdu2002/government-sub000/internal/domain"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/logx"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/mw"
	v1 "github.com/Duonganhdu2002/government-sub000/internal/transport/web/v1"
)

// Attachment godoc
// @Summary     Download attachment
// @Description Отдаёт контент вложения из хранилища; поддерживает Range.
// @Tags        applications
// @Produce     octet-stream
// @Param       id path int true "application id"
// @Param       fileID path int true "media file id"
// @Success     200 {file} []byte
// @Success     206 {file} []byte
// @Failure     401 {object} domain.APIEnvelope
// @Failure     403 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /api/v1/applications/{id}/attachments/{fileID} [get]
func (h *Handler) Attachment(w http.ResponseWriter, r *http.Request) {
	const op = "applications.attachment"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := domain.PrincipalFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	appID, err := v1.PathID(r, "id")
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}
	fileID, err := v1.PathID(r, "fileID")
	if err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	app, _, err := h.Apps.ApplicationByID(ctx, appID)
	if err != nil {
		logx.Error(h.Log, reqID, op, "application lookup failed", err, "application_id", appID)
		v1.WriteDomainError(w, r, err)
		return
	}
	if !me.IsStaff() && app.CitizenID != me.ID {
		logx.Error(h.Log, reqID, op, "access denied", domain.ErrForbidden, "application_id", appID)
		v1.WriteDomainError(w, r, domain.ErrForbidden)
		return
	}

	mf, err := h.Apps.MediaFileByID(ctx, appID, fileID)
	if err != nil {
		logx.Error(h.Log, reqID, op, "media file lookup failed", err, "file_id", fileID)
		v1.WriteDomainError(w, r, err)
		return
	}

	rangeHdr := r.Header.Get("Range")
	rc, contentLen, contentRange, contentType, err := h.Storage.Get(r.Context(), mf.FilePath, rangeHdr)
	if err != nil {
		logx.Error(h.Log, reqID, op, "storage get failed", err, "path", mf.FilePath, "range", rangeHdr)
		if errors.Is(err, domain.ErrNotFound) {
			v1.WriteDomainError(w, r, domain.ErrNotFound)
			return
		}
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}
	defer rc.Close()

	if contentType == "" {
		contentType = mf.MimeType
	}
	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(contentLen, 10))
	w.Header().Set("Last-Modified", v1.HTTPTime(mf.UploadDate))
	if contentRange != "" {
		w.Header().Set("Content-Range", contentRange)
		w.WriteHeader(http.StatusPartialContent)
	}

	if _, err := io.Copy(w, rc); err != nil {
		// заголовки уже ушли, конверт не отдать — только лог
		logx.Error(h.Log, reqID, op, "stream copy failed", err, "file_id", fileID)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "file_id", fileID, "bytes", contentLen)
}
