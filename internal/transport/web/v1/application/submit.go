package application

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Duonganhdu2002/government-sub000/internal/domain"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/logx"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/mw"
	v1 "github.com/Duonganhdu2002/government-sub000/internal/transport/web/v1"
)

// Submit godoc
// @Summary     Submit application with attachments
// @Description multipart: title, description, application_type_id,
//              special_application_type_id (опц.), files[] (опц., image/* и video/*).
//              Заявление и все вложения создаются одной транзакцией;
//              кэш инвалидируется строго после коммита.
// @Tags        applications
// @Accept      multipart/form-data
// @Produce     json
// @Param       title formData string true "title"
// @Param       application_type_id formData int true "application type id"
// @Param       description formData string false "description"
// @Param       special_application_type_id formData int false "special type id"
// @Param       files formData file false "attachments"
// @Success     200 {object} domain.APIEnvelope{response=applicationWithFiles}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     413 {object} domain.APIEnvelope
// @Failure     415 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Failure     504 {object} domain.APIEnvelope
// @Router      /api/v1/applications [post]
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	const op = "applications.submit"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	me, ok := domain.PrincipalFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		logx.Error(h.Log, reqID, op, "parse multipart failed", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	app := domain.Application{
		CitizenID:   me.ID,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	if raw := r.FormValue("application_type_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			logx.Error(h.Log, reqID, op, "bad application_type_id", err, "raw", raw)
			v1.WriteDomainError(w, r, domain.ErrBadParams)
			return
		}
		app.ApplicationTypeID = id
	}
	if raw := r.FormValue("special_application_type_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			logx.Error(h.Log, reqID, op, "bad special_application_type_id", err, "raw", raw)
			v1.WriteDomainError(w, r, domain.ErrBadParams)
			return
		}
		app.SpecialApplicationTypeID = &id
	}

	if err := app.ValidateForSubmit(); err != nil {
		logx.Error(h.Log, reqID, op, "validation failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	// Пакет вложений: открываем все части, валидация всего пакета —
	// внутри Stage, до первой записи в хранилище.
	var uploads []domain.Upload
	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["files"] {
			f, err := fh.Open()
			if err != nil {
				logx.Error(h.Log, reqID, op, "open multipart file failed", err, "name", fh.Filename)
				v1.WriteDomainError(w, r, domain.ErrBadParams)
				return
			}
			defer f.Close()
			mime := fh.Header.Get("Content-Type")
			if mime == "" {
				mime = "application/octet-stream"
			}
			uploads = append(uploads, domain.Upload{
				OriginalName: fh.Filename,
				MimeType:     mime,
				Size:         fh.Size,
				Content:      f,
			})
		}
	}

	staged, err := h.Storage.Stage(r.Context(), uploads)
	if err != nil {
		logx.Error(h.Log, reqID, op, "stage uploads failed", err, "files", len(uploads))
		v1.WriteDomainError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), submitTimeout)
	defer cancel()

	created, files, err := h.Apps.CreateApplication(ctx, app, staged)
	if err != nil {
		// транзакция откатилась целиком; уже сохранённые файлы остаются
		// в хранилище как сироты, к заявлению ничего не привязано
		logx.Error(h.Log, reqID, op, "create application failed", err, "staged", len(staged))
		v1.WriteDomainError(w, r, err)
		return
	}

	// Инвалидация — строго после коммита
	h.invalidator().Invalidate(r.Context(),
		domain.ApplicationKeySet(created.ID, created.CitizenID, created.ApplicationTypeID)...)

	logx.Info(h.Log, reqID, op, "ok", "application_id", created.ID, "files", len(files))
	v1.WriteOKResponse(w, r, applicationWithFiles{Application: created, Files: files})
}
