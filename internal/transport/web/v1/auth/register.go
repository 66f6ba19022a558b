package auth

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/Duonganhdu2002/government-sub000/internal/domain"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/logx"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/mw"
	v1 "github.com/Duonganhdu2002/government-sub000/internal/transport/web/v1"
)

// HandlerRegister обрабатывает POST /v1/auth/register
type HandlerRegister struct {
	Log      *log.Logger
	Citizens domain.CitizensRepo
	Hasher   domain.PasswordHasher
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	AreaCode string `json:"area_code"`
}

type registerResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Register godoc
// @Summary     Register new citizen
// @Description Самостоятельная регистрация заявителя.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body registerRequest true "username, password, full_name, email, area_code"
// @Success     200 {object} domain.APIEnvelope{response=registerResponse}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /api/v1/auth/register [post]
func (h *HandlerRegister) Register(w http.ResponseWriter, r *http.Request) {
	const op = "auth.register"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	var req registerRequest
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logx.Error(h.Log, reqID, op, "bad json", err)
			v1.WriteDomainError(w, r, domain.ErrBadParams)
			return
		}
	} else {
		_ = r.ParseForm()
		req.Username = r.FormValue("username")
		req.Password = r.FormValue("password")
		req.FullName = r.FormValue("full_name")
		req.Email = r.FormValue("email")
		req.AreaCode = r.FormValue("area_code")
	}

	if !domain.ValidUsername(req.Username) || !domain.ValidPassword(req.Password) {
		logx.Error(h.Log, reqID, op, "validation failed", domain.ErrBadParams, "username", req.Username)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	hashStr, err := h.Hasher.Hash(req.Password)
	if err != nil {
		logx.Error(h.Log, reqID, op, "hash failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	c, err := h.Citizens.CreateCitizen(r.Context(), domain.Citizen{
		Username: req.Username,
		FullName: req.FullName,
		Email:    req.Email,
		PassHash: hashStr,
		AreaCode: req.AreaCode,
	})
	if err != nil {
		// уникальный конфликт по username — отдаём как bad params
		logx.Error(h.Log, reqID, op, "create citizen failed", err, "username", req.Username)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "citizen_id", c.ID, "username", c.Username)
	v1.WriteOKResponse(w, r, registerResponse{ID: c.ID, Username: c.Username})
}
