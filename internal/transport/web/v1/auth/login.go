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

type HandlerLogin struct {
	Log      *log.Logger
	Citizens domain.CitizensRepo
	Staff    domain.StaffRepo
	Hasher   domain.PasswordHasher
	Tokens   domain.TokenManager
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

func decodeLogin(r *http.Request) (loginRequest, error) {
	var req loginRequest
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, err
		}
		return req, nil
	}
	_ = r.ParseForm()
	req.Username = r.FormValue("username")
	req.Password = r.FormValue("password")
	return req, nil
}

// Login godoc
// @Summary     Authenticate citizen
// @Description Возвращает JWT при валидных логине и пароле гражданина.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body loginRequest true "username, password"
// @Success     200 {object} domain.APIEnvelope{response=loginResponse}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /api/v1/auth/login [post]
func (h *HandlerLogin) Login(w http.ResponseWriter, r *http.Request) {
	const op = "auth.login"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	req, err := decodeLogin(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if req.Username == "" || req.Password == "" {
		logx.Error(h.Log, reqID, op, "empty username or password", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	c, err := h.Citizens.CitizenByUsername(r.Context(), req.Username)
	if err != nil {
		logx.Error(h.Log, reqID, op, "citizen not found", err, "username", req.Username)
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	ok, err := h.Hasher.Verify(req.Password, c.PassHash)
	if err != nil || !ok {
		logx.Error(h.Log, reqID, op, "password verify failed", err, "username", req.Username)
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	token, _, err := h.Tokens.Issue(r.Context(), c.ID, c.Username, domain.RoleCitizen)
	if err != nil {
		logx.Error(h.Log, reqID, op, "issue token failed", err, "citizen_id", c.ID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "citizen_id", c.ID, "username", c.Username)
	v1.WriteOKResponse(w, r, loginResponse{Token: token, Role: domain.RoleCitizen})
}

// StaffLogin godoc
// @Summary     Authenticate staff member
// @Description Возвращает JWT сотрудника; роль берётся из записи staff (staff|admin).
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body loginRequest true "username, password"
// @Success     200 {object} domain.APIEnvelope{response=loginResponse}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /api/v1/auth/staff/login [post]
func (h *HandlerLogin) StaffLogin(w http.ResponseWriter, r *http.Request) {
	const op = "auth.staff_login"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	req, err := decodeLogin(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if req.Username == "" || req.Password == "" {
		logx.Error(h.Log, reqID, op, "empty username or password", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	s, err := h.Staff.StaffByUsername(r.Context(), req.Username)
	if err != nil {
		logx.Error(h.Log, reqID, op, "staff not found", err, "username", req.Username)
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	ok, err := h.Hasher.Verify(req.Password, s.PassHash)
	if err != nil || !ok {
		logx.Error(h.Log, reqID, op, "password verify failed", err, "username", req.Username)
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	token, _, err := h.Tokens.Issue(r.Context(), s.ID, s.Username, s.Role)
	if err != nil {
		logx.Error(h.Log, reqID, op, "issue token failed", err, "staff_id", s.ID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "staff_id", s.ID, "username", s.Username, "role", s.Role)
	v1.WriteOKResponse(w, r, loginResponse{Token: token, Role: s.Role})
}
