package web

import (
	"log"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Duonganhdu2002/government-sub000/internal/docs"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/mw"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/v1/application"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/v1/apptype"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/v1/auth"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/v1/dashboard"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/v1/health"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/v1/specialtype"
)

type routerDeps struct {
	health   *health.Handler
	login    *auth.HandlerLogin
	register *auth.HandlerRegister
	logout   *auth.HandlerLogout
	apps     *application.Handler
	types    *apptype.Handler
	special  *specialtype.Handler
	dash     *dashboard.Handler

	auth      mw.AuthDeps
	accessLog *log.Logger
}

func newRouter(d routerDeps) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /v1/healthz", d.health.Liveness)
	mux.HandleFunc("GET /v1/readyz", d.health.Readiness)

	// auth
	mux.HandleFunc("POST /api/v1/auth/register", limitBody(1<<20, d.register.Register))
	mux.HandleFunc("POST /api/v1/auth/login", limitBody(1<<20, d.login.Login))
	mux.HandleFunc("POST /api/v1/auth/staff/login", limitBody(1<<20, d.login.StaffLogin))
	mux.HandleFunc("POST /api/v1/auth/logout", limitBody(1<<20, d.logout.Logout))

	// applications
	requireAuth := func(h http.HandlerFunc) http.Handler { return mw.RequireAuth(d.auth, h) }
	requireStaff := func(h http.HandlerFunc) http.Handler { return mw.RequireStaff(d.auth, h) }

	mux.Handle("POST /api/v1/applications", requireAuth(limitBody(512<<20, d.apps.Submit))) // пакет до 10x50MB
	mux.Handle("GET /api/v1/applications", requireStaff(d.apps.List))
	mux.Handle("GET /api/v1/applications/mine", requireAuth(d.apps.Mine))
	mux.Handle("GET /api/v1/applications/{id}", requireAuth(d.apps.GetOne))
	mux.Handle("DELETE /api/v1/applications/{id}", requireAuth(d.apps.Delete))
	mux.Handle("PATCH /api/v1/applications/{id}/status", requireStaff(limitBody(1<<20, d.apps.UpdateStatus)))
	mux.Handle("GET /api/v1/applications/{id}/attachments/{fileID}", requireAuth(d.apps.Attachment))

	// справочники: чтение публичное, запись — staff
	mux.HandleFunc("GET /api/v1/application-types", d.types.List)
	mux.HandleFunc("GET /api/v1/application-types/{id}", d.types.GetOne)
	mux.Handle("POST /api/v1/application-types", requireStaff(limitBody(1<<20, d.types.Create)))
	mux.Handle("PUT /api/v1/application-types/{id}", requireStaff(limitBody(1<<20, d.types.Update)))
	mux.Handle("DELETE /api/v1/application-types/{id}", requireStaff(d.types.Delete))

	mux.HandleFunc("GET /api/v1/special-types", d.special.List)
	mux.HandleFunc("GET /api/v1/special-types/{id}", d.special.GetOne)
	mux.Handle("POST /api/v1/special-types", requireStaff(limitBody(1<<20, d.special.Create)))
	mux.Handle("PUT /api/v1/special-types/{id}", requireStaff(limitBody(1<<20, d.special.Update)))
	mux.Handle("DELETE /api/v1/special-types/{id}", requireStaff(d.special.Delete))

	// dashboard
	mux.Handle("GET /api/v1/dashboard/stats", requireStaff(d.dash.Stats))

	// swagger
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	return mw.WithRequestID(mw.Logging(d.accessLog)(mux))
}

func limitBody(n int64, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, n)
		h(w, r)
	}
}
