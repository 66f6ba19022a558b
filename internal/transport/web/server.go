package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Duonganhdu2002/government-sub000/internal/config"
	"github.com/Duonganhdu2002/government-sub000/internal/domain"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/mw"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/v1/application"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/v1/apptype"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/v1/auth"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/v1/dashboard"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/v1/health"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web/v1/specialtype"
)

type Server struct {
	log    *log.Logger
	server *http.Server
	cfg    *config.Config
}

func New(logger *log.Logger, cfg *config.Config, repos Repos, storage domain.FileStore, cache domain.Cache, authDeps AuthDeps, ttl CacheTTL) *Server {
	sub := func(prefix string) *log.Logger {
		return log.New(logger.Writer(), logger.Prefix()+"["+prefix+"] ", logger.Flags())
	}

	healthHandler := &health.Handler{
		Log: sub("health"), DB: repos.Citizens, Cache: pingAdapter{cache}, Storage: storage,
	}
	loginHandler := &auth.HandlerLogin{
		Log: sub("auth"), Citizens: repos.Citizens, Staff: repos.Staff,
		Hasher: authDeps.Hasher, Tokens: authDeps.Tokens,
	}
	registerHandler := &auth.HandlerRegister{
		Log: sub("auth"), Citizens: repos.Citizens, Hasher: authDeps.Hasher,
	}
	logoutHandler := &auth.HandlerLogout{
		Log: sub("auth"), Tokens: authDeps.Tokens, Blacklist: authDeps.Blacklist,
	}
	appHandler := &application.Handler{
		Log: sub("applications"), Apps: repos.Apps, Storage: storage, Cache: cache, ListTTL: ttl.Default,
	}
	typeHandler := &apptype.Handler{
		Log: sub("apptypes"), Ref: repos.Ref, Cache: cache, TTL: ttl.Default,
	}
	specialHandler := &specialtype.Handler{
		Log: sub("specialtypes"), Ref: repos.Ref, Cache: cache, TTL: ttl.Default,
	}
	dashHandler := &dashboard.Handler{
		Log: sub("dashboard"), Repo: repos.Dashboard, Cache: cache, TTL: ttl.Dashboard,
	}

	mwAuth := mw.AuthDeps{Tokens: authDeps.Tokens, Blacklist: authDeps.Blacklist}

	srv := &http.Server{
		Addr: cfg.AppPort,
		Handler: newRouter(routerDeps{
			health:    healthHandler,
			login:     loginHandler,
			register:  registerHandler,
			logout:    logoutHandler,
			apps:      appHandler,
			types:     typeHandler,
			special:   specialHandler,
			dash:      dashHandler,
			auth:      mwAuth,
			accessLog: logger,
		}),
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second, // отдача вложений может быть долгой
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{server: srv, cfg: cfg, log: logger}
}

func (ws *Server) Run() {
	ws.log.Printf("started on %s", ws.server.Addr)
	if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		ws.log.Fatalf("error: %v", err)
	}
}

func (ws *Server) Close(ctx context.Context) {
	if err := ws.server.Shutdown(ctx); err != nil {
		ws.log.Printf("forced to shutdown: %v", err)
	}
	ws.log.Println("exited gracefully")
}

// pingAdapter сужает domain.Cache до health.Pinger.
type pingAdapter struct{ c domain.Cache }

func (p pingAdapter) Ping(ctx context.Context) error { return p.c.Ping(ctx) }
