package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Duonganhdu2002/government-sub000/internal/auth/blacklist"
	"github.com/Duonganhdu2002/government-sub000/internal/auth/password"
	"github.com/Duonganhdu2002/government-sub000/internal/auth/token"
	"github.com/Duonganhdu2002/government-sub000/internal/config"
	"github.com/Duonganhdu2002/government-sub000/internal/domain"
	redisx "github.com/Duonganhdu2002/government-sub000/internal/infra/cache/redis"
	"github.com/Duonganhdu2002/government-sub000/internal/infra/database/postgres"
	localstorage "github.com/Duonganhdu2002/government-sub000/internal/infra/storage/local"
	s3storage "github.com/Duonganhdu2002/government-sub000/internal/infra/storage/s3"
	"github.com/Duonganhdu2002/government-sub000/internal/transport/web"
)

type App struct {
	config  *config.Config
	server  *web.Server
	log     *log.Logger
	storage domain.FileStore
	cache   domain.Cache
	repo    *postgres.PGRepo
}

func Build(ctx context.Context) (*App, error) {
	base := log.New(os.Stdout, "[app] ", log.LstdFlags)

	serverLog := log.New(base.Writer(), base.Prefix()+"[server] ", base.Flags())
	pgLog := log.New(base.Writer(), base.Prefix()+"[postgres] ", base.Flags())
	storageLog := log.New(base.Writer(), base.Prefix()+"[storage] ", base.Flags())
	redisLog := log.New(base.Writer(), base.Prefix()+"[redis] ", base.Flags())

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed load config: %w", err)
	}
	base.Printf("\n  configuration: %s-------------------", cfg)

	base.Println("init PostgreSQL")
	pgRepo, err := postgres.NewPGRepo(ctx, pgLog, cfg.GetDSN(), cfg.DBScheme)
	if err != nil {
		return nil, fmt.Errorf("failed init postgres: %w", err)
	}
	base.Println("PostgreSQL is initialized")

	// Контент-хранилище выбирается конфигом: локальный диск или S3/MinIO.
	var storage domain.FileStore
	switch cfg.StorageDriver {
	case "s3":
		base.Println("init S3 storage")
		storage, err = s3storage.New(s3storage.Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			UseSSL:    cfg.S3UseSSL,
			PathStyle: cfg.S3PathStyle,
		}, storageLog)
		if err != nil {
			return nil, fmt.Errorf("failed init s3: %w", err)
		}
	default:
		base.Println("init local storage")
		storage, err = localstorage.New(cfg.UploadDir, storageLog)
		if err != nil {
			return nil, fmt.Errorf("failed init local storage: %w", err)
		}
	}
	base.Println("storage is initialized")

	base.Println("init Redis")
	rc := redisx.New(redisx.Config{
		Addr:     cfg.RedisAddr,
		DB:       cfg.RedisDB,
		Password: cfg.RedisPassword,
	}, redisLog)
	if err := rc.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed init redis: %w", err)
	}
	base.Println("Redis is initialized")

	// Auth primitives
	hasher := password.NewDefault()
	tm := token.New(cfg.AuthJWTSecret, cfg.AuthIssuer, cfg.AuthTokenTTL)
	bl := blacklist.NewStore(rc)

	base.Println("init Server")
	repos := web.Repos{
		Citizens:  pgRepo,
		Staff:     pgRepo,
		Apps:      pgRepo,
		Ref:       pgRepo,
		Dashboard: pgRepo,
	}
	authDeps := web.AuthDeps{Hasher: hasher, Tokens: tm, Blacklist: bl}
	ttl := web.CacheTTL{Default: cfg.CacheTTL, Dashboard: cfg.CacheTTLDashboard}
	server := web.New(serverLog, cfg, repos, storage, rc, authDeps, ttl)
	base.Println("Server is initialized")

	base.Println("build ended")
	return &App{
		config:  cfg,
		server:  server,
		log:     base,
		storage: storage,
		repo:    pgRepo,
		cache:   rc,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Println("start application...")
	go a.server.Run()
	<-ctx.Done()
	a.log.Println("stop application...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.server.Close(stopCtx)
	a.repo.Close()
	a.cache.Close()

	return nil
}
