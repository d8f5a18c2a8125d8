package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nbataa/agentmart/internal/config"
	"github.com/nbataa/agentmart/internal/handlers"
	"github.com/nbataa/agentmart/internal/imagestore"
	"github.com/nbataa/agentmart/internal/notification"
	"github.com/nbataa/agentmart/internal/pg"
	"github.com/nbataa/agentmart/internal/repo"
	"github.com/nbataa/agentmart/internal/service"
	"github.com/nbataa/agentmart/internal/service/settingsservice"
	"github.com/nbataa/agentmart/pkg/auth"
	"github.com/nbataa/agentmart/pkg/clients"
	"github.com/nbataa/agentmart/pkg/logger"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg      *config.Config
	api      *handlers.Handlers
	srv      *service.Services
	repo     *repo.Repositories
	notifier *notification.Service

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}
	auth.SetSecret(cfg.JWTSecret)

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)
	conn := pg.New(pool)

	a.cfg = cfg
	a.notifier = notification.New(a.buildSink(cfg))
	a.repo = repo.New(conn, txManager)
	a.srv = service.New(a.repo, txManager, a.notifier, a.buildSettingsCache(ctx, cfg))

	imageStore := imagestore.New(cfg.ImageStore, clients.NewHTTPClient())
	a.api = handlers.New(a.srv, imageStore)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func (a *Application) buildSink(cfg *config.Config) notification.Sink {
	if cfg.PushGateway != "" {
		return notification.NewHTTPSink(cfg.PushGateway, clients.NewHTTPClient())
	}
	return notification.LogSink{}
}

// buildSettingsCache falls back to a no-op cache when redis is unreachable;
// settings reads then always hit the database.
func (a *Application) buildSettingsCache(ctx context.Context, cfg *config.Config) settingsservice.Cache {
	if cfg.RedisAddress == "" {
		return settingsservice.NoopCache{}
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddress})
	if err := client.Ping(ctx).Err(); err != nil {
		zap.L().Warn("redis unreachable, settings cache disabled", zap.Error(err))
		return settingsservice.NoopCache{}
	}
	return settingsservice.NewRedisCache(client)
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
		a.notifier.Close()
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
