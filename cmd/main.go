package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog_app/internal/config"
	"blog_app/internal/flash"
	"blog_app/internal/handlers"
	"blog_app/internal/logger"
	"blog_app/internal/media"
	"blog_app/internal/repository"
	"blog_app/internal/repository/db"
	"blog_app/internal/server"
	"blog_app/internal/service"

	"github.com/redis/go-redis/v9"
)

const (
	configDir       = "configs"
	shutdownTimeout = 10 * time.Second
	redisPingWait   = 3 * time.Second
)

// @title        Blog API
// @version      1.0
// @description  Posts, accounts and profiles of a small multi-author blog.
// @BasePath     /
func main() {
	// load configs/config.yml + BLOG_* env
	cfg, err := config.Load(configDir)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.GetWithFormat(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	// open DB
	sqlDB, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	if err := os.MkdirAll(cfg.Media.Root, 0o755); err != nil {
		log.Fatalw("failed to create media root", "dir", cfg.Media.Root, "err", err)
	}

	flashStore, closeFlash, err := newFlashStore(cfg, log)
	if err != nil {
		log.Fatalw("failed to init flash store", "backend", cfg.Flash.Backend, "err", err)
	}
	defer closeFlash()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, service.Options{
		SigningKey: cfg.Auth.SigningKey,
		TokenTTL:   cfg.Auth.TokenTTL,
		Media:      media.NewStore(cfg.Media.Root),
	})
	apiHandler := handlers.NewHandler(services, log,
		handlers.WithFlash(flashStore),
		handlers.WithMediaRoot(cfg.Media.Root),
		handlers.WithCORS(cfg.CORS.AllowOrigins),
		handlers.WithSecureCookie(cfg.Auth.SecureCookie),
	)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg config.Config, log *logger.Logger) (*sql.DB, error) {
	log.Infow("opening database", "path", cfg.DB.Path)
	return db.InitDB(cfg.DB.Path)
}

// newFlashStore picks the notice backend. The returned func releases it.
func newFlashStore(cfg config.Config, log *logger.Logger) (flash.Store, func(), error) {
	if cfg.Flash.Backend != "redis" {
		return flash.NewCookieStore(cfg.Auth.SecureCookie), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), redisPingWait)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	log.Infow("flash notices stored in redis", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)

	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Errorw("failed to close redis", "err", err)
		}
	}
	return flash.NewRedisStore(client, cfg.Flash.TTL, cfg.Auth.SecureCookie), closeFn, nil
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
