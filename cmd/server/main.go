package main // Entry point package

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/flavor-house/internal/auth"
	"github.com/iliyamo/flavor-house/internal/config"
	"github.com/iliyamo/flavor-house/internal/database"
	"github.com/iliyamo/flavor-house/internal/handler"
	"github.com/iliyamo/flavor-house/internal/media"
	"github.com/iliyamo/flavor-house/internal/middleware"
	"github.com/iliyamo/flavor-house/internal/model"
	"github.com/iliyamo/flavor-house/internal/queue"
	"github.com/iliyamo/flavor-house/internal/repository"
	"github.com/iliyamo/flavor-house/internal/router"
	"github.com/iliyamo/flavor-house/internal/service"
	"github.com/iliyamo/flavor-house/internal/state"
)

func main() {
	cfg := config.Load() // Load environment config
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---- Storage ----
	docs, db, err := database.OpenStore(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Error("open store", "driver", cfg.DBDriver, "err", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}
	admins := repository.NewAdminRepo(docs)
	store := state.New(state.Deps{
		Dishes:       repository.NewDishRepo(docs),
		Categories:   repository.NewCategoryRepo(docs),
		Reservations: repository.NewReservationRepo(docs),
		Logger:       logger,
	})
	defer store.Close()

	// ---- Redis-backed features (all optional) ----
	var deny auth.Denylist = auth.NewMemoryDenylist()
	menuCache := middleware.NewMenuCache(config.LoadCacheConfig(), nil, logger)
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), nil, logger)
	if rc, ok := config.LoadRedisConfig(); ok {
		if rdb := config.NewRedisClient(rc); rdb != nil {
			defer rdb.Close()
			deny = auth.NewRedisDenylist(rdb)
			menuCache = middleware.NewMenuCache(config.LoadCacheConfig(), rdb, logger)
			limiter = middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, logger)
			logger.Info("redis connected", "addr", rc.Addr)
		} else {
			logger.Warn("redis unreachable, cache and rate limit disabled", "addr", rc.Addr)
		}
	}

	// ---- Reservation events ----
	var events service.ReservationEvents = service.LogPublisher{Log: logger}
	if cfg.RabbitURL != "" {
		events = service.NewRabbitPublisher(cfg.RabbitURL, logger)
		consumer := &queue.Consumer{URL: cfg.RabbitURL, LogPath: cfg.EventLog, Logger: logger}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("reservation consumer stopped", "err", err)
			}
		}()
	}

	// ---- Media ----
	mc := config.LoadMediaConfig()
	uploader := media.NewUploader(
		media.Credentials{CloudName: mc.CloudName, APIKey: mc.APIKey, APISecret: mc.APISecret},
		media.Options{Endpoint: mc.Endpoint, Folder: mc.Folder, MaxBytes: int64(mc.MaxMB) << 20, Concurrency: mc.Concurrency, Logger: logger},
	)

	authSvc := auth.NewService(admins, deny, cfg.JWTSecret, cfg.SessionTTL, logger)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(requestLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.CORSOrigins}))

	router.Register(e, router.Handlers{
		Health:       &handler.HealthHandler{DB: db},
		Public:       handler.NewPublicHandler(store, events, model.DefaultBusinessInfo, cfg.Location(), logger),
		Auth:         handler.NewAuthHandler(authSvc),
		Dishes:       handler.NewAdminDishHandler(store, menuCache),
		Reservations: handler.NewAdminReservationHandler(store),
		Reload:       &handler.ReloadHandler{Store: store, Menu: menuCache},
		Uploads:      &handler.UploadHandler{Media: uploader, Enabled: mc.Enabled()},
	}, router.Guards{
		Session:   authSvc,
		MenuCache: menuCache.Middleware(),
		RateLimit: limiter.Middleware(),
	})

	// Warm the store; a failed collection stays empty and retries lazily.
	if err := store.LoadAll(ctx); err != nil {
		logger.Warn("initial load incomplete", "err", err)
	}

	addr := ":" + cfg.Port
	go func() {
		logger.Info("listening", "addr", addr, "env", cfg.Env, "driver", cfg.DBDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
	logger.Info("stopped")
}

func newLogger(cfg config.Config) *slog.Logger {
	if cfg.Dev() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
			}
			if v.Error != nil {
				logger.Error("request", append(attrs, "err", v.Error)...)
				return nil
			}
			logger.Info("request", attrs...)
			return nil
		},
	})
}
