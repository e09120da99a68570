package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/irynavol/seatmap-go/internal/config"
	"github.com/irynavol/seatmap-go/internal/redis"
	"github.com/irynavol/seatmap-go/internal/remote"
	redisrepo "github.com/irynavol/seatmap-go/internal/repository/redis"
	"github.com/irynavol/seatmap-go/internal/service"
	httpgin "github.com/irynavol/seatmap-go/internal/transport/http/gin"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	services   *service.Services
	cache      *redisrepo.Cache
	pubsub     *redisrepo.PlansPubSub
	httpServer *http.Server
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	client := remote.NewClient(remote.Config{
		BaseURL: cfg.Remote.BaseURL,
		Timeout: cfg.Remote.Timeout,
	})

	// Redis is optional: without it there is no cache, pub/sub or rate
	// limiting, and everything else still works.
	var (
		cache   *redisrepo.Cache
		pubsub  *redisrepo.PlansPubSub
		limiter *redisrepo.SlidingWindowLimiter
		idem    httpgin.Idempotency
	)
	if cfg.Redis.Addr != "" {
		rdb, err := redis.New(context.Background(), redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		cache = redisrepo.New(rdb)
		pubsub = redisrepo.NewPlansPubSub(rdb)
		limiter = redisrepo.NewSlidingWindowLimiter(rdb, "http", 60, 1*time.Minute)
		idem = redisrepo.NewIdempotencyStore(rdb, 2*time.Hour)
	}

	afterSave := func(ctx context.Context, eventID uuid.UUID) {
		if cache != nil {
			_ = cache.InvalidateEvent(ctx, eventID)
		}
		if pubsub != nil {
			_ = pubsub.PublishPlanChanged(ctx, eventID)
		}
	}

	services := service.NewServices(client, logger, afterSave)
	router := httpgin.NewRouter(services, cache, limiter, idem, logger)

	return &App{
		cfg:      cfg,
		logger:   logger,
		services: services,
		cache:    cache,
		pubsub:   pubsub,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Peer saves invalidate this instance's cached viewer reads.
	if a.pubsub != nil {
		g.Go(func() error {
			err := a.pubsub.Subscribe(gCtx, func(ctx context.Context, eventID uuid.UUID) {
				if a.cache != nil {
					_ = a.cache.InvalidateEvent(ctx, eventID)
				}
			})
			if gCtx.Err() != nil {
				return nil
			}
			return err
		})
	}

	// Graceful shutdown: flush open sessions before the listener goes away.
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.services.Sessions.CloseAll(ctx)
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}
