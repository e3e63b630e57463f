package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hostsapi/hosts-api/handlers"
	"github.com/hostsapi/hosts-api/internal/config"
	"github.com/hostsapi/hosts-api/internal/events"
	"github.com/hostsapi/hosts-api/internal/host"
	"github.com/hostsapi/hosts-api/internal/host/repository"
	"github.com/hostsapi/hosts-api/internal/host/service"
	"github.com/hostsapi/hosts-api/internal/server"
	"github.com/hostsapi/hosts-api/pkg/logger"
	"github.com/hostsapi/hosts-api/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL is honoured before config so config errors are visible
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)
	logger.Infof("config loaded: env=%s redis=%v nats=%v", cfg.Server.Environment, cfg.Redis.Host != "", cfg.NATS.URL != "")

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	checks := map[string]handlers.ReadinessCheck{
		"store": func(context.Context) error { return nil },
	}

	var rdb *redis.Client
	if addr := cfg.Redis.Addr(); addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s): %v", addr, err)
		} else {
			logger.Infof("connected to Redis: %s", addr)
		}
		cancel()
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	var pub events.Publisher = events.Nop{}
	if cfg.NATS.URL != "" {
		np, err := events.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.SubjectPrefix)
		if err != nil {
			logger.Warnf("events disabled: %v", err)
			checks["events"] = func(context.Context) error { return err }
		} else {
			logger.Infof("publishing host events to %s (prefix %q)", cfg.NATS.URL, cfg.NATS.SubjectPrefix)
			pub = np
			checks["events"] = func(context.Context) error {
				if !np.Connected() {
					return errors.New("nats disconnected")
				}
				return nil
			}
		}
	}

	repo := repository.NewMemoryRepo(host.Demo())
	svc := service.NewMemoryService(repo, service.WithPublisher(pub))

	r := server.NewRouter(cfg, server.Deps{
		Hosts:   svc,
		Redis:   rdb,
		Checks:  checks,
		Started: startTime,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg, r); err != nil {
		logger.Errorf("server error: %v", err)
	}

	if err := pub.Close(); err != nil {
		logger.Warnf("failed to close event publisher: %v", err)
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Warnf("failed to close Redis client: %v", err)
		}
	}
	logger.Infof("server stopped")
}
