package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hostsapi/hosts-api/handlers"
	"github.com/hostsapi/hosts-api/internal/config"
	"github.com/hostsapi/hosts-api/internal/host/handler"
	"github.com/hostsapi/hosts-api/internal/host/service"
	"github.com/hostsapi/hosts-api/pkg/logger"
	"github.com/hostsapi/hosts-api/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Deps are the collaborators the router is wired with.
type Deps struct {
	Hosts   service.Service
	Redis   *redis.Client
	Checks  map[string]handlers.ReadinessCheck
	Started time.Time
}

// NewRouter builds the gin engine with the global middleware chain and all routes.
func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	r := gin.New()
	// recovery sits inside the access log and metrics so panics are recorded as 500s
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(),
		middleware.Metrics(),
		gin.CustomRecovery(func(c *gin.Context, rec any) {
			logger.Errorf("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, rec)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}),
		middleware.SecurityHeaders(),
		middleware.CORS(),
	)

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && deps.Redis != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(deps.Redis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
			logger.Infof("rate limiter enabled (redis, rps=%v burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
			logger.Infof("rate limiter enabled (memory, rps=%v burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	started := deps.Started
	if started.IsZero() {
		started = time.Now()
	}
	handlers.RegisterHealth(r, cfg.Server.ServiceName)
	handlers.RegisterReadiness(r, started, deps.Checks)
	handlers.RegisterSwagger(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handler.RegisterHostRoutes(r, deps.Hosts, cfg.Server.BodyLimit)
	return r
}

// Run serves h on cfg.Server.Addr() until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg *config.Config, h http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Infof("shutting down (timeout %s)", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
