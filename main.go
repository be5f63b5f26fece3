package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/candies-app/candies/internal/auth"
	"github.com/candies-app/candies/internal/candy/repository"
	"github.com/candies-app/candies/internal/candy/service"
	"github.com/candies-app/candies/internal/config"
	"github.com/candies-app/candies/internal/database"
	"github.com/candies-app/candies/internal/server"
	"github.com/candies-app/candies/pkg/logger"
	"github.com/candies-app/candies/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	gin.DefaultWriter = logger.Writer()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Infof("config loaded: redis=%v rate_limit=%v auth=%v", cfg.Redis.Host != "", cfg.RateLimit.Enabled, cfg.Auth.Enabled())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			_ = rdb.Close()
			rdb = nil
		} else {
			defer rdb.Close()
			logger.Infof("connected to Redis %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	svc, mongoClient, store := openStore(ctx, cfg.MongoDB, 5, time.Second)
	if mongoClient != nil {
		defer func() { _ = mongoClient.Disconnect(context.Background()) }()
	}
	logger.Infof("store: %s", store)

	verifier, err := auth.NewVerifier(ctx, cfg.Auth)
	if err != nil {
		logger.Fatalf("failed to initialize token verifier: %v", err)
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	r, err := server.NewRouter(server.Deps{
		Service:   svc,
		Verifier:  verifier,
		Redis:     rdb,
		RateLimit: cfg.RateLimit,
		Ready:     readiness(cfg, mongoClient, rdb),
		Started:   startTime,
	})
	if err != nil {
		logger.Fatalf("failed to build router: %v", err)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}

// openStore connects to MongoDB when a URI is configured and falls back to
// the in-memory repository otherwise. store names the effective backend.
func openStore(ctx context.Context, cfg config.MongoDBConfig, attempts int, backoff time.Duration) (svc *service.Service, client *mongo.Client, store string) {
	if cfg.URI != "" {
		c, err := database.ConnectMongoWithRetry(ctx, cfg.URI, cfg.Timeout, attempts, backoff)
		if err == nil {
			col := c.Database(cfg.Database).Collection(cfg.Collection)
			return service.NewService(repository.NewMongoRepo(col)), c, "mongodb " + cfg.Database + "." + cfg.Collection
		}
		logger.Warnf("%v; using in-memory store", err)
	}
	return service.NewMemoryService(), nil, "memory"
}

// readiness reports MongoDB when a URI is configured and Redis when the
// rate limiter depends on it.
func readiness(cfg *config.Config, mc *mongo.Client, rdb *redis.Client) func() map[string]bool {
	return func() map[string]bool {
		deps := map[string]bool{"store": true}
		if cfg.MongoDB.URI != "" {
			ok := false
			if mc != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				ok = mc.Ping(ctx, nil) == nil
				cancel()
			}
			deps["mongo"] = ok
		}
		if cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis {
			deps["redis"] = rdb != nil
		}
		return deps
	}
}
