package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"dealer-backend/internal/api/routes"
	"dealer-backend/internal/config"
	"dealer-backend/pkg/cleanup"
	"dealer-backend/pkg/database"
	"dealer-backend/pkg/logger"
	"dealer-backend/pkg/ratelimit"
	"dealer-backend/pkg/storage"
)

func main() {
	cfg := config.Load()

	zapLog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer zapLog.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		zapLog.Fatal("database connection failed", zap.Error(err))
	}

	// Redis is optional: with it the rate limit state is shared across
	// instances, without it each instance counts on its own.
	limitConfig := ratelimit.DefaultConfig()
	limitConfig.Enabled = cfg.RateLimitEnabled
	var limiter ratelimit.Limiter
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			zapLog.Fatal("invalid redis url", zap.Error(err))
		}
		limiter = ratelimit.NewRedisLimiter(redis.NewClient(opts), limitConfig)
		zapLog.Info("rate limiting backed by redis")
	} else {
		memLimiter := ratelimit.NewMemoryLimiter(limitConfig)
		defer memLimiter.Close()
		limiter = memLimiter
		zapLog.Info("rate limiting in process memory")
	}

	store := storage.NewBucketClient(cfg.StorageURL, cfg.StorageBucket, cfg.StorageServiceKey)

	janitor := cleanup.NewJanitor(store, zapLog)
	janitor.Start()
	defer janitor.Stop()

	router := gin.Default()

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "X-RateLimit-Limit", "Retry-After"},
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	}
	router.Use(cors.New(corsConfig))

	routes.SetupRoutes(router, routes.Deps{
		DB:      db,
		Config:  cfg,
		Log:     zapLog,
		Limiter: limiter,
		Store:   store,
		Cleaner: janitor,
	})

	zapLog.Info("server starting", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		zapLog.Fatal("server exited", zap.Error(err))
	}
}
