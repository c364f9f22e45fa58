package main

import (
	"context"   // Redis ping and shutdown deadline
	"errors"    // Server close detection
	"net/http"  // HTTP server
	"os"        // Signals
	"os/signal" // Signal notification
	"syscall"   // SIGTERM
	"time"      // Timeouts

	"wanderlist/internal/api"        // Custom package for API handlers
	"wanderlist/internal/config"     // Custom package for configuration
	"wanderlist/internal/db"         // Database connection
	"wanderlist/internal/explore"    // Third-party data proxy
	"wanderlist/internal/middleware" // Custom package for middleware
	"wanderlist/internal/utils"      // Redis cache

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	// Refuse to start without the signing key and database settings
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	// Connect to the database
	gdb, err := db.Connect(cfg.DBType, cfg.DSN(), cfg.DBMaxConns)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client when configured, otherwise run without a cache
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		_, err = redisClient.Ping(ctx).Result()
		cancel()
		if err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logrus.Warn("REDIS_ADDR not set, caching disabled")
	}
	cache := utils.NewCache(redisClient, "wanderlist:")

	// Third-party data proxy
	explorer := explore.NewClient(explore.Options{
		CountriesURL: cfg.CountriesAPIURL,
		SerpAPIURL:   cfg.SerpAPIURL,
		SerpAPIKey:   cfg.SerpAPIKey,
		WeatherURL:   cfg.WeatherAPIURL,
		WeatherKey:   cfg.WeatherAPIKey,
		CurrencyURL:  cfg.CurrencyAPIURL,
		CurrencyKey:  cfg.CurrencyAPIKey,
		CacheTTL:     cfg.ProxyCacheTTL,
	}, cache)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Limit /register and /login per client IP
	done := make(chan struct{})
	limiter := middleware.NewIPRateLimiter(5, 10)
	go limiter.Run(done)

	r := api.NewRouter(api.Deps{
		DB:          gdb,
		Cache:       cache,
		Explorer:    explorer,
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSOrigins,
		AuthLimiter: limiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("Server running on %s", cfg.AppPort) // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	// Wait for an interrupt, then drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server")
	close(done)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("forced shutdown: %v", err)
	}
	if sqlDB, err := gdb.DB(); err == nil {
		sqlDB.Close()
	}
	logrus.Info("Server stopped")
}
