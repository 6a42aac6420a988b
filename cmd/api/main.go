package main

import (
	"context"
	"log"

	"my-chat/config"
	"my-chat/internal/handler"
	"my-chat/internal/redis"
	"my-chat/internal/repository"
	"my-chat/internal/server"
	"my-chat/internal/services"
	"my-chat/internal/session"
	"my-chat/pkg/database"
	"my-chat/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	l := logger.New(cfg.AppEnv)
	logger.SetGlobalLogger(l)
	defer l.Sync()

	ctx := context.Background()

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.MigrateUp(ctx, db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	tokens := services.NewTokenIssuer(cfg)

	var limiter *redis.RateLimiter
	if cfg.RedisEnabled() {
		client := redis.NewClient(cfg)
		defer client.Close()

		if err := redis.Ping(ctx, client); err != nil {
			l.Logger.Warn("redis unavailable, continuing without rate limiting and revocation", zap.Error(err))
		} else {
			limits := redis.DefaultRateLimitConfig()
			limits.AuthLimit = cfg.AuthRateLimit
			limiter = redis.NewRateLimiter(client, limits)
			if cfg.TokenDenylist {
				tokens.WithDenylist(redis.NewTokenDenylist(client))
			}
			l.Infof("Redis connected at %s:%s", cfg.RedisHost, cfg.RedisPort)
		}
	}

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, services.NewPasswordHasher(), tokens, l)
	cookies := session.NewCookieManager(cfg.IsProduction(), cfg.AccessTTL(), cfg.RefreshTTL())

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		Auth:   handler.NewAuthHandler(authService, cookies, !cfg.IsProduction()),
		Health: handler.NewHealthHandler(db),
	}, authService, limiter)

	if err := srv.Start(); err != nil {
		l.Errorf("Server exited with error: %v", err)
	}
}
