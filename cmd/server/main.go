package main

import (
	"log"
	"log/slog"
	"net/http"
	"time"

	"codeforge/internal/app"
	"codeforge/internal/config"
	"codeforge/internal/ratelimit"
	"codeforge/internal/server"
	"codeforge/internal/util"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	sessionTTL, err := config.ParseSessionTTL(cfg.SessionTTL)
	if err != nil {
		log.Fatalf("failed to parse session TTL: %v", err)
	}
	generateTimeout, err := config.ParseGenerateTimeout(cfg.GenerateTimeout)
	if err != nil {
		log.Fatalf("failed to parse generate timeout: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)

	appCore, err := app.New(app.Config{
		DatabaseURL:     cfg.DatabaseURL,
		JWTSecret:       cfg.JWTSecret,
		SessionTTL:      sessionTTL,
		OpenAIAPIKey:    cfg.OpenAIAPIKey,
		OpenAIModel:     cfg.OpenAIModel,
		CohereAPIKey:    cfg.CohereAPIKey,
		CohereModel:     cfg.CohereModel,
		AnthropicAPIKey: cfg.AnthropicAPIKey,
		AnthropicModel:  cfg.AnthropicModel,
		GenerateTimeout: generateTimeout,
	})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	httpServer := server.New(server.Config{
		App:             appCore,
		AllowedOrigins:  cfg.AllowedOrigins,
		SignupLimiter:   newLimiter(cfg, "signup", cfg.SignupRateLimitPerMinute),
		LoginLimiter:    newLimiter(cfg, "login", cfg.LoginRateLimitPerMinute),
		GenerateLimiter: newLimiter(cfg, "generate", cfg.GenerateRateLimitPerMinute),
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
	}
}

func newLimiter(cfg config.FileConfig, name string, perMinute int) *ratelimit.FixedWindowLimiter {
	if perMinute <= 0 {
		return nil
	}
	limiter, err := ratelimit.NewRedisFixedWindowLimiter(
		cfg.RedisAddr,
		cfg.RedisPassword,
		"codeforge:ratelimit:"+name,
		perMinute,
		time.Minute,
	)
	if err != nil {
		log.Fatalf("failed to init %s rate limiter: %v", name, err)
	}
	return limiter
}
