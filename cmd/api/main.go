package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/sanad-ai/triage-backend/internal/api/router"
	appconfig "github.com/sanad-ai/triage-backend/internal/config"
	"github.com/sanad-ai/triage-backend/internal/observability/metrics"
	"github.com/sanad-ai/triage-backend/internal/triage"
	"github.com/sanad-ai/triage-backend/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting triage-backend API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	redisClient := newRedisClient(ctx, cfg, logger)

	// History lives in Postgres when DATABASE_URL is set, otherwise Redis.
	var history triage.ConversationStore
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		history = triage.NewPGConversationStore(pool)
		logger.Info("using postgres conversation store")
	} else if redisClient != nil {
		history = triage.NewRedisConversationStore(redisClient)
		logger.Info("using redis conversation store")
	} else {
		logger.Warn("no conversation store configured, history disabled")
	}

	var patterns triage.PatternStore
	if redisClient != nil {
		patterns = triage.NewRedisPatternStore(redisClient)
	}

	// Sentiment oracle is optional; keyword fallback covers its absence.
	var sentiment triage.SentimentOracle
	if cfg.SentimentAPIURL != "" {
		oracle, err := triage.NewHTTPSentimentOracle(cfg.SentimentAPIURL, cfg.SentimentAPIToken, cfg.SentimentTimeout)
		if err != nil {
			logger.Error("failed to create sentiment oracle", "error", err)
			os.Exit(1)
		}
		sentiment = oracle
	}

	oracle, oracleModel := buildTextOracle(ctx, cfg, logger)

	reg := prometheus.NewRegistry()
	triageMetrics := metrics.NewTriageMetrics(reg)

	service := triage.NewService(triage.ServiceConfig{
		Classifier:     triage.NewClassifier(sentiment, logger),
		Analyzer:       triage.NewAnalyzer(),
		Selector:       triage.NewSelector(),
		Learner:        triage.NewLearner(patterns, logger),
		History:        history,
		Oracle:         oracle,
		OracleProvider: cfg.TextOracle,
		OracleModel:    oracleModel,
		OracleTimeout:  cfg.TextOracleTimeout,
		Metrics:        triageMetrics,
		Logger:         logger,
	})
	triageHandler := triage.NewHandler(service, logger)

	// Setup router
	r := router.New(&router.Config{
		Logger:             logger,
		TriageHandler:      triageHandler,
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

func newRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	opts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "addr", cfg.RedisAddr, "error", err)
		return nil
	}
	return client
}

// buildTextOracle constructs the configured generation client, wrapping
// it with a fallback provider when one is configured. A misconfigured
// provider disables generation rather than failing startup.
func buildTextOracle(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (triage.LLMClient, string) {
	primary, model := newProviderClient(ctx, cfg, cfg.TextOracle, logger)
	if primary == nil {
		return nil, ""
	}
	if cfg.TextOracleFallback != "" && cfg.TextOracleFallback != cfg.TextOracle {
		fallback, _ := newProviderClient(ctx, cfg, cfg.TextOracleFallback, logger)
		if fallback != nil {
			return triage.NewFallbackLLMClient(primary, fallback, logger), model
		}
	}
	return primary, model
}

func newProviderClient(ctx context.Context, cfg *appconfig.Config, provider string, logger *logging.Logger) (triage.LLMClient, string) {
	switch provider {
	case "", "none":
		return nil, ""
	case "gemini":
		client, err := triage.NewGeminiLLMClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
		if err != nil {
			logger.Warn("gemini oracle unavailable", "error", err)
			return nil, ""
		}
		return client, cfg.GeminiModelID
	case "bedrock":
		if cfg.BedrockModelID == "" {
			logger.Warn("bedrock oracle requires BEDROCK_MODEL_ID")
			return nil, ""
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			logger.Warn("bedrock oracle unavailable", "error", err)
			return nil, ""
		}
		return triage.NewBedrockLLMClient(bedrockruntime.NewFromConfig(awsCfg)), cfg.BedrockModelID
	case "ollama":
		client, err := triage.NewOllamaLLMClient(cfg.OllamaBaseURL, nil)
		if err != nil {
			logger.Warn("ollama oracle unavailable", "error", err)
			return nil, ""
		}
		return client, cfg.OllamaModelID
	default:
		logger.Warn("unknown text oracle provider", "provider", provider)
		return nil, ""
	}
}
