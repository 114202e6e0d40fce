package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docdigest/internal/app"
	"docdigest/internal/config"
	hhttp "docdigest/internal/handler/http"
	"docdigest/internal/handler/http/document"
	"docdigest/internal/handler/http/requestid"
	"docdigest/internal/infra/summarizer"
	"docdigest/internal/observability/logging"
	"docdigest/internal/observability/tracing"
	pkgconfig "docdigest/pkg/config"
)

// modelLoadTimeout bounds the startup probe of the summarization model.
const modelLoadTimeout = 30 * time.Second

func main() {
	logger := initLogger()

	serverCfg, pipelineCfg, modelCfg := loadConfig(logger)

	tp := tracing.NewProvider(pkgconfig.GetEnvFloat("TRACE_SAMPLE_RATIO", 1.0))
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}()

	pipeline := app.New(pipelineCfg, modelCfg, logger)
	defer func() { _ = pipeline.Model.Close() }()

	version := getVersion()
	components := setupServer(logger, serverCfg, pipelineCfg, pipeline, version)

	// The model loads in the background; /ready reports 503 until it is done.
	go pipeline.Load(context.Background(), modelLoadTimeout, logger)

	runServer(logger, serverCfg, components, version)
}

// initLogger initializes the JSON logger and makes it the default.
func initLogger() *slog.Logger {
	logger := logging.NewServiceLogger()
	slog.SetDefault(logger)
	return logger
}

// loadConfig loads and validates every configuration section, exiting on error.
func loadConfig(logger *slog.Logger) (*config.ServerConfig, *config.PipelineConfig, *summarizer.ModelConfig) {
	serverCfg, err := config.LoadServerConfig()
	if err != nil {
		logger.Error("failed to load server configuration", slog.Any("error", err))
		os.Exit(1)
	}
	pipelineCfg, err := config.LoadPipelineConfig()
	if err != nil {
		logger.Error("failed to load pipeline configuration", slog.Any("error", err))
		os.Exit(1)
	}
	modelCfg, err := summarizer.LoadModelConfig()
	if err != nil {
		logger.Error("failed to load summarizer configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		slog.String("addr", serverCfg.Addr),
		slog.String("provider", modelCfg.Provider),
		slog.String("model", modelCfg.Model),
		slog.Int("chunk_size", pipelineCfg.ChunkSize),
		slog.Int64("max_upload_bytes", pipelineCfg.MaxUploadBytes),
		slog.Int("max_concurrent", pipelineCfg.MaxConcurrent),
		slog.Duration("request_timeout", pipelineCfg.RequestTimeout),
		slog.Int("rate_limit_per_min", serverCfg.RateLimitPerMinute))
	return serverCfg, pipelineCfg, modelCfg
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	return pkgconfig.GetEnvString("VERSION", "dev")
}

// ServerComponents holds the handler chain and the pieces health reports on.
type ServerComponents struct {
	Handler     http.Handler
	RateLimiter *hhttp.RateLimiter
}

// setupServer registers routes and wraps them in the middleware chain.
func setupServer(
	logger *slog.Logger,
	serverCfg *config.ServerConfig,
	pipelineCfg *config.PipelineConfig,
	pipeline *app.Pipeline,
	version string,
) *ServerComponents {
	limiter := hhttp.NewRateLimiter(serverCfg.RateLimitPerMinute)

	mux := http.NewServeMux()
	mux.Handle("GET /health", &hhttp.HealthHandler{
		Model:       pipeline.Model,
		Provider:    pipeline.Provider,
		RateLimiter: limiter,
		Version:     version,
	})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Model: pipeline.Model})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	uploads := document.NewHandler(pipeline.Service, document.Config{
		MaxUploadBytes: pipelineCfg.MaxUploadBytes,
		MaxConcurrent:  pipelineCfg.MaxConcurrent,
		RequestTimeout: pipelineCfg.RequestTimeout,
	})
	document.Register(mux, uploads, limiter.Limit)

	return &ServerComponents{
		Handler:     applyMiddleware(logger, mux),
		RateLimiter: limiter,
	}
}

// applyMiddleware wraps the handler with the middleware chain.
// Order, outermost first: Request ID → Tracing → Recovery → Logging → Metrics.
// The body limit and rate limit are applied per route by the upload handler.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	chain := handler
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, cfg *config.ServerConfig, components *ServerComponents, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	// In-flight digests finish on their own deadline; Shutdown waits for them.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	cancel()
	logger.Info("server stopped")
}
