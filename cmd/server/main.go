package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"go.pilab.hu/portal/config"
	"go.pilab.hu/portal/gate"
	"go.pilab.hu/portal/log"
	"go.pilab.hu/portal/provider"
	"go.pilab.hu/portal/session"
	"go.pilab.hu/portal/tracing"
	"go.pilab.hu/portal/web"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLogger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logLevel, parseErr := zerolog.ParseLevel(cfg.LogLevel)
	if parseErr != nil {
		logLevel = zerolog.InfoLevel
	}
	appLogger := log.NewZerologAdapter(logLevel, cfg.LogPretty)

	ctx := context.Background()
	appLogger.Info(ctx, "Starting account portal", map[string]any{
		"http_port":         cfg.HTTPPort,
		"provider_endpoint": cfg.ProviderEndpoint,
		"cookie_name":       cfg.CookieName,
		"log_level":         logLevel.String(),
	})

	tracerProvider, err := tracing.InitTracerProvider(cfg.OtelServiceName)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize TracerProvider", err, nil)
	}

	providerCfg := provider.Config{
		Endpoint:  cfg.ProviderEndpoint,
		ProjectID: cfg.ProviderProjectID,
		APIKey:    cfg.ProviderAPIKey,
	}
	cookies := session.NewStore(cfg.CookieName)
	resolver := gate.NewResolver(cookies, gate.ProviderSessions(providerCfg))

	renderer, err := web.NewRenderer()
	if err != nil {
		appLogger.Fatal(ctx, "Failed to parse templates", err, nil)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Use(echomw.RequestID())
	e.Use(echomw.Recover())
	e.Use(gate.EdgeGate(cookies))

	handlers := web.NewHandlers(cfg, cookies, resolver,
		web.ProviderAdmin(providerCfg),
		gate.ProviderSessions(providerCfg),
		appLogger)
	handlers.RegisterRoutes(e)

	go func() {
		if err := e.Start(":" + cfg.HTTPPort); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal(ctx, "Failed to start HTTP server", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info(ctx, "Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(shutdownCtx, "HTTP server shutdown error", err, nil)
	}
	shutdownTracer(shutdownCtx, appLogger, tracerProvider)

	appLogger.Info(shutdownCtx, "Server gracefully stopped.")
}

func shutdownTracer(ctx context.Context, logger log.Logger, tp *sdktrace.TracerProvider) {
	if tp == nil {
		return
	}
	if err := tp.Shutdown(ctx); err != nil {
		logger.Error(ctx, "TracerProvider shutdown error", err, nil)
	}
}
