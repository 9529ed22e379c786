package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aixcyberchallenge/captcha-solver/internal/config"
	"github.com/aixcyberchallenge/captcha-solver/internal/fakeapi"
	"github.com/aixcyberchallenge/captcha-solver/internal/logger"
	otelcaptcha "github.com/aixcyberchallenge/captcha-solver/internal/otel"
	"github.com/aixcyberchallenge/captcha-solver/internal/types"
)

// Serves the fake captcha service on the configured listen address. Every job is solved
// on the first poll with a fixed token, accepting only the configured api key.
func main() {
	logger.InitSlog(slog.LevelInfo)

	conf, err := config.GetConfig()
	if err != nil {
		logger.Logger.Error("error calling GetConfig", "error", err)
		os.Exit(types.ExitErrored)
	}

	logger.LogLevel.Set(slog.Level(conf.Logging.App.Level))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := otelcaptcha.SetupOTelSDK(ctx, "captcha-mock-solver", conf.Logging.UseOTLP, os.Stdout)
	if err != nil {
		logger.Logger.Warn("failed to setup otel sdk", "error", err)
	}
	defer func() {
		if fail := shutdown(context.Background()); fail != nil {
			logger.Logger.Warn("no clean shutdown for otel", "error", fail)
		}
	}()

	e := fakeapi.BuildEcho(logger.Logger, fakeapi.New(conf.APIKey))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Logger.Error("failed to shut down server", "error", err)
		}
	}()

	logger.Logger.Info("serving fake captcha service", "address", conf.ListenAddress)
	if err := e.Start(conf.ListenAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Logger.Error("server failed", "error", err)
		stop()
		os.Exit(types.ExitErrored)
	}
}
