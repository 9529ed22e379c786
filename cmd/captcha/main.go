package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"

	"go.opentelemetry.io/otel"

	"github.com/aixcyberchallenge/captcha-solver/cmd/captcha/cmds"
	exiterrors "github.com/aixcyberchallenge/captcha-solver/internal/exit_errors"
	"github.com/aixcyberchallenge/captcha-solver/internal/logger"
	otelcaptcha "github.com/aixcyberchallenge/captcha-solver/internal/otel"
	"github.com/aixcyberchallenge/captcha-solver/internal/types"
)

var tracer = otel.Tracer("github.com/aixcyberchallenge/captcha-solver/cmd/captcha")

func runApp(ctx context.Context) int {
	useOTLP := false
	if raw, ok := os.LookupEnv("CAPTCHA_LOGGING_USE_OTLP"); ok {
		var err error
		useOTLP, err = strconv.ParseBool(raw)
		if err != nil {
			logger.Logger.Warn("CAPTCHA_LOGGING_USE_OTLP env var is invalid", "error", err)
			useOTLP = false
		}
	}

	shutdown, err := otelcaptcha.SetupOTelSDK(ctx, "captcha", useOTLP, os.Stderr)
	if err != nil {
		logger.Logger.Warn("failed to setup otel sdk", "error", err)
	}
	defer func() {
		fail := shutdown(ctx)
		if fail != nil {
			logger.Logger.Warn("no clean shutdown for otel", "error", fail)
		}
	}()

	carrier := otelcaptcha.CreateEnvCarrier()
	ctx = otel.GetTextMapPropagator().Extract(ctx, carrier)
	ctx, span := tracer.Start(ctx, "Captcha")
	defer span.End()

	err = cmds.Execute(ctx)
	if err != nil {
		logger.Logger.ErrorContext(ctx, "error executing subcommands", "error", err)

		var ee exiterrors.ExitError
		if errors.As(err, &ee) {
			return ee.Code
		}
		return types.ExitErrored
	}

	return types.ExitNormal
}

func main() {
	logger.InitSlog(slog.LevelInfo)

	ctx := context.Background()

	os.Exit(runApp(ctx))
}
