package cmds

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/aixcyberchallenge/captcha-solver/internal/config"
	exiterrors "github.com/aixcyberchallenge/captcha-solver/internal/exit_errors"
	"github.com/aixcyberchallenge/captcha-solver/internal/logger"
	"github.com/aixcyberchallenge/captcha-solver/internal/types"
	"github.com/aixcyberchallenge/captcha-solver/solver"
)

var tracer = otel.Tracer("github.com/aixcyberchallenge/captcha-solver/cmd/captcha/cmds")

var rootCmd = &cobra.Command{
	Use:   "captcha",
	Short: "Solve captchas through the 2captcha service",
	Long: `
Configuration is read from captcha.yaml in /etc/captcha-solver/ or the working
directory, and from CAPTCHA_* environment variables (CAPTCHA_API_KEY, ...).

Exit codes:
  0  success
  1  local or transport error
  2  the service rejected the job
  3  the job was abandoned before it finished`,
	SilenceUsage: true,
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func loadConfig() (*config.Config, error) {
	conf, err := config.GetConfig()
	if err != nil {
		return nil, exiterrors.ExitErrorWrap(types.ExitErrored, err)
	}

	logger.LogLevel.Set(slog.Level(conf.Logging.App.Level))
	return conf, nil
}

// Load the config and build a client from it
func newClient() (*solver.Client, error) {
	conf, err := loadConfig()
	if err != nil {
		return nil, err
	}

	c, err := solver.New(conf.APIKey, conf.ClientOptions(logger.Logger)...)
	if err != nil {
		return nil, exiterrors.ExitErrorWrap(types.ExitErrored, err)
	}
	return c, nil
}
