package cmds

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	exiterrors "github.com/aixcyberchallenge/captcha-solver/internal/exit_errors"
	"github.com/aixcyberchallenge/captcha-solver/internal/logger"
	"github.com/aixcyberchallenge/captcha-solver/internal/types"
	"github.com/aixcyberchallenge/captcha-solver/solver"
)

var (
	reportIDs []int64
	correct   bool
	incorrect bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report whether solutions were accepted",
	Long: `
Reports are sent concurrently, once each. Incorrect reports are refunded by the service.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, span := tracer.Start(cmd.Context(), "reportCmd")
		defer span.End()

		verdict := solver.Correct
		if incorrect {
			verdict = solver.Incorrect
		}

		c, err := newClient()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to create client")
			return err
		}

		// a failed report must not cancel the others
		var eg errgroup.Group
		errs := make([]error, len(reportIDs))
		for i, id := range reportIDs {
			eg.Go(func() error {
				errs[i] = c.Report(ctx, id, verdict)
				return nil
			})
		}
		_ = eg.Wait()

		if err := errors.Join(errs...); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to report tasks")
			return exiterrors.Classify(err)
		}

		span.SetStatus(codes.Ok, "reported tasks")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().Int64SliceVar(&reportIDs, "task-id", nil, "Task id to report, repeatable (required)")
	reportCmd.Flags().BoolVar(&correct, "correct", false, "The solutions were accepted")
	reportCmd.Flags().BoolVar(&incorrect, "incorrect", false, "The solutions were rejected")

	reportCmd.MarkFlagsOneRequired("correct", "incorrect")
	reportCmd.MarkFlagsMutuallyExclusive("correct", "incorrect")

	if err := reportCmd.MarkFlagRequired("task-id"); err != nil {
		logger.Logger.Error("failed to mark flag required", "flag", "task-id", "error", err)
		os.Exit(types.ExitErrored)
	}
}
