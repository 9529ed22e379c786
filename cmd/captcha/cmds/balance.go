package cmds

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/codes"

	exiterrors "github.com/aixcyberchallenge/captcha-solver/internal/exit_errors"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print the account balance in USD",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, span := tracer.Start(cmd.Context(), "balanceCmd")
		defer span.End()

		c, err := newClient()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to create client")
			return err
		}

		balance, err := c.GetBalance(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to get balance")
			return exiterrors.Classify(err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%.5f\n", balance)

		span.SetStatus(codes.Ok, "got balance")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}
