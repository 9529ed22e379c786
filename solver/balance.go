package solver

import (
	"context"

	"go.opentelemetry.io/otel/codes"

	"github.com/aixcyberchallenge/captcha-solver/internal/types"
)

// Account balance in USD
func (c *Client) GetBalance(ctx context.Context) (float64, error) {
	ctx, span := tracer.Start(ctx, "Client.GetBalance")
	defer span.End()

	var resp types.BalanceResponse
	err := c.post(idempotent(ctx), routeGetBalance, types.BalanceRequest{
		ClientKey: c.apiKey,
	}, &resp)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get balance")
		return 0, err
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "got balance")
	return resp.Balance, nil
}
