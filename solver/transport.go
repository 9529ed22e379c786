package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/aixcyberchallenge/captcha-solver/internal/types"
	solveerrors "github.com/aixcyberchallenge/captcha-solver/solve_errors"
)

const (
	routeCreateTask    = "/createTask"
	routeGetTaskResult = "/getTaskResult"
	routeGetBalance    = "/getBalance"
)

// largest response body kept on a StatusError
const maxErrorBody = 4096

var errMissingHost = errors.New("url must be absolute")

// POST body as json to route and decode the response into out.
//
// Failures are classified: *TransportError when no response arrived, *StatusError for
// non 2xx, *DecodeError for malformed json and *RemoteError when the service set an error code.
func (c *Client) post(ctx context.Context, route string, body any, out any) error {
	ctx, span := tracer.Start(ctx, "Client.post", trace.WithAttributes(
		attribute.String("route", route),
		attribute.Bool("idempotent", isIdempotent(ctx)),
	))
	defer span.End()

	payload, err := json.Marshal(body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to marshal request")
		return fmt.Errorf("failed to marshal %s request: %w", route, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+route, bytes.NewReader(payload))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to construct request")
		return solveerrors.URLErrorWrap(c.baseURL+route, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send request")
		return solveerrors.TransportErrorWrap(route, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read response")
		return solveerrors.TransportErrorWrap(route, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(raw) > maxErrorBody {
			raw = raw[:maxErrorBody]
		}
		err = &solveerrors.StatusError{Op: route, StatusCode: resp.StatusCode, Body: string(raw)}
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid status code")
		return err
	}

	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode response")
		return solveerrors.DecodeErrorWrap(route, err)
	}
	if envelope.Failed() {
		err := solveerrors.FromCode(envelope.ErrorCode, envelope.ErrorDescription)
		span.RecordError(err)
		span.SetStatus(codes.Error, "remote error")
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode response")
		return solveerrors.DecodeErrorWrap(route, err)
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "posted")
	return nil
}
