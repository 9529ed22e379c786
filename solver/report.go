package solver

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/aixcyberchallenge/captcha-solver/internal/types"
)

// Anything carrying the id of a remote job, such as *Solution
type Job interface {
	JobID() int64
}

// Tell the service whether the answer for taskID was accepted. Incorrect reports are
// refunded. Reports are sent once, failures are returned to the caller.
func (c *Client) Report(ctx context.Context, taskID int64, verdict Verdict) error {
	ctx, span := tracer.Start(ctx, "Client.Report", trace.WithAttributes(
		attribute.Int64("task.id", taskID),
		attribute.String("verdict", string(verdict)),
	))
	defer span.End()

	route, err := verdict.Route()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid verdict")
		return err
	}

	var resp types.ReportResponse
	err = c.post(ctx, route, types.TaskRequest{
		ClientKey: c.apiKey,
		TaskID:    taskID,
	}, &resp)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to report task", "taskId", taskID, "verdict", verdict, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to report task")
		return err
	}

	c.logger.InfoContext(ctx, "reported task", "taskId", taskID, "verdict", verdict)
	span.RecordError(nil)
	span.SetStatus(codes.Ok, "reported task")
	return nil
}

func (c *Client) ReportSolution(ctx context.Context, job Job, verdict Verdict) error {
	return c.Report(ctx, job.JobID(), verdict)
}
