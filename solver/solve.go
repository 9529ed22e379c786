package solver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/aixcyberchallenge/captcha-solver/internal/types"
	solveerrors "github.com/aixcyberchallenge/captcha-solver/solve_errors"
	"github.com/aixcyberchallenge/captcha-solver/tasks"
)

// Returned inside an *AbandonedError when the poll backoff gives up before the job is ready
var ErrStillProcessing = errors.New("task is still processing")

// Solved job. TaskID is stamped locally, the service does not echo it back.
type Solution[S any] struct {
	CreateTime time.Time
	EndTime    time.Time
	Solution   S
	Cost       string
	IP         string
	TaskID     int64
	SolveCount int
}

func (s *Solution[S]) JobID() int64 {
	return s.TaskID
}

// Time since a worker finished the job. Tokens expire, typically after a couple of minutes.
func (s *Solution[S]) Age() time.Duration {
	return time.Since(s.EndTime)
}

// Submit task and wait for its solution.
//
// The job is created, then after the kind's initial wait polled until it is ready. ctx bounds
// the whole call: if it ends first an *AbandonedError carrying the job id is returned.
// With a callback url configured the result goes to the webhook and Solve returns (nil, nil)
// right after the job is created.
func Solve[S any](ctx context.Context, c *Client, task *tasks.Task[S]) (*Solution[S], error) {
	ctx, span := tracer.Start(ctx, "Solve", trace.WithAttributes(
		attribute.String("task.type", task.Type()),
	))
	defer span.End()

	start := time.Now()
	l := c.logger.With("solve", uuid.New().String(), "type", task.Type())

	result, taskID, err := c.solve(ctx, l, task)
	if err != nil {
		taskFailures.Add(ctx, 1, failureAttrs(task.Type(), err))
		l.ErrorContext(ctx, "failed to solve task", "taskId", taskID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to solve task")
		return nil, err
	}
	if result == nil {
		span.RecordError(nil)
		span.SetStatus(codes.Ok, "task submitted for callback delivery")
		//nolint:nilnil // result is delivered to the callback url
		return nil, nil
	}

	var solution S
	if err := json.Unmarshal(result.Solution, &solution); err != nil {
		err = solveerrors.DecodeErrorWrap(routeGetTaskResult, err)
		taskFailures.Add(ctx, 1, failureAttrs(task.Type(), err))
		l.ErrorContext(ctx, "failed to decode solution", "taskId", taskID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode solution")
		return nil, err
	}

	solveDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
		attribute.String("task.type", task.Type()),
	))
	l.InfoContext(ctx, "solved task", "taskId", taskID, "cost", result.Cost, "duration", time.Since(start))

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "solved task")
	return &Solution[S]{
		TaskID:     taskID,
		Solution:   solution,
		Cost:       result.Cost,
		IP:         result.IP,
		CreateTime: result.CreateTime.Time,
		EndTime:    result.EndTime.Time,
		SolveCount: result.SolveCount,
	}, nil
}

// Kind independent part of Solve. A nil result with a nil error means callback delivery.
func (c *Client) solve(
	ctx context.Context,
	l *slog.Logger,
	task tasks.Payload,
) (*types.TaskResultResponse, int64, error) {
	taskID, err := c.createTask(ctx, task)
	if err != nil {
		return nil, 0, err
	}
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int64("task.id", taskID))
	l = l.With("taskId", taskID)
	l.InfoContext(ctx, "created task")

	if c.callbackURL != "" {
		l.InfoContext(ctx, "result will be delivered to callback", "callbackUrl", c.callbackURL)
		return nil, taskID, nil
	}

	wait := task.InitialWait()
	if c.waitOverride {
		wait = c.initialWait
	}
	l.DebugContext(ctx, "waiting before first poll", "wait", wait)
	if err := sleep(ctx, wait); err != nil {
		return nil, taskID, solveerrors.AbandonedErrorWrap(taskID, err)
	}

	result, err := c.poll(ctx, l, taskID)
	if err != nil {
		return nil, taskID, err
	}
	return result, taskID, nil
}

func (c *Client) createTask(ctx context.Context, task tasks.Payload) (int64, error) {
	ctx, span := tracer.Start(ctx, "Client.createTask", trace.WithAttributes(
		attribute.String("task.type", task.Type()),
	))
	defer span.End()

	payload, err := json.Marshal(task)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to marshal task")
		return 0, err
	}

	var resp types.CreateTaskResponse
	err = c.post(ctx, routeCreateTask, types.CreateTaskRequest{
		ClientKey:    c.apiKey,
		Task:         payload,
		SoftID:       c.softID,
		LanguagePool: c.languagePool,
		CallbackURL:  c.callbackURL,
	}, &resp)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create task")
		return 0, err
	}

	tasksCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("task.type", task.Type())))

	span.SetAttributes(attribute.Int64("task.id", resp.TaskID))
	span.RecordError(nil)
	span.SetStatus(codes.Ok, "created task")
	return resp.TaskID, nil
}

// Poll until the job is ready, fails or ctx ends. Polls are strictly sequential.
func (c *Client) poll(ctx context.Context, l *slog.Logger, taskID int64) (*types.TaskResultResponse, error) {
	ctx, span := tracer.Start(ctx, "Client.poll", trace.WithAttributes(
		attribute.Int64("task.id", taskID),
	))
	defer span.End()

	var result *types.TaskResultResponse
	err := retry.Do(ctx, c.pollBackoff(), func(ctx context.Context) error {
		//nolint:govet // shadow: intentionally shadow ctx and span to avoid using the incorrect one.
		ctx, span := tracer.Start(ctx, "Client.poll.Retry")
		defer span.End()

		res, err := c.getTaskResult(ctx, taskID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to get task result")
			return err
		}

		switch res.Status {
		case types.TaskStatusProcessing:
			taskPolls.Add(ctx, 1)
			l.DebugContext(ctx, "task not ready", "status", res.Status)
			span.RecordError(nil)
			span.SetStatus(codes.Ok, "task still processing")
			return retry.RetryableError(ErrStillProcessing)
		case types.TaskStatusReady:
			result = res
			span.RecordError(nil)
			span.SetStatus(codes.Ok, "task ready")
			return nil
		default:
			err := solveerrors.DecodeErrorWrap(
				routeGetTaskResult,
				fmt.Errorf("unexpected status %q", res.Status),
			)
			span.RecordError(err)
			span.SetStatus(codes.Error, "unexpected task status")
			return err
		}
	})
	if err != nil {
		var remote *solveerrors.RemoteError
		switch {
		// the service's verdict wins over a context that ended meanwhile
		case errors.As(err, &remote):
		case ctx.Err() != nil:
			err = solveerrors.AbandonedErrorWrap(taskID, ctx.Err())
		case errors.Is(err, ErrStillProcessing):
			err = solveerrors.AbandonedErrorWrap(taskID, err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to poll task")
		return nil, err
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "polled task")
	return result, nil
}

func (c *Client) getTaskResult(ctx context.Context, taskID int64) (*types.TaskResultResponse, error) {
	var resp types.TaskResultResponse
	err := c.post(idempotent(ctx), routeGetTaskResult, types.TaskRequest{
		ClientKey: c.apiKey,
		TaskID:    taskID,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Context aware time.Sleep
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
