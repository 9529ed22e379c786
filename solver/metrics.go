package solver

import (
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	solveerrors "github.com/aixcyberchallenge/captcha-solver/solve_errors"
)

var meter = otel.Meter(name)

// Instrument constructors only fail on invalid names, the returned instrument is usable either way
var (
	tasksCreated, _ = meter.Int64Counter(
		"captcha.tasks.created",
		metric.WithDescription("Jobs accepted by the remote service"),
	)
	taskPolls, _ = meter.Int64Counter(
		"captcha.tasks.polls",
		metric.WithDescription("Result polls that found the job still processing"),
	)
	taskFailures, _ = meter.Int64Counter(
		"captcha.tasks.failures",
		metric.WithDescription("Failed solves by error kind"),
	)
	solveDuration, _ = meter.Float64Histogram(
		"captcha.solve.duration",
		metric.WithDescription("Time from submission to solution"),
		metric.WithUnit("s"),
	)
)

// Low cardinality label for an error
func failureKind(err error) string {
	var (
		remote    *solveerrors.RemoteError
		transport *solveerrors.TransportError
		status    *solveerrors.StatusError
		decode    *solveerrors.DecodeError
		abandoned *solveerrors.AbandonedError
	)

	switch {
	case errors.As(err, &remote):
		return remote.Code.String()
	case errors.As(err, &abandoned):
		return "abandoned"
	case errors.As(err, &transport):
		return "transport"
	case errors.As(err, &status):
		return "status"
	case errors.As(err, &decode):
		return "decode"
	default:
		return "other"
	}
}

func failureAttrs(taskType string, err error) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("task.type", taskType),
		attribute.String("error", failureKind(err)),
	)
}
