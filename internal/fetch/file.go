package fetch

import (
	"context"
	"io"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Ensure FileFetcher implements Fetcher interface.
var _ Fetcher = (*FileFetcher)(nil)

type FileFetcher struct{}

func (FileFetcher) Fetch(ctx context.Context, path string) (io.ReadCloser, error) {
	_, span := tracer.Start(ctx, "FileFetcher.Fetch", trace.WithAttributes(
		attribute.String("path", path),
	))
	defer span.End()

	f, err := os.Open(path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to open file")
		return nil, err
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "opened file")
	return f, nil
}
