package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Ensure HTTPFetcher implements Fetcher interface.
var _ Fetcher = (*HTTPFetcher)(nil)

// Downloads media, e.g. the image src scraped from a page
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	return &HTTPFetcher{
		client: client,
	}
}

// Fetch GETs src. Any 2xx is accepted, a declared length over MaxSize is refused before reading.
func (f *HTTPFetcher) Fetch(ctx context.Context, src string) (io.ReadCloser, error) {
	ctx, span := tracer.Start(ctx, "HTTPFetcher.Fetch", trace.WithAttributes(
		attribute.String("src", src),
	))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to build request")
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	req.Header.Set("Accept", "image/*, audio/*")

	resp, err := f.client.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to download media")
		return nil, err
	}
	span.SetAttributes(attribute.Int("http.status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		err = fmt.Errorf("%s: unexpected status %d", src, resp.StatusCode)
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status")
		return nil, err
	}
	if resp.ContentLength > MaxSize {
		resp.Body.Close()
		err = tooLarge(src)
		span.RecordError(err)
		span.SetStatus(codes.Error, "media too large")
		return nil, err
	}

	span.SetAttributes(attribute.Int64("size", resp.ContentLength))
	span.RecordError(nil)
	span.SetStatus(codes.Ok, "downloaded media")
	return resp.Body, nil
}
