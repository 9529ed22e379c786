package fetch

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer(
	"github.com/aixcyberchallenge/captcha-solver/internal/fetch",
)

// Largest image or audio file accepted for a task
const MaxSize = 1 << 20

var ErrTooLarge = errors.New("larger than the size limit")

func tooLarge(src string) error {
	return fmt.Errorf("%s: %w of %d bytes", src, ErrTooLarge, MaxSize)
}

//go:generate mockgen -destination ./mock/mock.go -package mock . Fetcher

// Loads captcha media from src
type Fetcher interface {
	Fetch(ctx context.Context, src string) (io.ReadCloser, error)
}

// Ensure SchemeFetcher implements Fetcher interface.
var _ Fetcher = (*SchemeFetcher)(nil)

// Dispatches urls to the fetcher registered for their scheme, and plain paths to local
type SchemeFetcher struct {
	schemes map[string]Fetcher
	local   Fetcher
}

func NewSchemeFetcher(local Fetcher) *SchemeFetcher {
	return &SchemeFetcher{schemes: map[string]Fetcher{}, local: local}
}

func (f *SchemeFetcher) Handle(scheme string, fetcher Fetcher) *SchemeFetcher {
	f.schemes[scheme] = fetcher
	return f
}

func (f *SchemeFetcher) Fetch(ctx context.Context, src string) (io.ReadCloser, error) {
	u, err := url.Parse(src)
	// single letter schemes are windows drive letters
	if err != nil || len(u.Scheme) < 2 {
		return f.local.Fetch(ctx, src)
	}

	fetcher, ok := f.schemes[u.Scheme]
	if !ok {
		return nil, fmt.Errorf("%s: no fetcher for scheme %q", src, u.Scheme)
	}
	return fetcher.Fetch(ctx, src)
}

// Fetch src and base64 encode it, failing when it is larger than MaxSize
func Base64(ctx context.Context, f Fetcher, src string) (string, error) {
	ctx, span := tracer.Start(ctx, "Base64", trace.WithAttributes(
		attribute.String("src", src),
	))
	defer span.End()

	body, err := f.Fetch(ctx, src)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return "", err
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, MaxSize+1))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read")
		return "", err
	}
	if len(data) > MaxSize {
		err = tooLarge(src)
		span.RecordError(err)
		span.SetStatus(codes.Error, "file too large")
		return "", err
	}

	span.SetAttributes(attribute.Int("size", len(data)))
	span.RecordError(nil)
	span.SetStatus(codes.Ok, "encoded file")
	return base64.StdEncoding.EncodeToString(data), nil
}
