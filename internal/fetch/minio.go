package fetch

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Ensure MinioFetcher implements Fetcher interface.
var _ Fetcher = (*MinioFetcher)(nil)

// Minio (S3) backed fetcher for s3://bucket/key sources
type MinioFetcher struct {
	client *minio.Client
}

func NewMinioFetcher(endpoint, id, secret string, ssl bool) (*MinioFetcher, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(id, secret, ""),
		Secure: ssl,
	})
	if err != nil {
		return nil, err
	}

	return &MinioFetcher{client: client}, nil
}

func NewMinioFetcherFromClient(client *minio.Client) *MinioFetcher {
	return &MinioFetcher{client: client}
}

// Split s3://bucket/some/key into its bucket and object key
func ParseObjectURL(src string) (bucket string, key string, err error) {
	u, err := url.Parse(src)
	if err != nil {
		return "", "", err
	}
	if u.Scheme != "s3" {
		return "", "", fmt.Errorf("%s: expected s3 scheme", src)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("%s: expected s3://bucket/key", src)
	}
	return u.Host, key, nil
}

func (f *MinioFetcher) Fetch(ctx context.Context, src string) (io.ReadCloser, error) {
	ctx, span := tracer.Start(ctx, "MinioFetcher.Fetch", trace.WithAttributes(
		attribute.String("src", src),
	))
	defer span.End()

	bucket, key, err := ParseObjectURL(src)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse object url")
		return nil, err
	}

	object, err := f.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get object")
		return nil, err
	}

	// GetObject is lazy, stat surfaces missing keys before the caller reads
	info, err := object.Stat()
	if err != nil {
		object.Close()
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to stat object")
		return nil, err
	}
	if info.Size > MaxSize {
		object.Close()
		err = tooLarge(src)
		span.RecordError(err)
		span.SetStatus(codes.Error, "object too large")
		return nil, err
	}

	span.SetAttributes(attribute.Int64("size", info.Size))
	span.RecordError(nil)
	span.SetStatus(codes.Ok, "fetched object")
	return object, nil
}
