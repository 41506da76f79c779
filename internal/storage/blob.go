package storage

import (
	"context"
	"io"
)

// BlobStore abstracts the deed scan backend (local disk or S3-compatible
// object storage). Exists doubles as the assignment retrievability probe:
// deed rows whose backing file is missing must never be served.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) // returns canonical key
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// URLSigner is the optional capability of stores whose objects can be fetched
// directly by the client through a presigned URL. The file endpoint redirects
// instead of streaming when the configured store implements it.
type URLSigner interface {
	SignedURL(ctx context.Context, key string) (string, error)
}
