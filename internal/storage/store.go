// Package storage provides object storage access for product assets.
package storage

import (
	"context"
	"io"
)

// Object is a downloadable asset fetched from the store.
type Object struct {
	// Body streams the object's bytes; the caller must Close it.
	Body io.ReadCloser
	// ContentLength is -1 when the store does not report a size.
	ContentLength int64
}

// ObjectStore is the single collaborator the download path depends on.
type ObjectStore interface {
	// Download fetches the object stored under key. Failures are
	// storage-layer failures; a missing key is not distinguished from
	// any other backend error by callers.
	Download(ctx context.Context, key string) (*Object, error)
}
