package ports

import (
	"context"
	"io"

	"github.com/spandanmajumder/portfolio/internal/core/domain"
)

// FileStore persists file bytes under a name and reports the public URL.
type FileStore interface {
	Put(ctx context.Context, name, contentType string, r io.Reader) (url string, err error)
	Remove(ctx context.Context, name string) error
}

// RemovalQueue removes stored files off the request path. Enqueue returns
// false when the file was not accepted.
type RemovalQueue interface {
	Enqueue(name string) bool
}

// FileUpload is one file taken from a multipart request.
type FileUpload struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// UploadService stores an uploaded file according to its kind.
type UploadService interface {
	Store(ctx context.Context, kind domain.UploadKind, file FileUpload) (*domain.StoredFile, error)
	// Discard removes a file whose owning record was never persisted.
	Discard(ctx context.Context, file *domain.StoredFile)
	MaxBytes() int64
}
