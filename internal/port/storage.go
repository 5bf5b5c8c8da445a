package port

import (
	"context"
	"io"
)

// UploadInput describes an object to store.
type UploadInput struct {
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
	// Metadata is stored as user-defined object metadata.
	Metadata    map[string]string
}

// UploadOutput contains the result of a successful upload.
type UploadOutput struct {
	Bucket   string
	Key      string
	Location string
	ETag     string
}

// ObjectStorage stores archived workbooks in a single configured bucket.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	Delete(ctx context.Context, key string) error
	GetPresignedURL(ctx context.Context, key string, expirySeconds int64) (string, error)
}
