package storage

import (
	"context"
	"io"
)

// BlobStorage stores uploaded attachments (id documents, signatures,
// equipment photos) and generated QR labels. Records reference blobs by key
// only; the bytes never live in the database.
type BlobStorage interface {
	Save(ctx context.Context, key string, reader io.Reader) error
	Read(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, int64, error)
}
