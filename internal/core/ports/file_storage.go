package ports

import (
	"context"
	"io"

	"orderflow/internal/core/domain/model/kernel"
)

// FileStorage keeps the bytes of receipts, invoices and delivery files. Calls
// happen outside database transactions.
type FileStorage interface {
	// Save stores r under a new key derived from prefix and returns its reference.
	Save(ctx context.Context, prefix, name string, r io.Reader) (kernel.FileRef, error)

	// Open returns the stored bytes of key.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
