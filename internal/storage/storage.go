// Package storage abstracts the object store behind a small put/delete
// contract so handlers stay independent of where files land.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// Store is the object-storage collaborator used by the upload handler.
type Store interface {
	// Put writes the object under key and returns its public URL.
	Put(ctx context.Context, key, contentType string, r io.Reader) (string, error)
	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// NewKey generates a collision-free object key, prefixed by upload date so
// buckets stay browsable.
func NewKey(filename string) string {
	d := time.Now()
	return fmt.Sprintf("%d/%02d/%s-%s", d.Year(), d.Month(), uuid.New().String(), filename)
}
