// Package metadata stores small device-scoped key/value pairs (currently the
// bearer token) in the client's SQLite database.
package metadata

import (
	"context"
)

// Repository is a durable key/value store. Get returns (nil, nil) for a
// missing key; Set overwrites; Delete of a missing key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
