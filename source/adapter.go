package source

import (
	"context"

	"callclean/internal/table"
)

// Adapter loads a customer table from a file.
type Adapter interface {
	Configure(any) error
	Load(ctx context.Context, path string) (*table.Table, error)
}
