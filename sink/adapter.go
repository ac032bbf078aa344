package sink

import (
	"context"
	"fmt"

	"callclean/internal/table"
)

// Adapter is the common behaviour every reporter exposes.
type Adapter interface {
	Configure(any) error // driver-specific config => struct
	Report(ctx context.Context, title string, t *table.Table) error
	Close() error // idempotent
}

/*──────── registry ───────*/

type factory = func() Adapter

var reg = map[string]factory{}

func Register(name string, f factory) { reg[name] = f }

func NewAdapter(name string) (Adapter, error) {
	if f, ok := reg[name]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("unknown sink %q", name)
}
