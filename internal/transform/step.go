package transform

import (
	"context"

	"callclean/internal/schema"
	"callclean/internal/table"
)

type Step interface {
	Name() string
	// Apply mutates t in place and returns how many cells or rows changed.
	Apply(ctx context.Context, t *table.Table) (int, error)
}

type Options struct {
	// UnmappedBool is the value given to a non-empty boolean cell that
	// matches no synonym.
	UnmappedBool bool
}

func DefaultOptions() Options { return Options{UnmappedBool: true} }

// Default returns the cleaning steps in the order they must run.
func Default(opts Options) []Step {
	return []Step{
		SchemaCheck{},
		FillMissing{},
		PhoneNumber{Column: schema.PhoneNumber},
		Booleans{
			Columns:  []string{schema.PayingCustomer, schema.DoNotContact},
			Unmapped: opts.UnmappedBool,
		},
		DropColumn{Column: schema.NotUseful},
		Trim{Columns: []string{schema.FirstName, schema.LastName}, Title: true},
		Trim{Columns: []string{schema.Address}},
		Dedupe{},
	}
}

// SchemaCheck fails before any mutation if a required column is absent.
type SchemaCheck struct{}

func (SchemaCheck) Name() string { return "schema_check" }

func (SchemaCheck) Apply(_ context.Context, t *table.Table) (int, error) {
	return 0, schema.Check(t)
}

// FillMissing turns every null cell into the empty string.
type FillMissing struct{}

func (FillMissing) Name() string { return "fill_missing" }

func (FillMissing) Apply(_ context.Context, t *table.Table) (int, error) {
	return t.MapAll(func(v table.Value) table.Value {
		if v.IsNull() {
			return table.Text("")
		}
		return v
	}), nil
}

// DropColumn removes Column; an absent column is a schema error.
type DropColumn struct {
	Column string
}

func (s DropColumn) Name() string { return "drop_" + s.Column }

func (s DropColumn) Apply(_ context.Context, t *table.Table) (int, error) {
	if err := t.DropColumn(s.Column); err != nil {
		return 0, err
	}
	return t.Len(), nil
}

// Dedupe drops rows identical across all columns, keeping the first.
type Dedupe struct{}

func (Dedupe) Name() string { return "dedupe" }

func (Dedupe) Apply(_ context.Context, t *table.Table) (int, error) {
	return t.DropDuplicates(), nil
}
