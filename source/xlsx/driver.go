// Package xlsx loads a customer table from an Excel workbook.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"callclean/internal/table"
	"callclean/source"
)

type Config struct {
	// Sheet to read; empty means the first sheet of the workbook.
	Sheet string `koanf:"sheet"`
}

type driver struct {
	cfg Config
}

func (d *driver) Configure(raw any) error {
	c, ok := raw.(Config)
	if !ok {
		return fmt.Errorf("xlsx-source: expected Config, got %T", raw)
	}
	d.cfg = c
	return nil
}

func (d *driver) Load(ctx context.Context, path string) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", table.ErrIO, path, err)
	}
	defer func() { _ = f.Close() }()

	sheet := d.cfg.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: %s has no sheets", table.ErrIO, path)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %w", table.ErrIO, sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", table.ErrIO, sheet)
	}
	t, err := source.FromRecords(rows[0], rows[1:])
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	return t, nil
}

func init() {
	source.Register("xlsx", func() source.Adapter { return &driver{} }, ".xlsx", ".xlsm")
}
