// Package csv loads a customer table from delimited text.
package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"callclean/internal/table"
	"callclean/source"
)

type Config struct {
	// Delimiter is a single character; empty means comma, or tab for .tsv.
	Delimiter string `koanf:"delimiter"`
}

type driver struct {
	cfg Config
	sep rune
}

func (d *driver) Configure(raw any) error {
	c, ok := raw.(Config)
	if !ok {
		return fmt.Errorf("csv-source: expected Config, got %T", raw)
	}
	d.cfg = c
	d.sep = ','
	if c.Delimiter != "" {
		r, size := utf8.DecodeRuneInString(c.Delimiter)
		if size != len(c.Delimiter) || r == utf8.RuneError {
			return fmt.Errorf("csv-source: delimiter %q must be one character", c.Delimiter)
		}
		d.sep = r
	}
	return nil
}

func (d *driver) Load(ctx context.Context, path string) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", table.ErrIO, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	switch {
	case d.sep != 0 && d.cfg.Delimiter != "":
		r.Comma = d.sep
	case strings.EqualFold(filepath.Ext(path), ".tsv"):
		r.Comma = '\t'
	}
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s is empty", table.ErrIO, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", table.ErrIO, path, err)
	}
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", table.ErrIO, path, err)
	}
	return source.FromRecords(header, records)
}

func init() {
	source.Register("csv", func() source.Adapter { return &driver{} }, ".csv", ".tsv")
}
