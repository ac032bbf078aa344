package source

import (
	"fmt"
	"strconv"

	"callclean/internal/schema"
	"callclean/internal/table"
)

// FromRecords builds a table from a header row and string records as read
// from a sheet or CSV file. Headers are canonicalized, blank headers become
// Unnamed_<i>, empty cells and missing trailing cells load as null, and
// records with no content at all are skipped.
func FromRecords(header []string, records [][]string) (*table.Table, error) {
	cols := make([]string, len(header))
	for i, h := range header {
		c := schema.Canonical(h)
		if c == "" {
			c = "Unnamed_" + strconv.Itoa(i)
		}
		cols[i] = c
	}
	t, err := table.New(cols)
	if err != nil {
		return nil, err
	}
	for n, rec := range records {
		if blank(rec) {
			continue
		}
		if len(rec) > len(cols) {
			return nil, fmt.Errorf("record %d: %w: %d cells, %d columns", n+1, table.ErrRowWidth, len(rec), len(cols))
		}
		row := make([]table.Value, len(cols))
		for i, s := range rec {
			if s != "" {
				row[i] = table.Text(s)
			}
		}
		if err := t.AppendRow(row); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func blank(rec []string) bool {
	for _, s := range rec {
		if s != "" {
			return false
		}
	}
	return true
}
