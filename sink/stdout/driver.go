// callclean/sink/stdout/driver.go
package stdout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"callclean/internal/table"
	"callclean/sink"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

/* ────────── public config ────────── */
type Config struct {
	Format  string    `koanf:"format"`   // text|json|yaml, default text
	MaxRows int       `koanf:"max_rows"` // 0 = print every row
	Out     io.Writer `koanf:"-"`        // nil → os.Stdout
}

/* ────────── driver ────────── */
type driver struct {
	cfg Config

	mu sync.Mutex // serializes writes to cfg.Out
}

type document struct {
	Title     string   `json:"title" yaml:"title"`
	Columns   []string `json:"columns" yaml:"columns"`
	Rows      [][]any  `json:"rows" yaml:"rows"`
	Total     int      `json:"total_rows" yaml:"total_rows"`
	Truncated bool     `json:"truncated,omitempty" yaml:"truncated,omitempty"`
}

var cellCleaner = strings.NewReplacer("\t", " ", "\r", " ", "\n", " ")

/* ────────── sink.Adapter ────────── */
func (d *driver) Configure(raw any) error {
	c, ok := raw.(Config)
	if !ok {
		return fmt.Errorf("stdout-sink: expected Config, got %T", raw)
	}
	switch c.Format {
	case "":
		c.Format = FormatText
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("stdout-sink: unknown format %q", c.Format)
	}
	if c.MaxRows < 0 {
		return fmt.Errorf("stdout-sink: max_rows must be >= 0, got %d", c.MaxRows)
	}
	if c.Out == nil {
		c.Out = os.Stdout
	}
	d.cfg = c
	return nil
}

func (d *driver) Report(ctx context.Context, title string, t *table.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.cfg.Format {
	case FormatJSON:
		enc := json.NewEncoder(d.cfg.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(d.document(title, t))
	case FormatYAML:
		if _, err := io.WriteString(d.cfg.Out, "---\n"); err != nil {
			return err
		}
		enc := yaml.NewEncoder(d.cfg.Out)
		enc.SetIndent(2)
		if err := enc.Encode(d.document(title, t)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return d.writeText(title, t)
	}
}

func (d *driver) Close() error { return nil }

/* ────────── internals ────────── */

func (d *driver) limit(t *table.Table) int {
	if d.cfg.MaxRows > 0 && t.Len() > d.cfg.MaxRows {
		return d.cfg.MaxRows
	}
	return t.Len()
}

func (d *driver) document(title string, t *table.Table) document {
	n := d.limit(t)
	doc := document{
		Title:     title,
		Columns:   t.Columns(),
		Rows:      make([][]any, 0, n),
		Total:     t.Len(),
		Truncated: n < t.Len(),
	}
	for i := 0; i < n; i++ {
		r := t.Row(i)
		out := make([]any, len(r))
		for j, v := range r {
			out[j] = v.Any()
		}
		doc.Rows = append(doc.Rows, out)
	}
	return doc
}

// writeText prints an aligned grid with a leading row index, null cells as
// NaN and booleans as TRUE/FALSE so the output can be loaded again.
func (d *driver) writeText(title string, t *table.Table) error {
	w := tabwriter.NewWriter(d.cfg.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s:\n", title)

	fmt.Fprint(w, "\t")
	fmt.Fprintln(w, strings.Join(t.Columns(), "\t"))

	n := d.limit(t)
	cells := make([]string, t.Width())
	for i := 0; i < n; i++ {
		for j, v := range t.Row(i) {
			if v.IsNull() {
				cells[j] = "NaN"
				continue
			}
			cells[j] = cellCleaner.Replace(v.Str())
		}
		fmt.Fprintf(w, "%s\t%s\n", strconv.Itoa(i), strings.Join(cells, "\t"))
	}
	if n < t.Len() {
		fmt.Fprintln(w, "...")
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(d.cfg.Out, "[%d rows x %d columns]\n\n", t.Len(), t.Width())
	return err
}

/* ────────── auto-register ────────── */
func init() {
	sink.Register("stdout", func() sink.Adapter { return &driver{} })
}
