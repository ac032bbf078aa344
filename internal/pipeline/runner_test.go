package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callclean/internal/config"
	"callclean/internal/schema"
	"callclean/internal/table"
	"callclean/internal/telemetry"
	"callclean/internal/transform"
)

type fakeSource struct {
	t   *table.Table
	err error
}

func (f *fakeSource) Configure(any) error { return nil }
func (f *fakeSource) Load(context.Context, string) (*table.Table, error) {
	return f.t, f.err
}

type captureSink struct {
	titles []string
	tables []*table.Table
	closed bool
	err    error
}

func (c *captureSink) Configure(any) error { return nil }
func (c *captureSink) Report(_ context.Context, title string, t *table.Table) error {
	c.titles = append(c.titles, title)
	c.tables = append(c.tables, t.Clone())
	return c.err
}
func (c *captureSink) Close() error { c.closed = true; return nil }

type failStep struct{}

func (failStep) Name() string { return "fail" }
func (failStep) Apply(context.Context, *table.Table) (int, error) {
	return 0, table.ErrCoercion
}

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func makeTable(t *testing.T) *table.Table {
	t.Helper()
	tb, err := table.New(schema.Required)
	require.NoError(t, err)
	for _, first := range []string{"  John  ", "JOHN"} {
		require.NoError(t, tb.AppendRow([]table.Value{
			table.Text(first), table.Text("Smith"), table.Text("(555) 123-4567"), table.Text("1 Main St"),
			table.Text("Yes"), table.Null(), table.Text("junk"),
		}))
	}
	return tb
}

func TestRunner_ReportsBeforeAndAfter(t *testing.T) {
	m := telemetry.New()
	r := NewRunner(m, quiet)
	r.SetSource(&fakeSource{t: makeTable(t)})
	r.AddStep(transform.Default(transform.DefaultOptions())...)
	cs := &captureSink{}
	r.AddSink(cs)

	out, err := r.Run(context.Background(), "calls.xlsx")
	require.NoError(t, err)
	require.NoError(t, r.Close())

	assert.Equal(t, []string{TitleOriginal, TitleCleaned}, cs.titles)
	assert.Equal(t, 2, cs.tables[0].Len())
	assert.True(t, cs.tables[0].HasColumn(schema.NotUseful))
	assert.True(t, cs.tables[1].Equal(out))
	assert.Equal(t, 1, out.Len())
	assert.True(t, cs.closed)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.RowsLoaded))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RowsEmitted))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CellsChanged.WithLabelValues("dedupe")))
}

func TestRunner_NoSource(t *testing.T) {
	_, err := NewRunner(nil, quiet).Run(context.Background(), "x")
	assert.Error(t, err)
}

func TestRunner_LoadErrorSkipsReports(t *testing.T) {
	r := NewRunner(nil, quiet)
	r.SetSource(&fakeSource{err: table.ErrIO})
	cs := &captureSink{}
	r.AddSink(cs)

	_, err := r.Run(context.Background(), "missing.xlsx")
	assert.ErrorIs(t, err, table.ErrIO)
	assert.Empty(t, cs.titles)
}

func TestRunner_StepErrorIsFatal(t *testing.T) {
	r := NewRunner(nil, quiet)
	r.SetSource(&fakeSource{t: makeTable(t)})
	r.AddStep(failStep{}, transform.Dedupe{})
	cs := &captureSink{}
	r.AddSink(cs)

	_, err := r.Run(context.Background(), "calls.xlsx")
	require.ErrorIs(t, err, table.ErrCoercion)
	assert.Contains(t, err.Error(), "step fail")
	assert.Equal(t, []string{TitleOriginal}, cs.titles)
}

func TestRunner_SinkError(t *testing.T) {
	r := NewRunner(nil, quiet)
	r.SetSource(&fakeSource{t: makeTable(t)})
	boom := errors.New("boom")
	r.AddSink(&captureSink{err: boom})

	_, err := r.Run(context.Background(), "calls.xlsx")
	assert.ErrorIs(t, err, boom)
}

func TestRunner_CancelledBetweenSteps(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRunner(nil, quiet)
	r.SetSource(&fakeSource{t: makeTable(t)})
	r.AddStep(transform.Dedupe{})
	r.AddSink(&captureSink{})

	_, err := r.Run(ctx, "calls.xlsx")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompile_CSVEndToEnd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calls.csv")
	body := "First_Name,Last_Name,Phone_Number,Address,Paying Customer,Do_Not_Contact,Not_Useful_Column\n" +
		"  John  ,Smith,(555) 123-4567xoff,1 Main St ,Yes,No,x\n" +
		"JOHN,Smith,555-123-4567,1 Main St,Y,N,x\n" +
		"ann,lee,n/a-xx,,yes,,y\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg := config.Default()
	cfg.Source.Path = path
	cfg.Sink.Format = "json"
	var buf bytes.Buffer
	r, err := Compile(cfg, Deps{Log: quiet, Out: &buf})
	require.NoError(t, err)

	out, err := r.Run(context.Background(), cfg.Source.Path)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Len())
	assert.False(t, out.HasColumn(schema.NotUseful))
	assert.Equal(t, 2, strings.Count(buf.String(), `"title"`))

	v, err := out.Cell(1, schema.PhoneNumber)
	require.NoError(t, err)
	assert.Equal(t, schema.UnknownPhone, v.Str())
}

func TestCompile_UnknownExtension(t *testing.T) {
	cfg := config.Default()
	cfg.Source.Path = "calls.parquet"
	_, err := Compile(cfg, Deps{Log: quiet})
	assert.Error(t, err)
}

func TestCompile_MissingColumnIsSchemaError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calls.csv")
	require.NoError(t, os.WriteFile(path, []byte("First_Name,Last_Name\nJohn,Smith\n"), 0o644))

	cfg := config.Default()
	cfg.Source.Path = path
	r, err := Compile(cfg, Deps{Log: quiet, Out: io.Discard})
	require.NoError(t, err)

	_, err = r.Run(context.Background(), path)
	assert.ErrorIs(t, err, table.ErrSchema)
}
