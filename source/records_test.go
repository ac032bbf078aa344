package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callclean/internal/table"
)

func TestFromRecords(t *testing.T) {
	header := []string{"First_Name", " Paying Customer ", ""}
	records := [][]string{
		{"John", "Yes", "x"},
		{"", "", ""},
		{"Ann"},
		{"Bob", "", "z"},
	}
	tb, err := FromRecords(header, records)
	require.NoError(t, err)

	assert.Equal(t, []string{"First_Name", "Paying_Customer", "Unnamed_2"}, tb.Columns())
	require.Equal(t, 3, tb.Len(), "blank record skipped")
	assert.Equal(t, []table.Value{table.Text("Ann"), table.Null(), table.Null()}, tb.Row(1))
	assert.Equal(t, []table.Value{table.Text("Bob"), table.Null(), table.Text("z")}, tb.Row(2))
}

func TestFromRecords_TooWide(t *testing.T) {
	_, err := FromRecords([]string{"a"}, [][]string{{"1", "2"}})
	assert.ErrorIs(t, err, table.ErrRowWidth)
}

func TestFromRecords_DuplicateAfterCanonical(t *testing.T) {
	_, err := FromRecords([]string{"Paying Customer", "Paying_Customer"}, nil)
	assert.ErrorIs(t, err, table.ErrDuplicateColumn)
}

func TestRegistry(t *testing.T) {
	Register("fake", func() Adapter { return nil }, ".FAKE")
	name, err := DriverFor("/tmp/list.fake")
	require.NoError(t, err)
	assert.Equal(t, "fake", name)

	_, err = DriverFor("list.parquet")
	assert.Error(t, err)
	_, err = NewAdapter("nope")
	assert.Error(t, err)
}
