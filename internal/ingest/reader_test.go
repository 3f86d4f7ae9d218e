package ingest

import (
	"errors"
	"strings"
	"testing"

	"agentmgr/domain/core"
	"agentmgr/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	input := "name,age,city\nalice,30,Berlin\nbob,25,Paris\n"

	ds, err := ReadCSV(strings.NewReader(input), "people")
	require.NoError(t, err)

	assert.Equal(t, "people", ds.Name)
	assert.Equal(t, dataset.KindCSV, ds.Kind)
	assert.Equal(t, []string{"name", "age", "city"}, ds.Columns)
	require.Equal(t, 2, ds.RowCount())
	assert.Equal(t, "alice", ds.Rows[0]["name"])
	assert.Equal(t, "25", ds.Rows[1]["age"])
}

func TestReadCSV_RaggedRows(t *testing.T) {
	input := "a,b,c\n1,2\n4,5,6\n"

	ds, err := ReadCSV(strings.NewReader(input), "ragged")
	require.NoError(t, err)

	require.Equal(t, 2, ds.RowCount())
	_, present := ds.Rows[0]["c"]
	assert.False(t, present, "short record should leave trailing column absent")
	assert.Equal(t, "6", ds.Rows[1]["c"])
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), "empty")
	assert.True(t, errors.Is(err, core.ErrInvalidDataSource))
}

func TestReadCSV_HeaderOnly(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader("a,b\n"), "headers")
	require.NoError(t, err)
	assert.Equal(t, 0, ds.RowCount())
	assert.Equal(t, 2, ds.ColumnCount())
}

func TestReadFile_DispatchesByExtension(t *testing.T) {
	ds, err := ReadFile(strings.NewReader("x\n1\n"), "upload/metrics.csv")
	require.NoError(t, err)
	assert.Equal(t, "metrics", ds.Name)

	_, err = ReadFile(strings.NewReader("irrelevant"), "notes.txt")
	assert.True(t, errors.Is(err, core.ErrUnsupportedFormat))
}
