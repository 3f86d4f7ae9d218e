// Package ingest turns uploaded CSV and Excel files into data sources.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"agentmgr/domain/core"
	"agentmgr/domain/dataset"

	"github.com/xuri/excelize/v2"
)

// ReadFile dispatches on the filename extension. The base name (without
// extension) becomes the data source name.
func ReadFile(r io.Reader, filename string) (*dataset.DataSource, error) {
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ReadCSV(r, name)
	case ".xlsx", ".xls":
		return ReadExcel(r, name)
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// ReadCSV parses CSV content into a data source. The first record is the
// header row; cells stay as strings and are parsed lazily by the analysis
// layer.
func ReadCSV(r io.Reader, name string) (*dataset.DataSource, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	// Tolerate ragged rows; missing cells become absent values
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: CSV file has no header row", core.ErrInvalidDataSource)
	}

	columns := make([]string, 0, len(records[0]))
	for _, header := range records[0] {
		columns = append(columns, strings.TrimSpace(header))
	}

	rows := recordsToRows(columns, records[1:])
	return dataset.New(name, dataset.KindCSV, columns, rows), nil
}

// ReadExcel parses the first sheet of an Excel workbook into a data source
func ReadExcel(r io.Reader, name string) (*dataset.DataSource, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", core.ErrInvalidDataSource)
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: sheet %s has no header row", core.ErrInvalidDataSource, sheets[0])
	}

	columns := make([]string, 0, len(records[0]))
	for _, header := range records[0] {
		columns = append(columns, strings.TrimSpace(header))
	}

	rows := recordsToRows(columns, records[1:])
	return dataset.New(name, dataset.KindExcel, columns, rows), nil
}

// recordsToRows maps positional records onto named rows. Short records leave
// trailing columns absent rather than empty.
func recordsToRows(columns []string, records [][]string) []dataset.Row {
	rows := make([]dataset.Row, 0, len(records))
	for _, record := range records {
		row := dataset.Row{}
		for i, column := range columns {
			if i < len(record) {
				row[column] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows
}
