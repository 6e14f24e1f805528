package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrUnsupportedSource = errors.New("unsupported source file")

// Record is one raw input row keyed by header name. Values are untrimmed text.
type Record map[string]string

type Reader struct {
	sheet string
}

func NewReader(sheet string) *Reader {
	return &Reader{sheet: sheet}
}

// Read loads every row of an .xlsx sheet or a .csv file.
func (r *Reader) Read(ctx context.Context, path string) ([]Record, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return r.readWorkbook(ctx, path)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return readCSV(ctx, f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, path)
	}
}

func (r *Reader) readWorkbook(ctx context.Context, path string) ([]Record, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	sheet := r.sheet
	if sheet == "" {
		sheet = wb.GetSheetName(wb.GetActiveSheetIndex())
	}
	if idx, err := wb.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found in %s (have %s)", sheet, path, strings.Join(wb.GetSheetList(), ", "))
	}

	rows, err := wb.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	defer rows.Close()

	var table [][]string
	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cols, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("sheet %q row %d: %w", sheet, len(table)+1, err)
		}
		table = append(table, cols)
	}
	if err := rows.Error(); err != nil {
		return nil, err
	}
	return toRecords(table)
}

func readCSV(ctx context.Context, in io.Reader) ([]Record, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var table [][]string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		table = append(table, row)
	}
	return toRecords(table)
}

func toRecords(table [][]string) ([]Record, error) {
	if len(table) == 0 {
		return nil, errors.New("source has no header row")
	}

	header := make([]string, len(table[0]))
	for i, h := range table[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	records := make([]Record, 0, len(table)-1)
	for _, row := range table[1:] {
		if blank(row) {
			continue
		}
		rec := make(Record, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(row) {
				rec[name] = row[i]
			} else {
				rec[name] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
