// Package export renders report tables as CSV or JSON files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"ride-insights/internal/model"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

func ParseFormat(raw string) (Format, error) {
	switch Format(raw) {
	case FormatCSV, FormatJSON:
		return Format(raw), nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q", raw)
	}
}

// WriteCSV writes a header row followed by one line per table row. Null cells are empty.
func WriteCSV(w io.Writer, t model.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}

	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = Cell(row[i])
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type jsonTable struct {
	Name    string           `json:"name"`
	Title   string           `json:"title"`
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
	Skipped int              `json:"skipped"`
}

// WriteJSON writes the table with column-keyed rows. Null cells stay null.
func WriteJSON(w io.Writer, t model.Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonTable{
		Name:    t.Name,
		Title:   t.Title,
		Columns: t.Columns,
		Rows:    t.Records(),
		Skipped: t.Skipped,
	})
}

func Write(w io.Writer, t model.Table, format Format) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatJSON:
		return WriteJSON(w, t)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// ToDir writes one <name>.<format> file per table and returns the written paths.
func ToDir(dir string, tables []model.Table, format Format) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	paths := make([]string, 0, len(tables))
	for _, t := range tables {
		path := filepath.Join(dir, t.Name+"."+string(format))
		if err := WriteFile(path, t, format); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func WriteFile(path string, t model.Table, format Format) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := Write(f, t, format); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Cell formats one value for text output.
func Cell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case *float64:
		if val == nil {
			return ""
		}
		return strconv.FormatFloat(*val, 'f', -1, 64)
	case *string:
		if val == nil {
			return ""
		}
		return *val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return fmt.Sprint(val)
	}
}
