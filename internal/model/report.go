package model

// Source names a table a report reads from.
type Source string

const (
	SourceRides     Source = "rides"
	SourceCustomers Source = "customer_summary"
	SourceDaily     Source = "daily_summary"
)

// Table is the tabular result of one report: ordered columns and positional rows.
// Cells are nil when the value is undefined (zero denominator, no predecessor).
type Table struct {
	Name    string     `json:"name"`
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    [][]any    `json:"rows"`
	Skipped int        `json:"skipped"`
	Issues  []RowIssue `json:"issues,omitempty"`
}

// RowIssue records an input row a report skipped because of a data-quality problem.
type RowIssue struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// Records returns rows as column-keyed maps, the shape dashboards usually want.
func (t Table) Records() []map[string]any {
	out := make([]map[string]any, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(map[string]any, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		out = append(out, rec)
	}
	return out
}

type ReportInfo struct {
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Sources  []Source `json:"sources"`
	RowLevel bool     `json:"row_level"`
}
