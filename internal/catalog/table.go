package catalog

import (
	"cmp"
	"math"

	"ride-insights/internal/model"
)

const notSpecified = "Not Specified"

type tableBuilder struct {
	t model.Table
}

func newTable(columns ...string) *tableBuilder {
	return &tableBuilder{t: model.Table{Columns: columns, Rows: [][]any{}}}
}

func (b *tableBuilder) add(values ...any) {
	b.t.Rows = append(b.t.Rows, values)
}

func (b *tableBuilder) skip(key, reason string) {
	b.t.Skipped++
	b.t.Issues = append(b.t.Issues, model.RowIssue{Key: key, Reason: reason})
}

func (b *tableBuilder) table() model.Table {
	return b.t
}

// round2 rounds half away from zero to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// percent returns num/den*100 rounded, or nil when den is zero.
func percent(num, den float64) *float64 {
	if den == 0 {
		return nil
	}
	v := round2(num / den * 100)
	return &v
}

func mean(sum float64, n int) *float64 {
	if n == 0 {
		return nil
	}
	v := round2(sum / float64(n))
	return &v
}

func rounded(v float64) *float64 {
	r := round2(v)
	return &r
}

// num renders an optional number as a table cell, rounded like every other numeric output.
func num(v *float64) any {
	if v == nil {
		return nil
	}
	return round2(*v)
}

func text(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func reasonOrDefault(v *string) string {
	if v == nil || *v == "" {
		return notSpecified
	}
	return *v
}

// compareDesc orders present values descending and undefined values last.
func compareDesc(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return cmp.Compare(*b, *a)
}

func take[T any](items []T, limit int) []T {
	if len(items) <= limit {
		return items
	}
	return items[:limit]
}
