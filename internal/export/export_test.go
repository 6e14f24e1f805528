package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"ride-insights/internal/model"
)

func sampleTable() model.Table {
	return model.Table{
		Name:    "daily-revenue-trend",
		Title:   "Daily revenue trend",
		Columns: []string{"Date", "Daily_Revenue", "Previous_Day_Revenue", "Revenue_Growth_Percent"},
		Rows: [][]any{
			{"2024-07-01", 1000.0, nil, nil},
			{"2024-07-02", 1200.0, 1000.0, 20.0},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleTable()))

	want := "Date,Daily_Revenue,Previous_Day_Revenue,Revenue_Growth_Percent\n" +
		"2024-07-01,1000,,\n" +
		"2024-07-02,1200,1000,20\n"
	require.Equal(t, want, buf.String())
}

func TestWriteCSV_QuotesText(t *testing.T) {
	table := model.Table{
		Columns: []string{"Reason", "Count"},
		Rows:    [][]any{{"Personal & Car related issue, late", 3}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))
	require.Equal(t, "Reason,Count\n\"Personal & Car related issue, late\",3\n", buf.String())
}

func TestWriteJSON_KeepsNulls(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleTable()))

	var decoded struct {
		Name string           `json:"name"`
		Rows []map[string]any `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, "daily-revenue-trend", decoded.Name)
	require.Len(t, decoded.Rows, 2)

	first := decoded.Rows[0]
	require.Contains(t, first, "Revenue_Growth_Percent")
	require.Nil(t, first["Revenue_Growth_Percent"])
	require.Equal(t, 20.0, decoded.Rows[1]["Revenue_Growth_Percent"])
}

func TestToDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	other := sampleTable()
	other.Name = "hourly-demand"

	paths, err := ToDir(dir, []model.Table{sampleTable(), other}, FormatCSV)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "daily-revenue-trend.csv"),
		filepath.Join(dir, "hourly-demand.csv"),
	}, paths)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	require.Contains(t, string(data), "2024-07-02,1200,1000,20")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, f)

	f, err = ParseFormat("csv")
	require.NoError(t, err)
	require.Equal(t, FormatCSV, f)

	_, err = ParseFormat("xlsx")
	require.Error(t, err)
}

func TestCell(t *testing.T) {
	v := 4.5
	var none *float64
	require.Equal(t, "4.5", Cell(&v))
	require.Equal(t, "", Cell(none))
	require.Equal(t, "12", Cell(int64(12)))
	require.Equal(t, "true", Cell(true))
}
