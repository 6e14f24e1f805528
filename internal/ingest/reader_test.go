package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	in := "\ufeffBooking_ID,Date,Booking_Value\n" +
		"CNR1,2024-07-01,120\n" +
		"\n" +
		"CNR2,2024-07-02\n"

	records, err := readCSV(context.Background(), strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []Record{
		{"Booking_ID": "CNR1", "Date": "2024-07-01", "Booking_Value": "120"},
		{"Booking_ID": "CNR2", "Date": "2024-07-02", "Booking_Value": ""},
	}, records)
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := readCSV(context.Background(), strings.NewReader(""))
	require.Error(t, err)
}

func TestReader_Workbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rides.xlsx")

	wb := excelize.NewFile()
	_, err := wb.NewSheet("July")
	require.NoError(t, err)
	require.NoError(t, wb.SetSheetRow("July", "A1", &[]any{"Booking_ID", "Date", "Time", "Booking_Status"}))
	require.NoError(t, wb.SetSheetRow("July", "A2", &[]any{"CNR1", "2024-07-01", "10:15:00", "Success"}))
	require.NoError(t, wb.SetSheetRow("July", "A3", &[]any{"CNR2", "2024-07-02", "23:01:12", "Canceled by Driver"}))
	require.NoError(t, wb.SaveAs(path))
	require.NoError(t, wb.Close())

	records, err := NewReader("July").Read(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "CNR2", records[1]["Booking_ID"])
	require.Equal(t, "Canceled by Driver", records[1]["Booking_Status"])

	_, err = NewReader("August").Read(context.Background(), path)
	require.ErrorContains(t, err, `sheet "August" not found`)
}

func TestReader_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rides.parquet")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	_, err := NewReader("").Read(context.Background(), path)
	require.ErrorIs(t, err, ErrUnsupportedSource)
}
