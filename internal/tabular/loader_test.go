package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoader_Load(t *testing.T) {
	t.Run("loads comma-delimited text", func(t *testing.T) {
		data := []byte("Date,Description,Amount\n01/15/2024,Coffee Shop,-4.50\n")

		grid, err := NewLoader(0).Load(data, "export.csv")

		require.NoError(t, err)
		require.Len(t, grid, 2)
		assert.Equal(t, []string{"Date", "Description", "Amount"}, grid[0])
		assert.Equal(t, []string{"01/15/2024", "Coffee Shop", "-4.50"}, grid[1])
	})

	t.Run("detects tab delimiter", func(t *testing.T) {
		data := []byte("Date\tDescription\tAmount\tBalance\n" +
			"01/15/2024\tCoffee\t-4.50\t100.00\n" +
			"01/16/2024\tSalary\t5000.00\t5100.00\n")

		grid, err := NewLoader(0).Load(data, "export.txt")

		require.NoError(t, err)
		require.Len(t, grid, 3)
		assert.Len(t, grid[0], 4)
	})

	t.Run("detects semicolon delimiter", func(t *testing.T) {
		data := []byte("Date;Description;Amount\n15.01.2024;Cafe;-4.50\n")

		grid, err := NewLoader(0).Load(data, "export.csv")

		require.NoError(t, err)
		require.Len(t, grid, 2)
		assert.Equal(t, "Description", grid[0][1])
	})

	t.Run("strips blank lines", func(t *testing.T) {
		data := []byte("Date,Amount\n\n\n01/15/2024,-4.50\n\n")

		grid, err := NewLoader(0).Load(data, "export.csv")

		require.NoError(t, err)
		assert.Len(t, grid, 2)
	})

	t.Run("strips UTF-8 BOM", func(t *testing.T) {
		data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Date,Amount\n01/15/2024,-4.50\n")...)

		grid, err := NewLoader(0).Load(data, "export.csv")

		require.NoError(t, err)
		assert.Equal(t, "Date", grid[0][0])
	})

	t.Run("falls back to Latin-1 for non-UTF-8 bytes", func(t *testing.T) {
		// "Café" with an ISO-8859-1 e-acute, invalid as UTF-8.
		data := []byte("Date,Description,Amount\n01/15/2024,Caf\xe9,-4.50\n")

		grid, err := NewLoader(0).Load(data, "export.csv")

		require.NoError(t, err)
		assert.Equal(t, "Café", grid[1][1])
	})

	t.Run("decodes Windows-1252 when the C1 range is used", func(t *testing.T) {
		// 0x92 is a curly apostrophe in Windows-1252 but a control
		// character in Latin-1.
		data := []byte("Date,Description,Amount\n01/15/2024,Joe\x92s Diner,-18.75\n")

		grid, err := NewLoader(0).Load(data, "export.csv")

		require.NoError(t, err)
		assert.Equal(t, "Joe’s Diner", grid[1][1])
	})

	t.Run("tolerates ragged rows", func(t *testing.T) {
		data := []byte("Account export for review\nDate,Description,Amount\n01/15/2024,Coffee,-4.50\n")

		grid, err := NewLoader(0).Load(data, "export.csv")

		require.NoError(t, err)
		require.Len(t, grid, 3)
		assert.Len(t, grid[0], 1)
		assert.Len(t, grid[1], 3)
	})

	t.Run("empty input fails", func(t *testing.T) {
		_, err := NewLoader(0).Load(nil, "export.csv")
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("row limit fails fast", func(t *testing.T) {
		data := []byte("Date,Amount\n01/15/2024,-1.00\n01/16/2024,-2.00\n01/17/2024,-3.00\n")

		_, err := NewLoader(2).Load(data, "export.csv")

		assert.ErrorIs(t, err, ErrTooManyRows)
	})

	t.Run("loads workbook rows including banners", func(t *testing.T) {
		f := excelize.NewFile()
		require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Account Activity"}))
		require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Date", "Description", "Amount"}))
		require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"01/15/2024", "Coffee Shop", "-4.50"}))
		buf, err := f.WriteToBuffer()
		require.NoError(t, err)

		grid, loadErr := NewLoader(0).Load(buf.Bytes(), "export.xlsx")

		require.NoError(t, loadErr)
		require.Len(t, grid, 3)
		assert.Equal(t, "Account Activity", grid[0][0])
		assert.Equal(t, "Amount", grid[1][2])
	})
}

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name   string
		sample string
		want   rune
	}{
		{"commas dominate", "a,b,c\nd,e,f\n", ','},
		{"semicolons beat commas", "a;b;c\nd;e;f\n", ';'},
		{"tabs win above threshold", "a\tb\tc\nd\te\tf\ng\th\ti\n", '\t'},
		{"comma fallback", "just one line of text\n", ','},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectDelimiter(tt.sample))
		})
	}
}
