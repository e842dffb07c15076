// Package sniffer locates the transaction header row inside a loosely
// structured export grid and maps its cells to semantic column roles.
// Bank exports routinely open with account banners, summary tables and
// legal boilerplate before the real header.
package sniffer

import (
	"errors"
	"strings"

	"github.com/FACorreiaa/bank2qfx/internal/tabular"
)

var ErrHeaderNotFound = errors.New("could not find transaction header row")

// LocateHeader scans rows top to bottom and returns the index of the first
// row that qualifies as the column header. A malformed or unsupported export
// yields ErrHeaderNotFound.
func LocateHeader(grid tabular.Grid) (int, error) {
	for i, row := range grid {
		if isHeaderRow(row) {
			return i, nil
		}
	}
	return 0, ErrHeaderNotFound
}

// A header row names a date column in one of its first two cells and an
// amount column anywhere. "Amount Summary" banners and totals rows do not
// qualify.
func isHeaderRow(row []string) bool {
	if len(row) == 0 {
		return false
	}

	dateOK := false
	for i, cell := range row {
		if i >= 2 {
			break
		}
		if strings.Contains(strings.ToLower(cell), "date") {
			dateOK = true
			break
		}
	}
	if !dateOK {
		return false
	}

	amountOK := false
	for _, cell := range row {
		lower := strings.ToLower(cell)
		if strings.Contains(lower, "amount") && !strings.Contains(lower, "summary") {
			amountOK = true
			break
		}
	}
	if !amountOK {
		return false
	}

	first := strings.ToLower(strings.TrimSpace(row[0]))
	if strings.Contains(first, "total") || strings.Contains(first, "summary") {
		return false
	}
	return true
}
