// Package tabular turns raw uploaded bytes into a rectangular grid of untyped
// cells. It handles both spreadsheet containers (via excelize) and delimited
// text with unknown encoding and unknown delimiter.
package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// Grid is an ordered sequence of rows of untyped cells. Rows are not
// guaranteed to have a uniform column count; consumers must tolerate
// ragged input.
type Grid [][]string

var (
	ErrEmptyFile   = errors.New("file is empty")
	ErrTooManyRows = errors.New("row limit exceeded")
)

// Sheets considered first when a workbook has more than one.
var preferredSheets = []string{"transactions", "statement", "data", "sheet1"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// How much of the input the delimiter sniffer samples.
const sniffWindow = 500

// This source typically ships tab-delimited exports, so tab wins outright
// once it clearly dominates the sample.
const tabThreshold = 5

// Loader converts raw export bytes into a Grid. MaxRows bounds memory use;
// zero means unbounded.
type Loader struct {
	MaxRows int
}

func NewLoader(maxRows int) *Loader {
	return &Loader{MaxRows: maxRows}
}

// Load builds a Grid from raw bytes. The filename hint decides between the
// workbook and delimited-text paths; content is never inspected for magic
// numbers beyond that.
func (l *Loader) Load(data []byte, filename string) (Grid, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if isWorkbook(filename) {
		return l.loadWorkbook(data)
	}
	return l.loadDelimited(data)
}

func isWorkbook(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm", ".xls":
		return true
	}
	return false
}

// loadWorkbook reads every row of the chosen sheet, including metadata
// banners. Header discovery happens downstream.
func (l *Loader) loadWorkbook(data []byte) (Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := pickSheet(f)
	if sheet == "" {
		return nil, fmt.Errorf("open workbook: no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if l.MaxRows > 0 && len(rows) > l.MaxRows {
		return nil, fmt.Errorf("%w: sheet %s has %d rows (limit %d)", ErrTooManyRows, sheet, len(rows), l.MaxRows)
	}

	grid := make(Grid, 0, len(rows))
	for _, row := range rows {
		if isBlankRow(row) {
			continue
		}
		grid = append(grid, row)
	}
	return grid, nil
}

func pickSheet(f *excelize.File) string {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ""
	}
	for _, preferred := range preferredSheets {
		for _, sheet := range sheets {
			if strings.EqualFold(sheet, preferred) {
				return sheet
			}
		}
	}
	return sheets[0]
}

func (l *Loader) loadDelimited(data []byte) (Grid, error) {
	text := decodeText(data)

	lines := splitNonBlankLines(text)
	if len(lines) == 0 {
		return nil, ErrEmptyFile
	}
	if l.MaxRows > 0 && len(lines) > l.MaxRows {
		return nil, fmt.Errorf("%w: input has %d lines (limit %d)", ErrTooManyRows, len(lines), l.MaxRows)
	}

	delimiter := detectDelimiter(text)

	reader := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var grid Grid
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Banner and legal-disclaimer lines are common in these
			// exports; a malformed line is dropped, not fatal.
			continue
		}
		grid = append(grid, record)
	}
	return grid, nil
}

// decodeText picks the encoding: UTF-8 (with optional BOM) when the bytes are
// valid, otherwise Windows-1252 when the 0x80-0x9F range is in use, otherwise
// Latin-1. Both single-byte charsets map every byte, but they disagree on
// that range: Windows exports put curly quotes and dashes there, while in
// Latin-1 it is control characters.
func decodeText(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data)
	}
	enc := charmap.ISO8859_1
	if hasC1Bytes(data) {
		enc = charmap.Windows1252
	}
	decoded, _ := enc.NewDecoder().Bytes(data)
	return string(decoded)
}

func hasC1Bytes(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 && b <= 0x9F {
			return true
		}
	}
	return false
}

func splitNonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// detectDelimiter samples the head of the input and picks a separator in
// priority order tab > semicolon > comma, falling back to comma when none
// dominates.
func detectDelimiter(text string) rune {
	sample := text
	if len(sample) > sniffWindow {
		sample = sample[:sniffWindow]
	}

	tabs := strings.Count(sample, "\t")
	semis := strings.Count(sample, ";")
	commas := strings.Count(sample, ",")

	switch {
	case tabs > tabThreshold:
		return '\t'
	case semis > commas && semis > 0:
		return ';'
	default:
		return ','
	}
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
