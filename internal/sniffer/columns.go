package sniffer

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/FACorreiaa/bank2qfx/internal/tabular"
)

// Role identifies the semantic meaning of a resolved column.
type Role int

const (
	RoleDate Role = iota
	RoleDescription
	RoleAmount
	RoleMemo
	RoleRunningBalance
)

func (r Role) String() string {
	switch r {
	case RoleDate:
		return "date"
	case RoleDescription:
		return "description"
	case RoleAmount:
		return "amount"
	case RoleMemo:
		return "memo"
	case RoleRunningBalance:
		return "running balance"
	}
	return "unknown"
}

// ColumnMap holds zero-based column indices for each resolved role. It is
// built once per conversion and immutable thereafter. RunningBalance is -1
// when the export carries no such column; Memo falls back to the Description
// index.
type ColumnMap struct {
	Date           int
	Description    int
	Amount         int
	Memo           int
	RunningBalance int
}

// ColumnError reports a required role that could not be resolved against the
// header row. It is terminal for the whole conversion.
type ColumnError struct {
	Role Role
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("required %s column not found in header row", e.Role)
}

// Maximum edit distance tolerated by the fuzzy fallback for misspelled
// headers such as "Amuont".
const fuzzyTolerance = 2

// ResolveColumns maps header cells to roles using ordered keyword rules.
// Keyword order matters: the first keyword that matches any column wins when
// several columns could claim the same role. Date, Amount and Description
// are required.
func ResolveColumns(grid tabular.Grid, headerRow int) (*ColumnMap, error) {
	if headerRow < 0 || headerRow >= len(grid) {
		return nil, &ColumnError{Role: RoleDate}
	}

	keys := make([]string, len(grid[headerRow]))
	for i, cell := range grid[headerRow] {
		keys[i] = normalizeKey(cell)
	}

	cols := &ColumnMap{
		Date:           findFirst(keys, func(k string) bool { return strings.Contains(k, "date") }),
		Amount:         resolveAmount(keys),
		Description:    findByKeywords(keys, "payee", "description", "details", "name"),
		Memo:           findByKeywords(keys, "memo", "note"),
		RunningBalance: findFirst(keys, func(k string) bool { return strings.Contains(k, "running bal") }),
	}

	if cols.Date < 0 {
		cols.Date = fuzzyFind(keys, "date")
	}
	if cols.Amount < 0 {
		cols.Amount = fuzzyFind(keys, "amount")
	}
	if cols.Description < 0 {
		cols.Description = fuzzyFind(keys, "description")
	}

	if cols.Date < 0 {
		return nil, &ColumnError{Role: RoleDate}
	}
	if cols.Amount < 0 {
		return nil, &ColumnError{Role: RoleAmount}
	}
	if cols.Description < 0 {
		return nil, &ColumnError{Role: RoleDescription}
	}
	if cols.Memo < 0 {
		cols.Memo = cols.Description
	}
	return cols, nil
}

// normalizeKey trims, lower-cases and collapses internal whitespace and
// underscores so "Transaction_Amount " and "transaction amount" compare
// equal.
func normalizeKey(header string) string {
	header = strings.ToLower(strings.TrimSpace(header))
	header = strings.ReplaceAll(header, "_", " ")
	return strings.Join(strings.Fields(header), " ")
}

func findFirst(keys []string, match func(string) bool) int {
	for i, k := range keys {
		if match(k) {
			return i
		}
	}
	return -1
}

// findByKeywords walks keywords in priority order; the first keyword that
// matches any column decides the role.
func findByKeywords(keys []string, keywords ...string) int {
	for _, kw := range keywords {
		if i := findFirst(keys, func(k string) bool { return strings.Contains(k, kw) }); i >= 0 {
			return i
		}
	}
	return -1
}

// resolveAmount prefers a column literally named "amount" over variants like
// "transaction amount"; "amount summary" columns never qualify.
func resolveAmount(keys []string) int {
	if i := findFirst(keys, func(k string) bool { return k == "amount" }); i >= 0 {
		return i
	}
	return findFirst(keys, func(k string) bool {
		return strings.Contains(k, "amount") && !strings.Contains(k, "summary")
	})
}

// fuzzyFind rescues near-miss header spellings with a bounded edit distance.
func fuzzyFind(keys []string, target string) int {
	best := -1
	bestDistance := fuzzyTolerance + 1
	for i, k := range keys {
		if k == "" {
			continue
		}
		if d := fuzzy.LevenshteinDistance(k, target); d < bestDistance {
			bestDistance = d
			best = i
		}
	}
	return best
}
