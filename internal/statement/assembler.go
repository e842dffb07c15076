package statement

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/FACorreiaa/bank2qfx/internal/normalize"
	"github.com/FACorreiaa/bank2qfx/internal/sniffer"
	"github.com/FACorreiaa/bank2qfx/internal/tabular"
)

// Summary-row vocabulary. Matchers are built once at process start and are
// read-only thereafter; patterns are lowercase because input is lowered
// before matching.
var (
	summaryTokenMatcher = ahocorasick.NewStringMatcher([]string{
		"beginning", "ending", "balance", "total", "summary",
	})
	summaryPhraseMatcher = ahocorasick.NewStringMatcher([]string{
		"beginning balance", "ending balance", "total credits", "total debits",
	})
)

// Assemble walks data rows strictly after the header row and produces the
// ordered record sequence. Summary rows and blank rows are skipped silently;
// rows whose date or amount fail to normalize are recorded as diagnostics
// and never abort the conversion. FITIDs are a gap-free sequence starting at
// 1, assigned only to rows that produce a record, so identical input always
// yields identical output.
func Assemble(grid tabular.Grid, headerRow int, cols *sniffer.ColumnMap) *Statement {
	stmt := &Statement{}

	seq := 0
	for i := headerRow + 1; i < len(grid); i++ {
		row := grid[i]
		line := i + 1

		dateRaw := cellAt(row, cols.Date)
		if dateRaw == "" || matchesSummaryToken(dateRaw) {
			continue
		}
		amountRaw := cellAt(row, cols.Amount)
		if amountRaw == "" {
			continue
		}

		date, err := normalize.Date(dateRaw)
		if err != nil {
			stmt.Skipped = append(stmt.Skipped, SkippedRow{Line: line, Reason: err.Error()})
			continue
		}
		amount, err := normalize.Amount(amountRaw)
		if err != nil {
			stmt.Skipped = append(stmt.Skipped, SkippedRow{Line: line, Reason: err.Error()})
			continue
		}

		description := normalize.CleanDescription(cellAt(row, cols.Description))
		if description == "" {
			description = "N/A"
		}
		if matchesSummaryPhrase(description) {
			continue
		}

		memo := normalize.CleanDescription(cellAt(row, cols.Memo))
		if memo == "" {
			memo = description
		}

		if cols.RunningBalance >= 0 {
			if bal, err := normalize.Amount(cellAt(row, cols.RunningBalance)); err == nil {
				stmt.LedgerBalance = bal
				stmt.HasLedgerBalance = true
			}
		}

		seq++
		stmt.Transactions = append(stmt.Transactions, Transaction{
			Date:        date,
			Description: description,
			Memo:        memo,
			Amount:      amount,
			FITID:       strconv.Itoa(seq),
			Type:        TypeForAmount(amount),
		})
	}
	return stmt
}

// InvertSigns flips every amount and re-derives the transaction type. Some
// credit-card exports report charges as positive "amount spent" rather than
// signed ledger deltas.
func (s *Statement) InvertSigns() {
	for i := range s.Transactions {
		s.Transactions[i].Amount = s.Transactions[i].Amount.Neg()
		s.Transactions[i].Type = TypeForAmount(s.Transactions[i].Amount)
	}
}

// Summary returns a one-line human description of the conversion outcome.
func (s *Statement) Summary() string {
	return fmt.Sprintf("%d transactions converted, %d rows skipped", len(s.Transactions), len(s.Skipped))
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func matchesSummaryToken(s string) bool {
	return len(summaryTokenMatcher.Match([]byte(strings.ToLower(s)))) > 0
}

func matchesSummaryPhrase(s string) bool {
	return len(summaryPhraseMatcher.Match([]byte(strings.ToLower(s)))) > 0
}
