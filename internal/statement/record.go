// Package statement holds the canonical transaction model and the assembly
// logic that turns a located, column-resolved grid into ordered records.
package statement

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrnType is the OFX transaction type tag derived from the amount sign.
type TrnType string

const (
	TrnCredit TrnType = "CREDIT"
	TrnDebit  TrnType = "DEBIT"
)

// TypeForAmount maps a signed amount to its tag: negative means money left
// the account.
func TypeForAmount(amount decimal.Decimal) TrnType {
	if amount.IsNegative() {
		return TrnDebit
	}
	return TrnCredit
}

// AccountType classifies the source account. It drives the ACCTTYPE tag and,
// optionally, the amount sign convention for credit-card exports.
type AccountType string

const (
	AccountChecking   AccountType = "CHECKING"
	AccountSavings    AccountType = "SAVINGS"
	AccountCreditCard AccountType = "CREDITCARD"
)

// Transaction is the canonical, format-independent unit of output.
// Description and Memo keep their full text; display-length truncation is
// the serializer's concern.
type Transaction struct {
	Date        time.Time
	Description string
	Memo        string
	Amount      decimal.Decimal
	FITID       string
	Type        TrnType
}

// SkippedRow is a purely diagnostic entry for a data row that could not
// become a record.
type SkippedRow struct {
	Line   int
	Reason string
}

// Statement is the assembled output of one conversion: ordered records in
// source order, skip diagnostics, and the last running-balance figure seen
// (when the export carries one).
type Statement struct {
	Transactions     []Transaction
	Skipped          []SkippedRow
	LedgerBalance    decimal.Decimal
	HasLedgerBalance bool
}
