// Package qfx renders a statement as OFX 1.02 SGML (the QFX dialect consumed
// by Quicken-family importers). Tag order and the unclosed-opening-tag
// convention are a compatibility contract with existing importers; do not
// reorder tags or close value tags.
package qfx

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/bank2qfx/internal/normalize"
	"github.com/FACorreiaa/bank2qfx/internal/statement"
)

// Display-length limits for the two text tags. NAME is the tightest limit
// observed across downstream importers.
const (
	maxNameLen = 32
	maxMemoLen = 255
)

// All postings carry a fixed nominal time-of-day; source exports are
// date-only.
const nominalTime = "130000.000"

// Options controls the institution block and rendering context. Zero values
// fall back to the Bank of America defaults the tool was built around.
type Options struct {
	BankID   string
	AcctID   string
	Currency string
	// TZSuffix is the OFX timezone suffix appended to every timestamp,
	// e.g. "[-8]".
	TZSuffix string
	// Now stamps DTSERVER and DTASOF; zero means wall-clock time. Tests
	// pass a fixed instant for reproducible output.
	Now time.Time
}

func (o Options) withDefaults() Options {
	if o.BankID == "" {
		o.BankID = "026005092"
	}
	if o.AcctID == "" {
		o.AcctID = "10000001"
	}
	if o.Currency == "" {
		o.Currency = "USD"
	}
	if o.TZSuffix == "" {
		o.TZSuffix = "[-8]"
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o
}

var sgmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Render serializes the statement. Records are emitted in their assembled
// order; DTSTART and DTEND span the earliest and latest record dates.
func Render(stmt *statement.Statement, accountType statement.AccountType, opts Options) string {
	opts = opts.withDefaults()

	var b strings.Builder
	writeHeader(&b, stmt, accountType, opts)
	for _, tx := range stmt.Transactions {
		writeTransaction(&b, tx, opts)
	}
	writeFooter(&b, stmt, opts)
	return b.String()
}

func writeHeader(b *strings.Builder, stmt *statement.Statement, accountType statement.AccountType, opts Options) {
	dtServer := opts.Now.Format("20060102150405") + ".000" + opts.TZSuffix
	start, end := dateRange(stmt, opts.Now)

	fmt.Fprintf(b, `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
<MESSAGE>OK
</STATUS>
<DTSERVER>%s
<LANGUAGE>ENG
<INTU.BID>69487
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>0
<STATUS>
<CODE>0
<SEVERITY>INFO
<MESSAGE>OK
</STATUS>
<STMTRS>
<CURDEF>%s
<BANKACCTFROM>
<BANKID>%s
<ACCTID>%s
<ACCTTYPE>%s
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>%s
<DTEND>%s
`,
		dtServer,
		opts.Currency,
		opts.BankID,
		opts.AcctID,
		acctTypeTag(accountType),
		stamp(start, opts),
		stamp(end, opts),
	)
}

func writeTransaction(b *strings.Builder, tx statement.Transaction, opts Options) {
	fmt.Fprintf(b, `<STMTTRN>
<TRNTYPE>%s
<DTPOSTED>%s
<TRNAMT>%s
<FITID>%s
<NAME>%s
<MEMO>%s
</STMTTRN>
`,
		tx.Type,
		stamp(tx.Date, opts),
		tx.Amount.StringFixed(2),
		tx.FITID,
		sgmlEscaper.Replace(normalize.Truncate(tx.Description, maxNameLen)),
		sgmlEscaper.Replace(normalize.Truncate(tx.Memo, maxMemoLen)),
	)
}

func writeFooter(b *strings.Builder, stmt *statement.Statement, opts Options) {
	balance := decimal.Zero
	if stmt.HasLedgerBalance {
		balance = stmt.LedgerBalance
	}
	fmt.Fprintf(b, `</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>%s
<DTASOF>%s
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>
`,
		balance.StringFixed(2),
		stamp(opts.Now, opts),
	)
}

// acctTypeTag maps the classifier output onto the tag vocabulary importers
// expect; credit-card sources ship as ACCTTYPE CREDIT.
func acctTypeTag(t statement.AccountType) string {
	if t == statement.AccountCreditCard {
		return "CREDIT"
	}
	return string(t)
}

func stamp(t time.Time, opts Options) string {
	return t.Format("20060102") + nominalTime + opts.TZSuffix
}

func dateRange(stmt *statement.Statement, now time.Time) (time.Time, time.Time) {
	if len(stmt.Transactions) == 0 {
		return now, now
	}
	start, end := stmt.Transactions[0].Date, stmt.Transactions[0].Date
	for _, tx := range stmt.Transactions[1:] {
		if tx.Date.Before(start) {
			start = tx.Date
		}
		if tx.Date.After(end) {
			end = tx.Date
		}
	}
	return start, end
}
