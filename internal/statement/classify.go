package statement

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// How many leading records the classifier inspects.
const classifySampleSize = 10

var creditCardActivityMatcher = ahocorasick.NewStringMatcher([]string{
	"payment", "purchase", "authorization",
})

// Classify infers the source account type from the original filename and the
// leading records. Best effort: absence of evidence defaults to CHECKING,
// and it never fails.
func Classify(stmt *Statement, sourceName string) AccountType {
	name := strings.ToLower(sourceName)

	if hasCreditCardToken(name) {
		return AccountCreditCard
	}
	if strings.Contains(name, "saving") || hasToken(name, "sav") {
		return AccountSavings
	}

	for i, tx := range stmt.Transactions {
		if i >= classifySampleSize {
			break
		}
		text := strings.ToLower(tx.Description + " " + tx.Memo)
		if len(creditCardActivityMatcher.Match([]byte(text))) > 0 {
			return AccountCreditCard
		}
	}
	return AccountChecking
}

// hasCreditCardToken looks for card markers in the filename. "cc" must stand
// alone as a token so names like "account.csv" do not match.
func hasCreditCardToken(name string) bool {
	for _, sub := range []string{"credit", "card", "visa", "amex", "mastercard"} {
		if strings.Contains(name, sub) {
			return true
		}
	}
	return hasToken(name, "cc")
}

// hasToken matches want against the alphanumeric runs of name, so short
// abbreviations do not fire inside unrelated words ("savor", "account").
func hasToken(name, want string) bool {
	for _, token := range strings.FieldsFunc(name, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		if token == want {
			return true
		}
	}
	return false
}
