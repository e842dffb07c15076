package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Run("filename cc token wins", func(t *testing.T) {
		stmt := &Statement{}
		assert.Equal(t, AccountCreditCard, Classify(stmt, "boa_cc_march.csv"))
		assert.Equal(t, AccountCreditCard, Classify(stmt, "visa-statement.xlsx"))
		assert.Equal(t, AccountCreditCard, Classify(stmt, "CreditCard2024.csv"))
	})

	t.Run("cc must be a standalone token", func(t *testing.T) {
		stmt := &Statement{}
		assert.Equal(t, AccountChecking, Classify(stmt, "account.csv"))
	})

	t.Run("savings filename", func(t *testing.T) {
		assert.Equal(t, AccountSavings, Classify(&Statement{}, "savings_export.csv"))
		assert.Equal(t, AccountSavings, Classify(&Statement{}, "boa_sav_2024.csv"))
	})

	t.Run("sav must be a standalone token", func(t *testing.T) {
		assert.Equal(t, AccountChecking, Classify(&Statement{}, "savor-cafe.csv"))
	})

	t.Run("credit card activity in leading records", func(t *testing.T) {
		stmt := &Statement{Transactions: []Transaction{
			{Description: "Coffee Shop"},
			{Description: "PURCHASE AUTHORIZED ON 01/14"},
		}}
		assert.Equal(t, AccountCreditCard, Classify(stmt, "export.csv"))
	})

	t.Run("activity beyond the sample window is ignored", func(t *testing.T) {
		txs := make([]Transaction, 12)
		for i := range txs {
			txs[i].Description = "Grocery store"
			txs[i].Memo = "Grocery store"
		}
		txs[11].Description = "PAYMENT RECEIVED"
		stmt := &Statement{Transactions: txs}
		assert.Equal(t, AccountChecking, Classify(stmt, "export.csv"))
	})

	t.Run("defaults to checking", func(t *testing.T) {
		assert.Equal(t, AccountChecking, Classify(&Statement{}, "export.csv"))
	})
}
