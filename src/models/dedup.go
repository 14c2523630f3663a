package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrAccountNotFound = errors.New("account not found")

// DedupKey is the natural key under which a bank transaction is considered
// already imported. It is scoped to the local account.
type DedupKey struct {
	AccountID       string
	TransactionDate time.Time
	Amount          decimal.Decimal
	Description     string
}

func (k DedupKey) String() string {
	return fmt.Sprintf("%s|%s|%s|%s", k.AccountID, k.TransactionDate.Format("2006-01-02"), k.Amount.String(), k.Description)
}

// Key returns the dedup key of a stored transaction.
func (t BankTransaction) Key() DedupKey {
	return DedupKey{
		AccountID:       t.AccountID,
		TransactionDate: t.TransactionDate,
		Amount:          t.Amount,
		Description:     t.Description,
	}
}
