package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BankTransaction struct {
	ID               string          `json:"id"`
	AccountID        string          `json:"account_id"`
	TransactionDate  time.Time       `json:"transaction_date"`
	ValueDate        time.Time       `json:"value_date"`
	Amount           decimal.Decimal `json:"amount"` // negative = debit
	Description      string          `json:"description"`
	CounterpartyName string          `json:"counterparty_name"`
	CounterpartyIBAN string          `json:"counterparty_iban"`
	Reference        string          `json:"reference"`
	IsMatched        bool            `json:"is_matched"`
	MatchedPaymentID *string         `json:"matched_payment_id"`
	CreatedAt        time.Time       `json:"created_at"`
}
