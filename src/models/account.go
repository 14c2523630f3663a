package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BankAccount struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	ConnectionID *string         `json:"connection_id"`
	IBAN         string          `json:"iban"`
	Balance      decimal.Decimal `json:"balance"`
	LastSyncAt   *time.Time      `json:"last_sync_at"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Synchronizable reports whether the account is linked to an aggregator connection.
func (a BankAccount) Synchronizable() bool {
	return a.ConnectionID != nil && *a.ConnectionID != ""
}
