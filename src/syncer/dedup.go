package syncer

import (
	"banksync-server/src/aggregator"
	"banksync-server/src/models"
)

// DedupKeyFor builds the key under which a remote transaction is stored for the
// given local account. The remote account id is deliberately not part of it.
//
// The key holds business fields only. Two genuine transactions with the same
// date, amount and purpose on one account collapse into a single row.
func DedupKeyFor(localAccountID string, t aggregator.Transaction) models.DedupKey {
	return models.DedupKey{
		AccountID:       localAccountID,
		TransactionDate: t.BankBookingDate.Time,
		Amount:          t.Amount,
		Description:     deref(t.Purpose),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
