package syncer

import (
	"banksync-server/src/aggregator"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDedupKeyFor(t *testing.T) {
	rt := aggregator.Transaction{
		ID:              "remote-99",
		AccountID:       "r-1",
		BankBookingDate: aggregator.NewDate(2024, 1, 5),
		Amount:          decimal.RequireFromString("-50.00"),
		Purpose:         strPtr("Electricity"),
		CounterpartName: strPtr("Power Co"),
	}

	key := DedupKeyFor("acc-a", rt)
	assert.Equal(t, "acc-a", key.AccountID)
	assert.Equal(t, "acc-a|2024-01-05|-50|Electricity", key.String())

	other := rt
	other.ID = "remote-100"
	other.AccountID = "r-2"
	other.CounterpartName = nil
	other.Amount = decimal.RequireFromString("-50")
	assert.Equal(t, key.String(), DedupKeyFor("acc-a", other).String(), "remote identity is not part of the key")

	assert.NotEqual(t, key.String(), DedupKeyFor("acc-b", rt).String())
}

func TestDedupKeyFor_MissingPurpose(t *testing.T) {
	rt := aggregator.Transaction{BankBookingDate: aggregator.NewDate(2024, 2, 1), Amount: decimal.NewFromInt(7)}
	assert.Equal(t, "acc-a|2024-02-01|7|", DedupKeyFor("acc-a", rt).String())
}
