package aggregator

import (
	"context"
	"net/url"
	"strconv"
)

const (
	transactionsPath = "/api/v2/transactions"
	// MaxPageSize is the largest page the aggregator serves in one call.
	MaxPageSize = 500
)

type transactionList struct {
	Transactions []Transaction `json:"transactions"`
}

// ListTransactions fetches the most recent transactions of one remote account,
// newest first. limit is clamped to MaxPageSize.
func (c *Client) ListTransactions(ctx context.Context, token, accountID string, limit int) ([]Transaction, error) {
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}

	q := url.Values{}
	q.Set("view", "userView")
	q.Set("accountIds", accountID)
	q.Set("page", "1")
	q.Set("perPage", strconv.Itoa(limit))
	q.Set("order", "bankBookingDate,desc")

	var list transactionList
	if err := c.getJSON(ctx, token, "transactions", transactionsPath, q, &list); err != nil {
		return nil, err
	}
	return list.Transactions, nil
}
