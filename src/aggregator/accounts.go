package aggregator

import (
	"context"
	"net/url"
	"strings"
)

const accountsPath = "/api/v2/accounts"

type accountList struct {
	Accounts []Account `json:"accounts"`
}

// ListAccounts returns the live accounts bound to the given connections. An
// empty result is not an error.
func (c *Client) ListAccounts(ctx context.Context, token string, connectionIDs ...string) ([]Account, error) {
	q := url.Values{}
	q.Set("bankConnectionIds", strings.Join(connectionIDs, ","))

	var list accountList
	if err := c.getJSON(ctx, token, "accounts", accountsPath, q, &list); err != nil {
		return nil, err
	}
	return list.Accounts, nil
}
