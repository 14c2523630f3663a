package syncer

import (
	"banksync-server/src/aggregator"
	"banksync-server/src/models"
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Remote is the aggregator as seen by a sync run.
type Remote interface {
	AcquireToken(ctx context.Context) (string, error)
	ListAccounts(ctx context.Context, token string, connectionIDs ...string) ([]aggregator.Account, error)
	ListTransactions(ctx context.Context, token, accountID string, limit int) ([]aggregator.Transaction, error)
}

// Store is the local persistence the pipeline reads and writes.
type Store interface {
	ListAccounts(ctx context.Context) ([]models.BankAccount, error)
	GetAccount(ctx context.Context, accountID string) (*models.BankAccount, error)
	UpdateAccountSync(ctx context.Context, accountID string, balance decimal.Decimal, iban string, syncedAt time.Time) error
	TransactionExists(ctx context.Context, key models.DedupKey) (bool, error)
	// CreateTransaction reports false when a row with the same dedup key already exists.
	CreateTransaction(ctx context.Context, t *models.BankTransaction) (bool, error)
}
