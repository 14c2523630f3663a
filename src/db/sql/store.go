package db

import (
	"banksync-server/src/models"
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Store adapts the SQL functions of this package to the sync pipeline.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) ListAccounts(ctx context.Context) ([]models.BankAccount, error) {
	return GetAccountsSQL(ctx, s.pool)
}

func (s *Store) GetAccount(ctx context.Context, accountID string) (*models.BankAccount, error) {
	return GetAccountSQL(ctx, s.pool, accountID)
}

func (s *Store) UpdateAccountSync(ctx context.Context, accountID string, balance decimal.Decimal, iban string, syncedAt time.Time) error {
	return UpdateAccountSync(ctx, s.pool, accountID, balance, iban, syncedAt)
}

func (s *Store) TransactionExists(ctx context.Context, key models.DedupKey) (bool, error) {
	return TransactionExistsSQL(ctx, s.pool, key)
}

func (s *Store) CreateTransaction(ctx context.Context, t *models.BankTransaction) (bool, error) {
	return CreateTransactionSQL(ctx, s.pool, t)
}

func (s *Store) ListTransactions(ctx context.Context, accountID string, limit int) ([]models.BankTransaction, error) {
	return GetTransactionsSQL(ctx, s.pool, accountID, limit)
}
