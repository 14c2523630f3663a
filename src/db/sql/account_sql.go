package db

import (
	"banksync-server/src/models"
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `id, name, connection_id, iban, balance, last_sync_at, created_at, updated_at`

func scanAccount(row pgx.Row) (models.BankAccount, error) {
	var a models.BankAccount
	err := row.Scan(&a.ID, &a.Name, &a.ConnectionID, &a.IBAN, &a.Balance, &a.LastSyncAt, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func GetAccountsSQL(ctx context.Context, pool *pgxpool.Pool) ([]models.BankAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM bank_accounts ORDER BY name, id`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.BankAccount
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

func GetAccountSQL(ctx context.Context, pool *pgxpool.Pool, accountID string) (*models.BankAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM bank_accounts WHERE id = $1`

	account, err := scanAccount(pool.QueryRow(ctx, query, accountID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateAccountSync writes the fetched balance and IBAN and stamps the sync time.
// An empty IBAN keeps the stored one.
func UpdateAccountSync(ctx context.Context, pool *pgxpool.Pool, accountID string, balance decimal.Decimal, iban string, syncedAt time.Time) error {
	query := `
		UPDATE bank_accounts
		SET balance = $1,
			iban = COALESCE(NULLIF($2, ''), iban),
			last_sync_at = $3,
			updated_at = NOW()
		WHERE id = $4
	`
	cmd, err := pool.Exec(ctx, query, balance, iban, syncedAt, accountID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return models.ErrAccountNotFound
	}
	return nil
}
