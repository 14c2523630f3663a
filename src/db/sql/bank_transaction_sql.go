package db

import (
	"banksync-server/src/models"
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

func GetTransactionsSQL(ctx context.Context, pool *pgxpool.Pool, accountID string, limit int) ([]models.BankTransaction, error) {
	query := `
		SELECT id, account_id, transaction_date, value_date, amount, description,
			counterparty_name, counterparty_iban, reference, is_matched, matched_payment_id, created_at
		FROM bank_transactions
		WHERE account_id = $1
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT $2
	`

	rows, err := pool.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.BankTransaction
	for rows.Next() {
		var t models.BankTransaction
		err := rows.Scan(&t.ID, &t.AccountID, &t.TransactionDate, &t.ValueDate, &t.Amount, &t.Description,
			&t.CounterpartyName, &t.CounterpartyIBAN, &t.Reference, &t.IsMatched, &t.MatchedPaymentID, &t.CreatedAt)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}

func TransactionExistsSQL(ctx context.Context, pool *pgxpool.Pool, key models.DedupKey) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bank_transactions
			WHERE account_id = $1 AND transaction_date = $2 AND amount = $3 AND description = $4
		)
	`
	var exists bool
	err := pool.QueryRow(ctx, query, key.AccountID, key.TransactionDate, key.Amount, key.Description).Scan(&exists)
	return exists, err
}

// CreateTransactionSQL inserts a transaction unless a row with the same dedup key
// exists. It reports whether a row was written.
func CreateTransactionSQL(ctx context.Context, pool *pgxpool.Pool, t *models.BankTransaction) (bool, error) {
	query := `
		INSERT INTO bank_transactions (id, account_id, transaction_date, value_date, amount, description,
			counterparty_name, counterparty_iban, reference, is_matched, matched_payment_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (account_id, transaction_date, amount, description) DO NOTHING
	`
	cmd, err := pool.Exec(ctx, query,
		t.ID,
		t.AccountID,
		t.TransactionDate,
		t.ValueDate,
		t.Amount,
		t.Description,
		t.CounterpartyName,
		t.CounterpartyIBAN,
		t.Reference,
		t.IsMatched,
		t.MatchedPaymentID,
	)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}
