package syncer

import (
	"banksync-server/src/aggregator"
	"banksync-server/src/models"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errMissingBookingDate = errors.New("remote transaction has no booking date")

// Importer copies one page of remote transactions into local storage, skipping
// those already imported. Calls for the same local account must not overlap.
type Importer struct {
	remote   Remote
	store    Store
	pageSize int
	logger   *zap.Logger
	newID    func() string
	metrics  *Metrics
}

func NewImporter(remote Remote, store Store, pageSize int, metrics *Metrics, logger *zap.Logger) *Importer {
	if pageSize <= 0 || pageSize > aggregator.MaxPageSize {
		pageSize = aggregator.MaxPageSize
	}
	return &Importer{
		remote:   remote,
		store:    store,
		pageSize: pageSize,
		logger:   logger,
		newID:    uuid.NewString,
		metrics:  metrics,
	}
}

// Import returns the number of transactions created. A page that cannot be
// fetched counts as zero; a transaction that cannot be stored is skipped.
func (im *Importer) Import(ctx context.Context, token, remoteAccountID, localAccountID string) int {
	logger := im.logger.With(
		zap.String("account_id", localAccountID),
		zap.String("remote_account_id", remoteAccountID))

	remoteTxns, err := im.remote.ListTransactions(ctx, token, remoteAccountID, im.pageSize)
	if err != nil {
		logger.Warn("fetching transactions failed", zap.Error(err))
		return 0
	}

	created := 0
	for _, rt := range remoteTxns {
		ok, err := im.importOne(ctx, localAccountID, rt)
		if err != nil {
			logger.Error("transaction import failed", zap.Error(err))
			im.metrics.importFailed()
			continue
		}
		if ok {
			created++
		}
	}

	logger.Info("transactions imported",
		zap.Int("fetched", len(remoteTxns)),
		zap.Int("created", created))
	return created
}

func (im *Importer) importOne(ctx context.Context, localAccountID string, rt aggregator.Transaction) (bool, error) {
	key := DedupKeyFor(localAccountID, rt)
	if rt.BankBookingDate.IsZero() {
		return false, &ImportError{Key: key, Err: errMissingBookingDate}
	}

	exists, err := im.store.TransactionExists(ctx, key)
	if err != nil {
		return false, &ImportError{Key: key, Err: err}
	}
	if exists {
		return false, nil
	}

	txn := newBankTransaction(im.newID(), key, rt)
	inserted, err := im.store.CreateTransaction(ctx, &txn)
	if err != nil {
		return false, &ImportError{Key: key, Err: err}
	}
	return inserted, nil
}

func newBankTransaction(id string, key models.DedupKey, rt aggregator.Transaction) models.BankTransaction {
	valueDate := rt.ValueDate.Time
	if rt.ValueDate.IsZero() {
		valueDate = key.TransactionDate
	}
	return models.BankTransaction{
		ID:               id,
		AccountID:        key.AccountID,
		TransactionDate:  key.TransactionDate,
		ValueDate:        valueDate,
		Amount:           key.Amount,
		Description:      key.Description,
		CounterpartyName: deref(rt.CounterpartName),
		CounterpartyIBAN: deref(rt.CounterpartIBAN),
		Reference:        deref(rt.CounterpartReference),
		IsMatched:        false,
		MatchedPaymentID: nil,
		CreatedAt:        time.Now().UTC(),
	}
}
