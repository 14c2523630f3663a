package syncer

import (
	"banksync-server/src/models"
	"banksync-server/src/util"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AccountUpdater writes fetched balance data back onto the internal account.
type AccountUpdater struct {
	store  Store
	now    func() time.Time
	logger *zap.Logger
}

func NewAccountUpdater(store Store, now func() time.Time, logger *zap.Logger) *AccountUpdater {
	return &AccountUpdater{store: store, now: now, logger: logger}
}

// Update stores balance, IBAN and the sync time. A missing remote IBAN keeps the
// account's current one.
func (u *AccountUpdater) Update(ctx context.Context, account models.BankAccount, balance decimal.Decimal, remoteIBAN *string) error {
	iban := account.IBAN
	if remoteIBAN != nil && strings.TrimSpace(*remoteIBAN) != "" {
		iban = util.NormalizeIBAN(*remoteIBAN)
		if !util.ValidateIBAN(iban) {
			u.logger.Warn("aggregator returned an unusual IBAN",
				zap.String("account_id", account.ID),
				zap.String("iban", iban))
		}
	}

	if err := u.store.UpdateAccountSync(ctx, account.ID, balance, iban, u.now()); err != nil {
		return fmt.Errorf("updating account %s: %w", account.ID, err)
	}
	return nil
}
