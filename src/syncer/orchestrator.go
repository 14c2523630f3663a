package syncer

import (
	"banksync-server/src/aggregator"
	"banksync-server/src/cascade"
	"banksync-server/src/models"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Scope selects the accounts a run covers. The zero value means all accounts.
type Scope struct {
	AccountID string
}

func AllAccounts() Scope { return Scope{} }

func SingleAccount(accountID string) Scope { return Scope{AccountID: accountID} }

func (s Scope) All() bool { return s.AccountID == "" }

// Config is everything a run needs from the environment. It is built by the
// caller; nothing in this package reads process state.
type Config struct {
	Credentials aggregator.Credentials
	PageSize    int
	// Concurrency bounds how many accounts are synchronized at once. Values
	// below 2 keep the sequential behavior.
	Concurrency int
}

type Orchestrator struct {
	cfg      Config
	remote   Remote
	store    Store
	emitter  cascade.Emitter
	importer *Importer
	updater  *AccountUpdater
	logger   *zap.Logger
	metrics  *Metrics
	now      func() time.Time
	ids      *ulidSource
	locks    *accountLocks
	afterRun func(ctx context.Context, summary models.RunSummary)
}

type Option func(*Orchestrator)

func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

func WithMetrics(m *Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// WithAfterRun registers a hook called after every completed run, before the
// auto-match trigger is emitted.
func WithAfterRun(fn func(ctx context.Context, summary models.RunSummary)) Option {
	return func(o *Orchestrator) { o.afterRun = fn }
}

// New wires a sync pipeline. emitter may be nil, in which case no auto-match
// trigger is sent.
func New(cfg Config, remote Remote, store Store, emitter cascade.Emitter, logger *zap.Logger, opts ...Option) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := &Orchestrator{
		cfg:     cfg,
		remote:  remote,
		store:   store,
		emitter: emitter,
		logger:  logger,
		now:     time.Now,
		ids:     newULIDSource(),
		locks:   newAccountLocks(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.importer = NewImporter(remote, store, cfg.PageSize, o.metrics, logger)
	o.updater = NewAccountUpdater(store, o.now, logger)
	return o
}

// Run synchronizes the accounts in scope. It returns an error only for failures
// that stop the whole run: invalid configuration, a rejected token request, or
// an account set that cannot be resolved. Per-account failures are reported in
// the summary.
func (o *Orchestrator) Run(ctx context.Context, scope Scope) (models.RunSummary, error) {
	startedAt := o.now().UTC()
	runID := o.ids.next(startedAt)
	logger := o.logger.With(zap.String("run_id", runID))

	if scope.All() {
		logger.Info("sync run started")
	} else {
		logger.Info("sync run started", zap.String("account_id", scope.AccountID))
	}

	if err := aggregator.ValidateCredentials(o.cfg.Credentials); err != nil {
		o.metrics.runFinished("config_error", o.now().Sub(startedAt))
		logger.Error("aggregator configuration invalid", zap.Error(err))
		return models.RunSummary{}, err
	}

	token, err := o.remote.AcquireToken(ctx)
	if err != nil {
		o.metrics.runFinished("auth_error", o.now().Sub(startedAt))
		logger.Error("aggregator authentication failed", zap.Error(err))
		return models.RunSummary{}, fmt.Errorf("acquiring aggregator token: %w", err)
	}

	accounts, err := o.resolve(ctx, scope)
	if err != nil {
		o.metrics.runFinished("error", o.now().Sub(startedAt))
		logger.Error("resolving accounts failed", zap.Error(err))
		return models.RunSummary{}, err
	}

	outcomes := o.syncAll(ctx, logger, token, accounts)

	finishedAt := o.now().UTC()
	summary := models.NewRunSummary(runID, startedAt, finishedAt, outcomes)
	o.metrics.recordSummary(summary)
	o.metrics.runFinished("success", finishedAt.Sub(startedAt))

	logger.Info("sync run finished",
		zap.Int("accounts", len(accounts)),
		zap.Int("accounts_synced", summary.AccountsSynced),
		zap.Int("new_transactions", summary.TotalNewTransactions),
		zap.Duration("duration", finishedAt.Sub(startedAt)))

	if o.afterRun != nil {
		o.afterRun(ctx, summary)
	}
	if summary.TotalNewTransactions > 0 {
		o.cascade(ctx, logger, summary)
	}
	return summary, nil
}

func (o *Orchestrator) resolve(ctx context.Context, scope Scope) ([]models.BankAccount, error) {
	if scope.All() {
		accounts, err := o.store.ListAccounts(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing accounts: %w", err)
		}
		return accounts, nil
	}

	account, err := o.store.GetAccount(ctx, scope.AccountID)
	if err != nil {
		if errors.Is(err, models.ErrAccountNotFound) {
			return nil, fmt.Errorf("account %s: %w", scope.AccountID, err)
		}
		return nil, fmt.Errorf("loading account %s: %w", scope.AccountID, err)
	}
	return []models.BankAccount{*account}, nil
}

// syncAll keeps outcomes in candidate order whatever the concurrency.
func (o *Orchestrator) syncAll(ctx context.Context, logger *zap.Logger, token string, accounts []models.BankAccount) []models.AccountOutcome {
	outcomes := make([]models.AccountOutcome, len(accounts))

	if o.cfg.Concurrency < 2 || len(accounts) < 2 {
		for i, acc := range accounts {
			outcomes[i] = o.syncAccount(ctx, logger, token, acc)
		}
		return outcomes
	}

	var g errgroup.Group
	g.SetLimit(o.cfg.Concurrency)
	for i, acc := range accounts {
		i, acc := i, acc
		g.Go(func() error {
			outcomes[i] = o.syncAccount(ctx, logger, token, acc)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

func (o *Orchestrator) syncAccount(ctx context.Context, logger *zap.Logger, token string, acc models.BankAccount) (outcome models.AccountOutcome) {
	logger = logger.With(zap.String("account_id", acc.ID))

	defer func() {
		if r := recover(); r != nil {
			logger.Error("account sync panicked", zap.Any("panic", r))
			outcome = models.Failed(acc, fmt.Errorf("account sync panicked: %v", r))
		}
	}()

	if !acc.Synchronizable() {
		logger.Info("account skipped", zap.String("reason", models.SkipNoConnection))
		return models.Skipped(acc, models.SkipNoConnection)
	}

	unlock := o.locks.lock(acc.ID)
	defer unlock()

	remoteAccounts, err := o.remote.ListAccounts(ctx, token, *acc.ConnectionID)
	if err != nil {
		logger.Warn("account sync failed", zap.Error(err))
		return models.Failed(acc, err)
	}
	if len(remoteAccounts) == 0 {
		logger.Info("account skipped", zap.String("reason", models.SkipNoRemoteAccount))
		return models.Skipped(acc, models.SkipNoRemoteAccount)
	}

	newTxns, updated := 0, 0
	for _, ra := range remoteAccounts {
		if err := o.updater.Update(ctx, acc, ra.Balance, ra.IBAN); err != nil {
			logger.Warn("account sync failed",
				zap.String("remote_account_id", ra.ID.String()),
				zap.Error(err))
			return models.Failed(acc, err)
		}
		updated++
		newTxns += o.importer.Import(ctx, token, ra.ID.String(), acc.ID)
	}

	logger.Info("account synced",
		zap.Int("accounts_updated", updated),
		zap.Int("new_transactions", newTxns))
	return models.Succeeded(acc, newTxns, updated)
}

// cascade emits one auto-match trigger. Failures are logged and never touch the
// summary.
func (o *Orchestrator) cascade(ctx context.Context, logger *zap.Logger, summary models.RunSummary) {
	if o.emitter == nil {
		return
	}

	var accountIDs []string
	for _, out := range summary.Outcomes {
		if out.Kind == models.OutcomeSuccess && out.NewTransactions > 0 {
			accountIDs = append(accountIDs, out.AccountID)
		}
	}

	at := o.now()
	event := cascade.NewTransactionsImported(o.ids.next(at), summary.RunID, summary.TotalNewTransactions, accountIDs, at)
	if err := o.emitter.Emit(ctx, event); err != nil {
		o.metrics.CascadeFailed()
		logger.Warn("auto-match trigger not sent",
			zap.String("event_id", event.EventID),
			zap.Error(err))
		return
	}
	logger.Debug("auto-match trigger queued", zap.String("event_id", event.EventID))
}
