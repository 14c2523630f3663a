package commands

import (
	"banksync-server/src/aggregator"
	"banksync-server/src/cascade"
	"banksync-server/src/config"
	database "banksync-server/src/db"
	db "banksync-server/src/db/sql"
	"banksync-server/src/models"
	"banksync-server/src/syncer"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// app holds the long-lived dependencies shared by the serve and sync commands.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	pool     *pgxpool.Pool
	store    *db.Store
	sink     cascade.Sink
	queue    *cascade.Queue
	registry *prometheus.Registry
	metrics  *syncer.Metrics
	syncer   *syncer.Orchestrator
}

func newLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	zcfg.Level = lvl
	return zcfg.Build()
}

func loadConfig() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	if err := cfg.RequireDatabase(); err != nil {
		return nil, err
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := database.InitCache(); err != nil {
		pool.Close()
		return nil, err
	}

	sink, err := cascade.NewSink(cascade.Options{
		Driver:        cfg.Cascade.Driver,
		MatcherURL:    cfg.Cascade.MatcherURL,
		RedisAddr:     cfg.Cascade.RedisAddr,
		RedisPassword: cfg.Cascade.RedisPassword,
		RedisDB:       cfg.Cascade.RedisDB,
		RedisChannel:  cfg.Cascade.RedisChannel,
		KafkaBrokers:  cfg.Cascade.KafkaBrokers,
		KafkaTopic:    cfg.Cascade.KafkaTopic,
		Timeout:       cfg.Aggregator.Timeout,
	}, logger)
	if err != nil {
		pool.Close()
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := syncer.NewMetrics(registry)

	queue := cascade.NewQueue(sink, cascade.DefaultQueueSize, cascade.DefaultEmitTimeout, logger,
		cascade.WithErrorHook(func(cascade.TransactionsImported, error) { metrics.CascadeFailed() }))

	creds := aggregator.Credentials{
		BaseURL:      cfg.Aggregator.BaseURL,
		ClientID:     cfg.Aggregator.ClientID,
		ClientSecret: cfg.Aggregator.ClientSecret,
	}
	client := aggregator.NewClient(creds, cfg.Aggregator.Timeout, logger)
	store := db.NewStore(pool)

	orch := syncer.New(syncer.Config{
		Credentials: creds,
		PageSize:    cfg.Sync.PageSize,
		Concurrency: cfg.Sync.Concurrency,
	}, client, store, queue, logger,
		syncer.WithMetrics(metrics),
		syncer.WithAfterRun(invalidateCaches),
	)

	return &app{
		cfg:      cfg,
		logger:   logger,
		pool:     pool,
		store:    store,
		sink:     sink,
		queue:    queue,
		registry: registry,
		metrics:  metrics,
		syncer:   orch,
	}, nil
}

// invalidateCaches drops read caches the run made stale.
func invalidateCaches(_ context.Context, summary models.RunSummary) {
	if summary.AccountsSynced > 0 {
		database.ClearAllAccountCaches()
	}
	if summary.TotalNewTransactions > 0 {
		database.ClearAllTransactionCaches()
	}
}

// Close drains queued auto-match triggers before releasing connections.
func (a *app) Close(ctx context.Context) {
	if err := a.queue.Close(ctx); err != nil {
		a.logger.Warn("cascade queue not drained", zap.Error(err))
	}
	if err := a.sink.Close(); err != nil {
		a.logger.Warn("closing cascade sink failed", zap.Error(err))
	}
	a.pool.Close()
	_ = a.logger.Sync()
}
