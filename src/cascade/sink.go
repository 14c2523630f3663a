package cascade

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	DriverNone  = "none"
	DriverHTTP  = "http"
	DriverRedis = "redis"
	DriverKafka = "kafka"
)

type Options struct {
	Driver        string
	MatcherURL    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisChannel  string
	KafkaBrokers  []string
	KafkaTopic    string
	Timeout       time.Duration
}

// LogSink only records the trigger. It backs the "none" driver.
type LogSink struct {
	logger *zap.Logger
}

func (s LogSink) Emit(_ context.Context, event TransactionsImported) error {
	s.logger.Info("auto-match trigger (no sink configured)",
		zap.String("event_id", event.EventID),
		zap.String("run_id", event.RunID),
		zap.Int("count", event.Count))
	return nil
}

func (s LogSink) Close() error { return nil }

// NewSink builds the sink selected by opts.Driver.
func NewSink(opts Options, logger *zap.Logger) (Sink, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", DriverNone:
		return LogSink{logger: logger}, nil
	case DriverHTTP:
		if opts.MatcherURL == "" {
			return nil, fmt.Errorf("cascade driver %q requires a matcher URL", DriverHTTP)
		}
		return NewHTTPTrigger(opts.MatcherURL, opts.Timeout), nil
	case DriverRedis:
		if opts.RedisAddr == "" || opts.RedisChannel == "" {
			return nil, fmt.Errorf("cascade driver %q requires an address and a channel", DriverRedis)
		}
		client := redis.NewClient(&redis.Options{
			Addr:         opts.RedisAddr,
			Password:     opts.RedisPassword,
			DB:           opts.RedisDB,
			MaxRetries:   3,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		return NewRedisPublisher(client, opts.RedisChannel), nil
	case DriverKafka:
		if len(opts.KafkaBrokers) == 0 || opts.KafkaTopic == "" {
			return nil, fmt.Errorf("cascade driver %q requires brokers and a topic", DriverKafka)
		}
		return NewKafkaPublisher(opts.KafkaBrokers, opts.KafkaTopic, logger), nil
	default:
		return nil, fmt.Errorf("unknown cascade driver %q", opts.Driver)
	}
}
