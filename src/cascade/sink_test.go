package cascade

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHTTPTrigger_Emit(t *testing.T) {
	var got TransactionsImported
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "e1", r.Header.Get("Idempotency-Key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	trigger := NewHTTPTrigger(srv.URL, time.Second)
	require.NoError(t, trigger.Emit(context.Background(), event("e1", 4)))
	assert.Equal(t, "run-e1", got.RunID)
	assert.Equal(t, 4, got.Count)
}

func TestHTTPTrigger_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := NewHTTPTrigger(srv.URL, time.Second).Emit(context.Background(), event("e1", 1))
	var cascadeErr *CascadeError
	require.ErrorAs(t, err, &cascadeErr)
	assert.Equal(t, "http", cascadeErr.Sink)
	assert.Equal(t, http.StatusServiceUnavailable, cascadeErr.StatusCode)
}

type fakeWriter struct {
	msgs   []kafka.Message
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Emit(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w}

	require.NoError(t, p.Emit(context.Background(), event("e1", 2)))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "run-e1", string(w.msgs[0].Key))

	var decoded TransactionsImported
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &decoded))
	assert.Equal(t, 2, decoded.Count)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestNewSink(t *testing.T) {
	logger := zap.NewNop()

	s, err := NewSink(Options{}, logger)
	require.NoError(t, err)
	assert.IsType(t, LogSink{}, s)
	assert.NoError(t, s.Emit(context.Background(), event("e1", 1)))

	s, err = NewSink(Options{Driver: "HTTP", MatcherURL: "http://matcher.local/auto-match"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &HTTPTrigger{}, s)

	s, err = NewSink(Options{Driver: DriverRedis, RedisAddr: "localhost:6379", RedisChannel: "bank.transactions"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &RedisPublisher{}, s)
	assert.NoError(t, s.Close())

	s, err = NewSink(Options{Driver: DriverKafka, KafkaBrokers: []string{"localhost:9092"}, KafkaTopic: "bank.transactions"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &KafkaPublisher{}, s)
	assert.NoError(t, s.Close())

	for _, opts := range []Options{
		{Driver: DriverHTTP},
		{Driver: DriverRedis, RedisAddr: "localhost:6379"},
		{Driver: DriverKafka, KafkaTopic: "t"},
		{Driver: "carrier-pigeon"},
	} {
		_, err := NewSink(opts, logger)
		assert.Error(t, err, opts.Driver)
	}
}
