package api

import (
	"banksync-server/src/models"
	"banksync-server/src/syncer"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("router-secret")

type countingRunner struct {
	calls int
}

func (c *countingRunner) Run(ctx context.Context, scope syncer.Scope) (models.RunSummary, error) {
	c.calls++
	now := time.Now()
	return models.NewRunSummary("run", now, now, nil), nil
}

type emptyAccounts struct{}

func (emptyAccounts) ListAccounts(ctx context.Context) ([]models.BankAccount, error) {
	return nil, nil
}

func (emptyAccounts) GetAccount(ctx context.Context, accountID string) (*models.BankAccount, error) {
	return nil, models.ErrAccountNotFound
}

func (emptyAccounts) ListTransactions(ctx context.Context, accountID string, limit int) ([]models.BankTransaction, error) {
	return nil, nil
}

func bearer(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return "Bearer " + s
}

func newRouter(runner *countingRunner) http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "banksync_test_total", Help: "test"}))
	return NewRouter(Deps{
		Runner:    runner,
		Accounts:  emptyAccounts{},
		JWTSecret: secret,
		Gatherer:  reg,
	})
}

func TestRouter_PublicRoutes(t *testing.T) {
	h := newRouter(&countingRunner{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "banksync_test_total"))
}

func TestRouter_SyncRequiresToken(t *testing.T) {
	runner := &countingRunner{}
	h := newRouter(runner)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sync", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, runner.calls)

	req := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	req.Header.Set("Authorization", bearer(t, jwt.MapClaims{"sub": "ops"}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, runner.calls)
}

func TestRouter_AdminRoutes(t *testing.T) {
	h := newRouter(&countingRunner{})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/cache/clear/all", nil)
	req.Header.Set("Authorization", bearer(t, jwt.MapClaims{"sub": "ops"}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/admin/cache/clear/all", nil)
	req.Header.Set("Authorization", bearer(t, jwt.MapClaims{"sub": "ops", "admin": true}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := newRouter(&countingRunner{})

	req := httptest.NewRequest(http.MethodOptions, "/api/sync", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
