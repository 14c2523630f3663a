package handlers

import (
	cache "banksync-server/src/db"
	"banksync-server/src/models"
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	defaultTransactionLimit = 100
	maxTransactionLimit     = 1000
)

type AccountReader interface {
	ListAccounts(ctx context.Context) ([]models.BankAccount, error)
	GetAccount(ctx context.Context, accountID string) (*models.BankAccount, error)
	ListTransactions(ctx context.Context, accountID string, limit int) ([]models.BankTransaction, error)
}

func GetAccounts(store AccountReader, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const cacheKey = "accounts:all"
		if cached, ok := cache.GetCache(cacheKey); ok {
			if accounts, ok := cached.([]models.BankAccount); ok {
				writeJSON(w, http.StatusOK, accounts)
				return
			}
		}

		accounts, err := store.ListAccounts(r.Context())
		if err != nil {
			logger.Error("listing accounts failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to list accounts")
			return
		}
		if accounts == nil {
			accounts = []models.BankAccount{}
		}
		cache.SetAccountCache(cacheKey, accounts)
		writeJSON(w, http.StatusOK, accounts)
	}
}

func GetAccount(store AccountReader, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := chi.URLParam(r, "account_id")
		cacheKey := "account:" + accountID
		if cached, ok := cache.GetCache(cacheKey); ok {
			if account, ok := cached.(models.BankAccount); ok {
				writeJSON(w, http.StatusOK, account)
				return
			}
		}

		account, err := store.GetAccount(r.Context(), accountID)
		if errors.Is(err, models.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, "account not found")
			return
		}
		if err != nil {
			logger.Error("loading account failed", zap.String("account_id", accountID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to load account")
			return
		}
		cache.SetAccountCache(cacheKey, *account)
		writeJSON(w, http.StatusOK, account)
	}
}

func GetAccountTransactions(store AccountReader, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := chi.URLParam(r, "account_id")

		limit := defaultTransactionLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > maxTransactionLimit {
				writeError(w, http.StatusBadRequest, "invalid limit")
				return
			}
			limit = n
		}

		cacheKey := "transactions:" + accountID + ":" + strconv.Itoa(limit)
		if cached, ok := cache.GetCache(cacheKey); ok {
			if txns, ok := cached.([]models.BankTransaction); ok {
				writeJSON(w, http.StatusOK, txns)
				return
			}
		}

		if _, err := store.GetAccount(r.Context(), accountID); err != nil {
			if errors.Is(err, models.ErrAccountNotFound) {
				writeError(w, http.StatusNotFound, "account not found")
				return
			}
			logger.Error("loading account failed", zap.String("account_id", accountID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to load account")
			return
		}

		txns, err := store.ListTransactions(r.Context(), accountID, limit)
		if err != nil {
			logger.Error("listing transactions failed", zap.String("account_id", accountID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to list transactions")
			return
		}
		if txns == nil {
			txns = []models.BankTransaction{}
		}
		cache.SetTransactionCache(cacheKey, txns)
		writeJSON(w, http.StatusOK, txns)
	}
}
