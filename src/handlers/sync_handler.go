package handlers

import (
	"banksync-server/src/models"
	"banksync-server/src/syncer"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SyncRunner interface {
	Run(ctx context.Context, scope syncer.Scope) (models.RunSummary, error)
}

// SyncAccounts runs a synchronization for every account, or for the one named by
// the {account_id} path parameter, the account_id query parameter or the
// JSON body, in that order.
func SyncAccounts(runner SyncRunner, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, err := requestedAccount(r)
		if err != nil {
			logger.Warn("invalid sync request", zap.Error(err))
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}

		scope := syncer.AllAccounts()
		if accountID != "" {
			scope = syncer.SingleAccount(accountID)
		}

		summary, err := runner.Run(r.Context(), scope)
		if err != nil {
			status := statusFor(err)
			if status >= http.StatusInternalServerError {
				logger.Error("sync run failed", zap.String("account_id", accountID), zap.Error(err))
			}
			writeError(w, status, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}

func requestedAccount(r *http.Request) (string, error) {
	if id := strings.TrimSpace(chi.URLParam(r, "account_id")); id != "" {
		return id, nil
	}
	if id := strings.TrimSpace(r.URL.Query().Get("account_id")); id != "" {
		return id, nil
	}
	if r.Body == nil {
		return "", nil
	}

	var req struct {
		AccountID string `json:"account_id"`
	}
	err := json.NewDecoder(r.Body).Decode(&req)
	if errors.Is(err, io.EOF) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(req.AccountID), nil
}
