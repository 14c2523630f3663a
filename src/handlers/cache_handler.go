package handlers

import (
	cache "banksync-server/src/db"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func ClearCache(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "cache_name")
		if err := cache.ClearCache(name); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Info("cache cleared", zap.String("cache", name))
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "cache": name})
	}
}
