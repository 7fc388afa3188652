package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/senyabanana/tender-lifecycle/internal/utils"

	"github.com/rs/zerolog"
)

// Pinger - хранилище, доступность которого проверяет /api/ping.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewPingHandler обрабатывает GET запрос к /api/ping
func NewPingHandler(db Pinger, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("database ping failed")
			utils.SendErrorResponse(w, http.StatusServiceUnavailable, "server not ready")
			return
		}

		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		if _, err := fmt.Fprint(w, "ok"); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("failed to write response")
		}
	}
}
