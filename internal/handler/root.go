package handler

import (
	"context"
	"net/http"

	"github.com/AdamBeresnev/tournament-registration/internal/httputil"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

func Welcome(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the Mini-Tournament System API",
	})
}

// Health reports ok only while the store answers a ping.
func Health(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			httputil.ServiceUnavailable(w, "database unavailable", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
