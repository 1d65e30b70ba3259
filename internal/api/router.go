// Package api serves read-only JSON views of the category table and the
// session's wallet.
package api

import (
	"net/http"

	"github.com/erazemk/plasticwallet/internal/session"
	"github.com/erazemk/plasticwallet/internal/wallet"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(svc *wallet.Service, sessions *session.Manager) http.Handler {
	mux := http.NewServeMux()

	h := &WalletHandler{Service: svc, Sessions: sessions}

	mux.HandleFunc("GET /api/categories", h.CategoriesGet)
	mux.HandleFunc("GET /api/wallet", h.WalletGet)

	return sessions.Middleware(mux)
}
