package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/plasticwallet/internal/session"
	"github.com/erazemk/plasticwallet/internal/wallet"
)

// WalletPage handles GET /wallet.
func (s *Server) WalletPage(w http.ResponseWriter, r *http.Request) {
	sum, err := s.Wallet.Summary(r.Context(), session.FromContext(r.Context()))
	if errors.Is(err, wallet.ErrNoIdentity) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		slog.Error("failed to load wallet", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	// Keep the session total in sync with the stored items.
	if err := s.Sessions.Save(w, sum.Identity); err != nil {
		slog.Error("failed to save session", "error", err)
	}

	s.Templates.Render(w, "wallet.html", &struct {
		PageData
		Entries []wallet.Entry
	}{
		PageData: PageData{Title: "Wallet", Identity: &sum.Identity, Flash: popFlash(w, r)},
		Entries:  sum.Entries,
	})
}
