package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/plasticwallet/internal/session"
	"github.com/erazemk/plasticwallet/internal/wallet"
)

// RegisterPage handles GET /.
func (s *Server) RegisterPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "home.html", &PageData{
		Title:    "Register",
		Identity: session.FromContext(r.Context()),
		Flash:    popFlash(w, r),
	})
}

// RegisterSubmit handles POST /.
func (s *Server) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := s.Wallet.Register(session.FromContext(r.Context()),
		r.FormValue("name"), r.FormValue("phone"), r.FormValue("email"))

	var ve *wallet.ValidationError
	if errors.As(err, &ve) {
		setFlash(w, FlashError, ve.Message)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		slog.Error("failed to register", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := s.Sessions.Save(w, id); err != nil {
		slog.Error("failed to save session", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	slog.Info("user registered", "email", id.Email)
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

// Logout handles POST /logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	s.Sessions.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
