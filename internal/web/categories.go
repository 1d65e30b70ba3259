package web

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/erazemk/plasticwallet/internal/model"
	"github.com/erazemk/plasticwallet/internal/session"
	"github.com/erazemk/plasticwallet/internal/wallet"
)

// CategoriesPage handles GET /categories.
func (s *Server) CategoriesPage(w http.ResponseWriter, r *http.Request) {
	id := session.FromContext(r.Context())
	if !id.Registered() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	s.Templates.Render(w, "categories.html", &struct {
		PageData
		Categories []model.Category
		MaxPoints  int
	}{
		PageData:   PageData{Title: "Add plastic", Identity: id, Flash: popFlash(w, r)},
		Categories: model.Categories(),
		MaxPoints:  model.MaxPoints,
	})
}

// CategoriesSubmit handles POST /categories.
func (s *Server) CategoriesSubmit(w http.ResponseWriter, r *http.Request) {
	id := session.FromContext(r.Context())
	if !id.Registered() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.MaxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			setFlash(w, FlashError, fmt.Sprintf("The photo is too large (limit %d MB).", s.MaxUploadBytes>>20))
			http.Redirect(w, r, "/categories", http.StatusSeeOther)
			return
		}
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}

	photo, err := readPhoto(r)
	if err != nil {
		slog.Error("failed to read uploaded photo", "error", err)
		http.Error(w, "failed to read upload", http.StatusBadRequest)
		return
	}

	category := r.FormValue("category")
	item, updated, err := s.Wallet.Submit(r.Context(), id, category, photo)

	var ve *wallet.ValidationError
	switch {
	case errors.Is(err, wallet.ErrNoIdentity):
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	case errors.As(err, &ve):
		slog.Warn("submission rejected", "email", id.Email, "category", category, "reason", ve.Field)
		setFlash(w, FlashError, ve.Message)
		http.Redirect(w, r, "/categories", http.StatusSeeOther)
		return
	case err != nil:
		slog.Error("failed to submit item", "email", id.Email, "category", category, "error", err)
		http.Error(w, "failed to store item", http.StatusInternalServerError)
		return
	}

	if err := s.Sessions.Save(w, updated); err != nil {
		slog.Error("failed to save session", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	slog.Info("item submitted", "email", id.Email, "item", item.ItemID, "category", category, "points", item.Points)
	setFlash(w, FlashSuccess, "Plastic added successfully! QR code generated.")
	http.Redirect(w, r, "/wallet", http.StatusSeeOther)
}

// readPhoto returns the uploaded photo, or nil if none was sent.
func readPhoto(r *http.Request) (*wallet.Photo, error) {
	file, header, err := r.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading photo: %w", err)
	}
	return &wallet.Photo{Filename: header.Filename, Data: data}, nil
}
