package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/plasticwallet/internal/model"
	"github.com/erazemk/plasticwallet/internal/session"
	"github.com/erazemk/plasticwallet/internal/wallet"
)

// WalletHandler handles category and wallet endpoints.
type WalletHandler struct {
	Service  *wallet.Service
	Sessions *session.Manager
}

type categoriesResponse struct {
	MaxPoints  int              `json:"max_points"`
	Categories []model.Category `json:"categories"`
}

type walletItem struct {
	model.WasteItem
	Label    string `json:"label"`
	Stars    string `json:"stars"`
	PhotoURL string `json:"photo_url"`
	QRURL    string `json:"qr_url"`
}

type walletResponse struct {
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	TotalPoints int          `json:"total_points"`
	Items       []walletItem `json:"items"`
}

// CategoriesGet handles GET /api/categories.
func (h *WalletHandler) CategoriesGet(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, categoriesResponse{
		MaxPoints:  model.MaxPoints,
		Categories: model.Categories(),
	})
}

// WalletGet handles GET /api/wallet. The recomputed total is written back to
// the session cookie, as the wallet page does.
func (h *WalletHandler) WalletGet(w http.ResponseWriter, r *http.Request) {
	sum, err := h.Service.Summary(r.Context(), session.FromContext(r.Context()))
	if errors.Is(err, wallet.ErrNoIdentity) {
		jsonError(w, http.StatusUnauthorized, "not registered")
		return
	}
	if err != nil {
		slog.Error("failed to load wallet", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := h.Sessions.Save(w, sum.Identity); err != nil {
		slog.Error("failed to save session", "error", err)
	}

	resp := walletResponse{
		Name:        sum.Identity.Name,
		Email:       sum.Identity.Email,
		TotalPoints: sum.Identity.TotalPoints,
		Items:       make([]walletItem, 0, len(sum.Entries)),
	}
	for _, e := range sum.Entries {
		resp.Items = append(resp.Items, walletItem{
			WasteItem: e.WasteItem,
			Label:     e.Label,
			Stars:     e.Stars,
			PhotoURL:  "/uploads/" + e.ImageFilename,
			QRURL:     "/qr/" + e.QRFilename,
		})
	}
	jsonResponse(w, http.StatusOK, resp)
}
