package web

import (
	"net/http"

	"github.com/erazemk/plasticwallet/internal/session"
	"github.com/erazemk/plasticwallet/internal/wallet"
	webembed "github.com/erazemk/plasticwallet/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(svc *wallet.Service, sessions *session.Manager, maxUploadBytes int64) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Wallet:         svc,
		Sessions:       sessions,
		Templates:      templates,
		MaxUploadBytes: maxUploadBytes,
	}

	static, err := webembed.Static()
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	// Static assets and stored media.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", mediaHeaders(http.FileServer(http.Dir(svc.Media.UploadDir)))))
	mux.Handle("GET /qr/", http.StripPrefix("/qr/", mediaHeaders(http.FileServer(http.Dir(svc.Media.QRDir)))))

	mux.HandleFunc("GET /{$}", s.RegisterPage)
	mux.HandleFunc("POST /{$}", s.RegisterSubmit)
	mux.HandleFunc("POST /logout", s.Logout)

	mux.HandleFunc("GET /categories", s.CategoriesPage)
	mux.HandleFunc("POST /categories", s.CategoriesSubmit)

	mux.HandleFunc("GET /wallet", s.WalletPage)

	mux.HandleFunc("GET /healthz", s.Health)

	return sessions.Middleware(mux), nil
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	if err := s.Wallet.Items.Ping(r.Context()); err != nil {
		http.Error(w, "item store unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}
