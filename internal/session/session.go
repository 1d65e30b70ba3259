// Package session stores the visitor's Identity in a signed cookie.
package session

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"

	"github.com/erazemk/plasticwallet/internal/model"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

// Expiry is how long a session stays valid after its last write.
const Expiry = 31 * 24 * time.Hour

// Claims are the JWT claims carried by the session cookie.
type Claims struct {
	model.Identity
	jwt.RegisteredClaims
}

// Manager signs and verifies session cookies.
type Manager struct {
	key    []byte
	secure bool
}

// NewManager derives the signing key from secret. Secure marks cookies as
// HTTPS-only.
func NewManager(secret string, secure bool) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("session secret is empty")
	}
	key := make([]byte, 32)
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte("plasticwallet session v1"))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("deriving session key: %w", err)
	}
	return &Manager{key: key, secure: secure}, nil
}

// Encode signs the identity into a token string.
func (m *Manager) Encode(id model.Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		Identity: id,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(Expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("signing session: %w", err)
	}
	return signed, nil
}

// Decode verifies a token string and returns the identity it carries.
func (m *Manager) Decode(tokenStr string) (*model.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing session: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid session")
	}

	id := claims.Identity
	return &id, nil
}

// Load reads the identity from the request cookie. A missing or invalid
// cookie yields nil without error; the visitor is simply unregistered.
func (m *Manager) Load(r *http.Request) *model.Identity {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	id, err := m.Decode(cookie.Value)
	if err != nil {
		return nil
	}
	return id
}

// Save writes the identity into the response cookie.
func (m *Manager) Save(w http.ResponseWriter, id model.Identity) error {
	token, err := m.Encode(id)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(Expiry.Seconds()),
	})
	return nil
}

// Clear expires the session cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity returns a context carrying id.
func WithIdentity(ctx context.Context, id *model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext returns the identity stored by WithIdentity, or nil.
func FromContext(ctx context.Context) *model.Identity {
	id, _ := ctx.Value(identityKey).(*model.Identity)
	return id
}

// Middleware loads the session identity into the request context. Requests
// without a valid session pass through with a nil identity.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := m.Load(r)
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}
