package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erazemk/plasticwallet/internal/media"
	"github.com/erazemk/plasticwallet/internal/model"
	"github.com/erazemk/plasticwallet/internal/session"
	"github.com/erazemk/plasticwallet/internal/store"
	"github.com/erazemk/plasticwallet/internal/wallet"
)

const testSecret = "test-secret"

func setupTestServer(t *testing.T) (*httptest.Server, *wallet.Service, *session.Manager) {
	t.Helper()

	m := media.New(t.TempDir())
	if err := m.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}
	svc := &wallet.Service{Items: store.NewMemoryItems(), Media: m}
	sessions, err := session.NewManager(testSecret, false)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	server := httptest.NewServer(NewRouter(svc, sessions))
	t.Cleanup(server.Close)
	return server, svc, sessions
}

func sessionRequest(t *testing.T, sessions *session.Manager, url string, id model.Identity) *http.Request {
	t.Helper()
	token, err := sessions.Encode(id)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	return req
}

func TestCategoriesEndpoint(t *testing.T) {
	server, _, _ := setupTestServer(t)

	resp, err := http.Get(server.URL + "/api/categories")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body categoriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if body.MaxPoints != model.MaxPoints {
		t.Errorf("expected max_points %d, got %d", model.MaxPoints, body.MaxPoints)
	}
	if len(body.Categories) != len(model.Categories()) {
		t.Errorf("expected %d categories, got %d", len(model.Categories()), len(body.Categories))
	}
}

func TestWalletEndpointUnregistered(t *testing.T) {
	server, _, _ := setupTestServer(t)

	resp, err := http.Get(server.URL + "/api/wallet")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func TestWalletEndpoint(t *testing.T) {
	server, svc, sessions := setupTestServer(t)
	ctx := context.Background()

	id := model.Identity{Name: "A", Phone: "123", Email: "a@x.com"}
	item, _, err := svc.Submit(ctx, &id, model.CategoryPlasticCan, &wallet.Photo{Filename: "f.jpg", Data: []byte("x")})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// The session total is stale on purpose; the response recomputes it.
	req := sessionRequest(t, sessions, server.URL+"/api/wallet", id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body walletResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if body.TotalPoints != 9 {
		t.Errorf("expected total 9, got %d", body.TotalPoints)
	}
	if len(body.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(body.Items))
	}
	got := body.Items[0]
	if got.ItemID != item.ItemID {
		t.Errorf("expected item %s, got %s", item.ItemID, got.ItemID)
	}
	if got.QRURL != "/qr/"+item.ItemID+".png" {
		t.Errorf("unexpected qr_url %q", got.QRURL)
	}
	if got.Stars != "★★★★★★★★★" {
		t.Errorf("expected 9 stars, got %q", got.Stars)
	}

	var reissued *model.Identity
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			reissued, err = sessions.Decode(c.Value)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
		}
	}
	if reissued == nil {
		t.Fatal("expected session cookie to be re-issued")
	}
	if reissued.TotalPoints != 9 {
		t.Errorf("expected session total 9, got %d", reissued.TotalPoints)
	}
}
