package web

import (
	"io/fs"
	"testing"
)

func TestEmbeddedFiles(t *testing.T) {
	tfs, err := Templates()
	if err != nil {
		t.Fatalf("Templates: %v", err)
	}
	for _, name := range []string{"layout.html", "home.html", "categories.html", "wallet.html"} {
		if _, err := fs.Stat(tfs, name); err != nil {
			t.Errorf("missing template %s: %v", name, err)
		}
	}

	static, err := Static()
	if err != nil {
		t.Fatalf("Static: %v", err)
	}
	if _, err := fs.Stat(static, "style.css"); err != nil {
		t.Errorf("missing style.css: %v", err)
	}
}
