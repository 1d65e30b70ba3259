// Package web embeds the page templates and static assets.
package web

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed static templates
var content embed.FS

// Static returns the stylesheet tree served under /static/.
func Static() (fs.FS, error) {
	return sub("static")
}

// Templates returns the page templates, including layout.html.
func Templates() (fs.FS, error) {
	return sub("templates")
}

func sub(dir string) (fs.FS, error) {
	f, err := fs.Sub(content, dir)
	if err != nil {
		return nil, fmt.Errorf("opening embedded %s: %w", dir, err)
	}
	return f, nil
}
