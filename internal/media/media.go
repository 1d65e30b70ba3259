// Package media stores uploaded photos, thumbnails and QR images on disk.
package media

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ThumbDir is the uploads subdirectory holding thumbnails.
const ThumbDir = "thumbs"

// Store writes media files under two root directories.
type Store struct {
	UploadDir string
	QRDir     string
}

// New returns a Store rooted at dataDir/uploads and dataDir/qr.
func New(dataDir string) *Store {
	return &Store{
		UploadDir: filepath.Join(dataDir, "uploads"),
		QRDir:     filepath.Join(dataDir, "qr"),
	}
}

// EnsureDirs creates the media directories if they don't exist.
func (s *Store) EnsureDirs() error {
	for _, dir := range []string{s.UploadDir, filepath.Join(s.UploadDir, ThumbDir), s.QRDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

// NewID returns a random 32-character hex identifier.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// SavePhoto stores data under a random name that keeps only the extension of
// originalName, and returns the stored filename. The extension is not checked.
func (s *Store) SavePhoto(data []byte, originalName string) (string, error) {
	name := NewID() + filepath.Ext(originalName)
	if err := os.WriteFile(filepath.Join(s.UploadDir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("saving photo: %w", err)
	}
	return name, nil
}

// SaveThumbnail stores a JPEG thumbnail for photoName and returns its path
// relative to the uploads directory.
func (s *Store) SaveThumbnail(photoName string, data []byte) (string, error) {
	base := strings.TrimSuffix(photoName, filepath.Ext(photoName))
	rel := path.Join(ThumbDir, base+".jpg")
	if err := os.WriteFile(filepath.Join(s.UploadDir, filepath.FromSlash(rel)), data, 0o644); err != nil {
		return "", fmt.Errorf("saving thumbnail: %w", err)
	}
	return rel, nil
}

// SaveQR stores a PNG QR image named after itemID and returns the filename.
func (s *Store) SaveQR(itemID string, data []byte) (string, error) {
	name := itemID + ".png"
	if err := os.WriteFile(filepath.Join(s.QRDir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("saving QR code: %w", err)
	}
	return name, nil
}
