// Package wallet implements registration, item submission and the wallet
// summary on top of the item repository and media store.
package wallet

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/erazemk/plasticwallet/internal/imaging"
	"github.com/erazemk/plasticwallet/internal/media"
	"github.com/erazemk/plasticwallet/internal/metrics"
	"github.com/erazemk/plasticwallet/internal/model"
	"github.com/erazemk/plasticwallet/internal/store"
)

// Service holds the dependencies shared by all operations.
type Service struct {
	Items   store.ItemStore
	Media   *media.Store
	Metrics *metrics.Metrics

	// Now defaults to time.Now.
	Now func() time.Time
}

// Photo is an uploaded photo.
type Photo struct {
	Filename string
	Data     []byte
}

// Entry is one wallet row.
type Entry struct {
	model.WasteItem
	Label string
	Stars string
}

// Summary is the wallet view of one identity.
type Summary struct {
	Identity model.Identity
	Entries  []Entry
}

// Register validates the contact fields and returns the identity to store in
// the session. An existing identity keeps its point total.
func (s *Service) Register(current *model.Identity, name, phone, email string) (model.Identity, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	email = strings.TrimSpace(email)

	if name == "" || phone == "" || email == "" {
		s.Metrics.Rejected("register")
		return model.Identity{}, ErrIncompleteRegistration
	}

	id := model.Identity{Name: name, Phone: phone, Email: email}
	if current != nil {
		id.TotalPoints = current.TotalPoints
	}
	s.Metrics.Registered()
	return id, nil
}

// Submit stores a photographed item for the identity and returns the new
// item together with the identity's updated total. Files written before a
// later step fails are left in place.
func (s *Service) Submit(ctx context.Context, id *model.Identity, category string, photo *Photo) (model.WasteItem, model.Identity, error) {
	if !id.Registered() {
		return model.WasteItem{}, model.Identity{}, ErrNoIdentity
	}
	if !model.ValidCategory(category) {
		s.Metrics.Rejected("categories")
		return model.WasteItem{}, *id, ErrInvalidCategory
	}
	if photo == nil || photo.Filename == "" || len(photo.Data) == 0 {
		s.Metrics.Rejected("categories")
		return model.WasteItem{}, *id, ErrMissingPhoto
	}

	itemID := media.NewID()

	imageName, err := s.Media.SavePhoto(photo.Data, photo.Filename)
	if err != nil {
		return model.WasteItem{}, *id, &StorageError{Op: "save photo", Err: err}
	}

	var thumbName string
	if thumb, err := imaging.Thumbnail(photo.Data); err == nil {
		thumbName, err = s.Media.SaveThumbnail(imageName, thumb)
		if err != nil {
			slog.Warn("failed to save thumbnail", "photo", imageName, "error", err)
		}
	} else if !errors.Is(err, imaging.ErrNotImage) {
		slog.Warn("failed to create thumbnail", "photo", imageName, "error", err)
	}

	item := model.WasteItem{
		ItemID:        itemID,
		UserEmail:     id.Email,
		Category:      category,
		ImageFilename: imageName,
		ThumbFilename: thumbName,
		Points:        model.CategoryPoints(category),
		CreatedAt:     s.now(),
	}

	qr, err := imaging.QRCode(item.QRPayload())
	if err != nil {
		return model.WasteItem{}, *id, &StorageError{Op: "generate QR code", Err: err}
	}
	item.QRFilename, err = s.Media.SaveQR(itemID, qr)
	if err != nil {
		return model.WasteItem{}, *id, &StorageError{Op: "save QR code", Err: err}
	}

	if err := s.Items.Append(ctx, item); err != nil {
		return model.WasteItem{}, *id, &StorageError{Op: "store item", Err: err}
	}

	updated := *id
	updated.TotalPoints += item.Points
	s.Metrics.Submitted(category, item.Points)
	return item, updated, nil
}

// Summary collects the identity's items in submission order and recomputes
// its total from them, replacing whatever total the session carried.
func (s *Service) Summary(ctx context.Context, id *model.Identity) (Summary, error) {
	if !id.Registered() {
		return Summary{}, ErrNoIdentity
	}

	items, err := s.Items.Query(ctx, store.ByEmail(id.Email))
	if err != nil {
		return Summary{}, &StorageError{Op: "list items", Err: err}
	}

	sum := Summary{Identity: *id, Entries: make([]Entry, 0, len(items))}
	sum.Identity.TotalPoints = model.SumPoints(items)
	for _, item := range items {
		sum.Entries = append(sum.Entries, Entry{
			WasteItem: item,
			Label:     model.CategoryLabel(item.Category),
			Stars:     model.Stars(item.Points, model.MaxPoints),
		})
	}
	return sum, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
