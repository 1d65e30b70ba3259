package model

import "time"

// WasteItem is one submitted piece of plastic waste. Items are append-only:
// once stored they are never updated or removed.
type WasteItem struct {
	ItemID        string    `json:"item_id"`
	UserEmail     string    `json:"user_email"`
	Category      string    `json:"category"`
	ImageFilename string    `json:"image_filename"`
	ThumbFilename string    `json:"thumb_filename,omitempty"`
	QRFilename    string    `json:"qr_filename"`
	Points        int       `json:"points"`
	CreatedAt     time.Time `json:"created_at"`
}

// QRPayloadSeparator joins the fields encoded into an item's QR code.
const QRPayloadSeparator = "|"

// QRPayload returns the text encoded into the item's QR code. Values are not
// escaped, so a field containing the separator cannot be decoded unambiguously.
func (i WasteItem) QRPayload() string {
	return i.Category + QRPayloadSeparator + i.ItemID + QRPayloadSeparator + i.UserEmail
}

// SumPoints returns the total points of the given items.
func SumPoints(items []WasteItem) int {
	total := 0
	for _, it := range items {
		total += it.Points
	}
	return total
}
