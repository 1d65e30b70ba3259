// Package imaging renders QR codes and photo thumbnails.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"

	"github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ThumbDimension is the maximum width or height of a thumbnail.
const ThumbDimension = 320

// JPEGQuality is the compression quality for thumbnail output.
const JPEGQuality = 80

// QRSize is the edge length in pixels of generated QR images.
const QRSize = 290

// MaxPixels bounds width*height of images Thumbnail will decode.
const MaxPixels = 40_000_000

// ErrNotImage is returned by Thumbnail for data it cannot decode.
var ErrNotImage = errors.New("not a decodable image")

// decodable lists the sniffed MIME types Thumbnail attempts to decode.
var decodable = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Thumbnail decodes data, downscales it to ThumbDimension and re-encodes it
// as JPEG. Uploads are stored as-is regardless; thumbnails are only a display
// aid, so callers treat ErrNotImage as "no thumbnail".
func Thumbnail(data []byte) ([]byte, error) {
	// Sniff actual MIME type from bytes (not trusting client headers).
	detected := http.DetectContentType(data)
	if !decodable[detected] {
		return nil, fmt.Errorf("%w: %s", ErrNotImage, detected)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds pixel limit", ErrNotImage, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}

	img = downscale(img, ThumbDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// QRCode encodes payload as a PNG QR code with medium error correction.
func QRCode(payload string) ([]byte, error) {
	data, err := qrcode.Encode(payload, qrcode.Medium, QRSize)
	if err != nil {
		return nil, fmt.Errorf("encoding QR code: %w", err)
	}
	return data, nil
}

// downscale resizes the image so neither dimension exceeds maxDim.
// Uses high-quality Catmull-Rom interpolation.
// Returns the original image if already within bounds.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := w, h
	if w > h {
		newW = maxDim
		newH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		newH = maxDim
		newW = int(float64(w) * float64(maxDim) / float64(h))
	}

	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func init() {
	image.RegisterFormat("jpeg", "\xff\xd8", jpeg.Decode, jpeg.DecodeConfig)
	image.RegisterFormat("png", "\x89PNG", png.Decode, png.DecodeConfig)
}
