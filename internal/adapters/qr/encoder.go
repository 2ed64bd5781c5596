package qr

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"eventcheckin/internal/domain"
)

type pngEncoder struct {
	size int
}

// NewPNGEncoder returns a QRImageEncoder that renders payloads as PNG data
// URLs for embedding in email HTML. size is the image edge in pixels.
func NewPNGEncoder(size int) domain.QRImageEncoder {
	if size <= 0 {
		size = 300
	}
	return &pngEncoder{size: size}
}

func (e *pngEncoder) DataURL(payload string) (string, error) {
	png, err := qrcode.Encode(payload, qrcode.High, e.size)
	if err != nil {
		return "", fmt.Errorf("encode qr png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
