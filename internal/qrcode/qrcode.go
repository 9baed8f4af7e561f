package qrcode

import (
	"fmt"

	qr "github.com/skip2/go-qrcode"
)

// DefaultSize is the edge length in pixels used when size is not positive.
const DefaultSize = 256

// Generate creates a QR code PNG image linking to a session's join URL.
func Generate(url string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qr.Encode(url, qr.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qr encode %q: %w", url, err)
	}
	return png, nil
}
