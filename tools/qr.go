package tools

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	minQRSize = 64
	maxQRSize = 1024
)

// QRCodePNG renders text as a QR code PNG of size×size pixels. size is
// clamped to [64, 1024]; the default is 256.
func QRCodePNG(text string, size int) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("tools: qr text is empty")
	}
	if size == 0 {
		size = 256
	}
	if size < minQRSize {
		size = minQRSize
	}
	if size > maxQRSize {
		size = maxQRSize
	}
	png, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("tools: qr encode: %w", err)
	}
	return png, nil
}
