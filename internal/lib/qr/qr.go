package qr

import (
	"bytes"
	"image/png"

	"github.com/skip2/go-qrcode"
)

// EncodePNG renders the given content as a PNG QR image of size x size pixels.
func EncodePNG(content string, size int) ([]byte, error) {
	code, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, code.Image(size)); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
