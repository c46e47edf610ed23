package transport

import (
	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"
)

// EncodePNG renders the credential URI as a QR code PNG of size x size
// pixels. Medium error correction keeps the code readable on a worn or
// partially obscured printed card.
func EncodePNG(uri string, size int) ([]byte, error) {
	png, err := qrcode.Encode(uri, qrcode.Medium, size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render qr code")
	}

	return png, nil
}
