package ticket

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/metinatakli/picture-palace-hub/internal/domain"
	"github.com/skip2/go-qrcode"
)

const DefaultSize = 256

// Payload is the text scanned at the entrance for an order.
func Payload(order *domain.Order) string {
	return fmt.Sprintf("PPH-ORDER:%s:%d", order.Reference, order.SeatQuantity)
}

// QRCode renders the order payload as a size x size PNG.
func QRCode(order *domain.Order, size int) ([]byte, error) {
	qr, err := qrcode.New(Payload(order), qrcode.Medium)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	err = png.Encode(buf, qr.Image(size))
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
