package order

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderID int) ([]byte, error)
}

// TrackingQRGenerator renders a QR code pointing at the order's tracking
// page on the dashboard.
type TrackingQRGenerator struct {
	BaseURL string
}

func (g TrackingQRGenerator) Generate(orderID int) ([]byte, error) {
	qrData := fmt.Sprintf("%s/dashboard/orders?order=%d", g.BaseURL, orderID)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
