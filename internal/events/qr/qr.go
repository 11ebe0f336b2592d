package qr

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// ShareQRGenerator renders PNG QR codes for event share links.
type ShareQRGenerator struct {
	baseURL string
}

func NewShareQRGenerator(baseURL string) *ShareQRGenerator {
	return &ShareQRGenerator{baseURL: strings.TrimRight(baseURL, "/")}
}

// ShareURL is the public link encoded for the event.
func (g *ShareQRGenerator) ShareURL(eventID string) string {
	return fmt.Sprintf("%s/%s", g.baseURL, eventID)
}

// GenerateShareQR renders a 256px PNG QR of the event share URL.
func (g *ShareQRGenerator) GenerateShareQR(eventID string) ([]byte, error) {
	return qrcode.Encode(g.ShareURL(eventID), qrcode.Medium, 256)
}
