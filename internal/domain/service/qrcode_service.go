package service

import "github.com/google/uuid"

// QRCodeService generates machine-readable order references, used at
// handover (cash-on-delivery pickup or courier scan).
type QRCodeService interface {
	// GenerateOrderQR renders a PNG QR code encoding the order reference.
	GenerateOrderQR(orderID uuid.UUID) ([]byte, error)

	// ParseOrderQR decodes scanned QR payload back into an order ID.
	ParseOrderQR(qrData string) (uuid.UUID, error)
}
