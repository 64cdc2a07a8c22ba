package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/skip2/go-qrcode"
)

// QRService renders connection links as QR code images
type QRService struct {
	logger *logrus.Logger
}

// NewQRService creates a new QR code service
func NewQRService(logger *logrus.Logger) *QRService {
	return &QRService{logger: logger}
}

// GenerateQR encodes the given link as a PNG QR code
func (s *QRService) GenerateQR(link string) ([]byte, error) {
	s.logger.Debugf("Generating QR code for link of length %d", len(link))

	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	return png, nil
}
