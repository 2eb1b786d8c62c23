package qrcode

import (
	"github.com/skip2/go-qrcode"
)

// RecoveryLevel is the error correction level handed to the encoder.
type RecoveryLevel = qrcode.RecoveryLevel

// Recovery levels, from 7% to 30% recoverable codewords.
const (
	Low     RecoveryLevel = qrcode.Low
	Medium  RecoveryLevel = qrcode.Medium
	High    RecoveryLevel = qrcode.High
	Highest RecoveryLevel = qrcode.Highest
)

// Matrix is a QR symbol without its quiet zone. Matrix[y][x] is true for a dark module.
type Matrix [][]bool

// Size returns the number of modules per side.
func (m Matrix) Size() int {
	return len(m)
}

// Symbol is an encoded QR code. The version is chosen automatically
// from the content length and recovery level.
type Symbol struct {
	qr *qrcode.QRCode
}

// Encode builds a symbol for content at the given recovery level.
func Encode(content string, level RecoveryLevel) (*Symbol, error) {
	qr, err := qrcode.New(content, level)
	if err != nil {
		return nil, err
	}
	return &Symbol{qr: qr}, nil
}

// Content returns the encoded data.
func (s *Symbol) Content() string {
	return s.qr.Content
}

// Version returns the QR version (1-40) picked by the encoder.
func (s *Symbol) Version() int {
	return s.qr.VersionNumber
}

// Modules returns the module matrix without any quiet zone.
func (s *Symbol) Modules() Matrix {
	s.qr.DisableBorder = true
	bitmap := s.qr.Bitmap()

	m := make(Matrix, len(bitmap))
	for y, row := range bitmap {
		m[y] = append([]bool(nil), row...)
	}
	return m
}

// Terminal renders the symbol with its standard quiet zone using Unicode
// half blocks, two module rows per text line.
func (s *Symbol) Terminal() string {
	s.qr.DisableBorder = false
	return s.qr.ToSmallString(false)
}
