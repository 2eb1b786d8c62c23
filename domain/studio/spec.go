package studio

import (
	"fmt"
	"strings"

	"github.com/prasetyowira/qrstudio/infrastructure/qrcode"
)

// ErrorLevel is the QR error correction grade, one of L, M, Q or H.
type ErrorLevel string

const (
	ErrorLevelL ErrorLevel = "L"
	ErrorLevelM ErrorLevel = "M"
	ErrorLevelQ ErrorLevel = "Q"
	ErrorLevelH ErrorLevel = "H"
)

// ErrorLevels lists the grades from least to most redundant.
var ErrorLevels = []ErrorLevel{ErrorLevelL, ErrorLevelM, ErrorLevelQ, ErrorLevelH}

// ParseErrorLevel accepts a grade letter in either case.
func ParseErrorLevel(s string) (ErrorLevel, error) {
	l := ErrorLevel(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range ErrorLevels {
		if l == known {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownErrorLevel, s)
}

// Recovery maps the grade onto the encoder. Unknown grades encode as M.
func (l ErrorLevel) Recovery() qrcode.RecoveryLevel {
	switch l {
	case ErrorLevelL:
		return qrcode.Low
	case ErrorLevelQ:
		return qrcode.High
	case ErrorLevelH:
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// Accepted option ranges.
const (
	MinBoxSize = 2
	MaxBoxSize = 40
	MinBorder  = 1
	MaxBorder  = 16

	DefaultFillColor = "black"
)

// QRSpec holds everything needed to produce one QR image. It is rebuilt
// from front-end state for every action and never mutated afterwards.
type QRSpec struct {
	Data       string
	ErrorLevel ErrorLevel
	BoxSize    int
	Border     int
	FillColor  string
	Background BackgroundStrategy
}

func (s QRSpec) background() BackgroundStrategy {
	if s.Background == nil {
		return WhiteBackground{}
	}
	return s.Background
}

func (s QRSpec) fillColor() string {
	if strings.TrimSpace(s.FillColor) == "" {
		return DefaultFillColor
	}
	return s.FillColor
}

// Validate checks the spec before anything is encoded.
func (s QRSpec) Validate() error {
	if strings.TrimSpace(s.Data) == "" {
		return ErrEmptyText
	}
	if s.BoxSize < MinBoxSize || s.BoxSize > MaxBoxSize {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidBoxSize, s.BoxSize, MinBoxSize, MaxBoxSize)
	}
	if s.Border < MinBorder || s.Border > MaxBorder {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidBorder, s.Border, MinBorder, MaxBorder)
	}
	if _, err := qrcode.ParseColor(s.fillColor()); err != nil {
		return err
	}
	return nil
}

// Encode builds the QR symbol, choosing the smallest version that fits.
func (s QRSpec) Encode() (*qrcode.Symbol, error) {
	return qrcode.Encode(s.Data, s.ErrorLevel.Recovery())
}

// RenderOptions converts the spec into drawing parameters.
func (s QRSpec) RenderOptions() (qrcode.RenderOptions, error) {
	fill, err := qrcode.ParseColor(s.fillColor())
	if err != nil {
		return qrcode.RenderOptions{}, err
	}

	opts := qrcode.RenderOptions{
		BoxSize: s.BoxSize,
		Border:  s.Border,
		Fill:    fill,
	}
	if bg := s.background(); !bg.Transparent() {
		opts.Background = bg.BackColor()
	}
	return opts, nil
}

// Key identifies the rendered output of the spec for caching.
func (s QRSpec) Key() string {
	return fmt.Sprintf("%d|%d|%d|%s|%s|%s",
		int(s.ErrorLevel.Recovery()), s.BoxSize, s.Border,
		strings.ToLower(strings.TrimSpace(s.fillColor())), s.background().Name(), s.Data)
}

// String summarises the options, as shown on the studio console.
func (s QRSpec) String() string {
	return fmt.Sprintf("EC=%s, box=%d, border=%d, bg=%s", s.ErrorLevel, s.BoxSize, s.Border, s.background().Name())
}
