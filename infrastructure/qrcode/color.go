package qrcode

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/prasetyowira/qrstudio/constant"
	"golang.org/x/image/colornames"
)

// ErrInvalidColor is returned by ParseColor for unrecognised input.
var ErrInvalidColor = errors.New(constant.ErrInvalidColor)

// ParseColor accepts SVG 1.1 colour keywords ("black", "navy", ...),
// "transparent", and #rgb, #rgba, #rrggbb or #rrggbbaa hex. Empty input is black.
func ParseColor(s string) (color.Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "":
		return color.Black, nil
	case v == "transparent":
		return color.Transparent, nil
	case strings.HasPrefix(v, "#"):
		return parseHex(v[1:], s)
	}

	if c, ok := colornames.Map[v]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func parseHex(hex, raw string) (color.Color, error) {
	switch len(hex) {
	case 3, 4:
		// #rgb shorthand doubles each digit
		var expanded strings.Builder
		for _, r := range hex {
			expanded.WriteRune(r)
			expanded.WriteRune(r)
		}
		hex = expanded.String()
	case 6, 8:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, raw)
	}

	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, raw)
	}
	if len(hex) == 6 {
		n = n<<8 | 0xff
	}

	return color.NRGBA{
		R: uint8(n >> 24),
		G: uint8(n >> 16),
		B: uint8(n >> 8),
		A: uint8(n),
	}, nil
}

// HexColor formats c as #rrggbb, dropping alpha.
func HexColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// Opacity returns the alpha of c in [0, 1].
func Opacity(c color.Color) float64 {
	_, _, _, a := c.RGBA()
	return float64(a) / 0xffff
}
