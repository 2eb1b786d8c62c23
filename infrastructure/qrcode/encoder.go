package qrcode

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/fogleman/gg"
	"github.com/prasetyowira/qrstudio/constant"
)

// RenderOptions controls how a Matrix is drawn.
type RenderOptions struct {
	// BoxSize is the number of pixels per module.
	BoxSize int
	// Border is the quiet zone width in modules.
	Border int
	Fill   color.Color
	// Background nil or fully transparent leaves the canvas clear.
	Background color.Color
}

func (o RenderOptions) transparent() bool {
	return o.Background == nil || Opacity(o.Background) == 0
}

func (o RenderOptions) fill() color.Color {
	if o.Fill == nil {
		return color.Black
	}
	return o.Fill
}

// Side returns the output width and height in pixels for a matrix of n modules.
func (o RenderOptions) Side(n int) int {
	return (n + 2*o.Border) * o.BoxSize
}

// ImageEncoder writes a Matrix in one file format.
type ImageEncoder interface {
	Ext() string
	ContentType() string
	Encode(w io.Writer, m Matrix, opts RenderOptions) error
}

// PNGEncoder rasterises the matrix. Opaque backgrounds produce an RGB PNG,
// transparent ones an RGBA PNG.
type PNGEncoder struct{}

func (PNGEncoder) Ext() string         { return constant.FormatPNG }
func (PNGEncoder) ContentType() string { return constant.ContentTypePNG }

func (PNGEncoder) Encode(w io.Writer, m Matrix, opts RenderOptions) error {
	return rasterContext(m, opts).EncodePNG(w)
}

// Rasterize draws the matrix into an RGBA image.
func Rasterize(m Matrix, opts RenderOptions) image.Image {
	return rasterContext(m, opts).Image()
}

func rasterContext(m Matrix, opts RenderOptions) *gg.Context {
	side := opts.Side(m.Size())
	dc := gg.NewContext(side, side)

	if !opts.transparent() {
		dc.SetColor(opts.Background)
		dc.Clear()
	}

	box := float64(opts.BoxSize)
	for y, row := range m {
		for x, dark := range row {
			if dark {
				dc.DrawRectangle(
					float64(x+opts.Border)*box,
					float64(y+opts.Border)*box,
					box, box,
				)
			}
		}
	}
	dc.SetColor(opts.fill())
	dc.Fill()

	return dc
}

// SVGEncoder writes a standalone SVG document. The viewBox is in module
// units and width/height carry the pixel size implied by BoxSize.
type SVGEncoder struct{}

func (SVGEncoder) Ext() string         { return constant.FormatSVG }
func (SVGEncoder) ContentType() string { return constant.ContentTypeSVG }

func (SVGEncoder) Encode(w io.Writer, m Matrix, opts RenderOptions) error {
	bw := bufio.NewWriter(w)
	total := m.Size() + 2*opts.Border
	side := opts.Side(m.Size())

	fmt.Fprint(bw, `<?xml version="1.0" encoding="UTF-8"?>`+"\n")
	fmt.Fprintf(bw,
		`<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		side, side, total, total,
	)

	if !opts.transparent() {
		fmt.Fprintf(bw, `<rect x="0" y="0" width="%d" height="%d" fill="%s"%s/>`+"\n",
			total, total, HexColor(opts.Background), opacityAttr(opts.Background))
	}

	if d := modulePath(m, opts.Border); d != "" {
		fmt.Fprintf(bw, `<path fill="%s"%s d="%s"/>`+"\n", HexColor(opts.fill()), opacityAttr(opts.fill()), d)
	}

	fmt.Fprint(bw, "</svg>\n")
	return bw.Flush()
}

func opacityAttr(c color.Color) string {
	if a := Opacity(c); a < 1 {
		return fmt.Sprintf(` fill-opacity="%.3f"`, a)
	}
	return ""
}

// modulePath merges horizontal runs of dark modules into one rectangle each.
func modulePath(m Matrix, border int) string {
	var d strings.Builder
	for y, row := range m {
		for x := 0; x < len(row); {
			if !row[x] {
				x++
				continue
			}
			start := x
			for x < len(row) && row[x] {
				x++
			}
			fmt.Fprintf(&d, "M%d %dh%dv1h-%dz", start+border, y+border, x-start, x-start)
		}
	}
	return d.String()
}

// EncoderForExtension picks the encoder for a file extension such as
// ".svg" or "PNG". Unknown extensions fall back to PNG.
func EncoderForExtension(ext string) ImageEncoder {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), ".")) {
	case constant.FormatSVG:
		return SVGEncoder{}
	default:
		return PNGEncoder{}
	}
}
