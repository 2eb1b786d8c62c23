package qrcode

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestEncode_Modules(t *testing.T) {
	sym, err := Encode("hello", Medium)
	require.NoError(t, err)

	m := sym.Modules()
	assert.Equal(t, 1, sym.Version())
	assert.Equal(t, 21, m.Size())
	assert.Equal(t, "hello", sym.Content())

	// Finder pattern in the top-left corner: dark ring, light ring, dark core
	assert.True(t, m[0][0])
	assert.True(t, m[0][6])
	assert.False(t, m[1][1])
	assert.True(t, m[3][3])
	for _, row := range m {
		assert.Len(t, row, 21)
	}
}

func TestEncode_HigherLevelNeedsLargerSymbol(t *testing.T) {
	text := strings.Repeat("https://example.com/", 5)

	low, err := Encode(text, Low)
	require.NoError(t, err)
	highest, err := Encode(text, Highest)
	require.NoError(t, err)

	assert.Less(t, low.Modules().Size(), highest.Modules().Size())
}

func TestSymbol_Terminal(t *testing.T) {
	sym, err := Encode("hello", Low)
	require.NoError(t, err)

	out := sym.Terminal()
	assert.NotEmpty(t, out)
	assert.Greater(t, strings.Count(out, "\n"), 10)

	// Terminal rendering must not disturb the matrix
	assert.Equal(t, 21, sym.Modules().Size())
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"", color.NRGBA{0, 0, 0, 0xff}},
		{"black", color.NRGBA{0, 0, 0, 0xff}},
		{" Navy ", color.NRGBA{0, 0, 0x80, 0xff}},
		{"#f00", color.NRGBA{0xff, 0, 0, 0xff}},
		{"#00ff0080", color.NRGBA{0, 0xff, 0, 0x80}},
		{"#123456", color.NRGBA{0x12, 0x34, 0x56, 0xff}},
		{"transparent", color.NRGBA{0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, color.NRGBAModel.Convert(c).(color.NRGBA))
		})
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, in := range []string{"blurple", "#12", "#gggggg", "#1234567"} {
		_, err := ParseColor(in)
		assert.ErrorIs(t, err, ErrInvalidColor, in)
	}
}

func TestHexColor(t *testing.T) {
	assert.Equal(t, "#000000", HexColor(color.Black))
	assert.Equal(t, "#ffffff", HexColor(color.White))
	assert.Equal(t, "#123456", HexColor(color.NRGBA{0x12, 0x34, 0x56, 0xff}))
}

func testMatrix(t *testing.T) Matrix {
	sym, err := Encode("hello", Medium)
	require.NoError(t, err)
	return sym.Modules()
}

func TestPNGEncoder_WhiteBackground(t *testing.T) {
	m := testMatrix(t)
	opts := RenderOptions{BoxSize: 10, Border: 4, Fill: color.Black, Background: color.White}

	var buf bytes.Buffer
	require.NoError(t, PNGEncoder{}.Encode(&buf, m, opts))
	assert.Greater(t, buf.Len(), 100)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 290, img.Bounds().Dx())
	assert.Equal(t, 290, img.Bounds().Dy())

	assert.Equal(t, color.NRGBA{0xff, 0xff, 0xff, 0xff}, nrgbaAt(img, 0, 0))
	// Centre of the first finder module
	assert.Equal(t, color.NRGBA{0, 0, 0, 0xff}, nrgbaAt(img, 45, 45))
	// Light ring inside the finder pattern
	assert.Equal(t, color.NRGBA{0xff, 0xff, 0xff, 0xff}, nrgbaAt(img, 55, 55))
}

func TestPNGEncoder_TransparentBackground(t *testing.T) {
	m := testMatrix(t)
	fill := color.NRGBA{0x12, 0x34, 0x56, 0xff}
	opts := RenderOptions{BoxSize: 4, Border: 2, Fill: fill}

	var buf bytes.Buffer
	require.NoError(t, PNGEncoder{}.Encode(&buf, m, opts))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, (21+4)*4, img.Bounds().Dx())

	assert.Equal(t, uint8(0), nrgbaAt(img, 0, 0).A)
	assert.Equal(t, fill, nrgbaAt(img, 9, 9))
}

func TestRasterize(t *testing.T) {
	m := testMatrix(t)
	img := Rasterize(m, RenderOptions{BoxSize: 2, Border: 1, Fill: color.Black, Background: color.White})

	assert.Equal(t, image.Rect(0, 0, 46, 46), img.Bounds())
	assert.Equal(t, color.NRGBA{0, 0, 0, 0xff}, nrgbaAt(img, 2, 2))
}

func rasterSVG(t *testing.T, data []byte) image.Image {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	require.NoError(t, err)

	w, h := int(icon.ViewBox.W), int(icon.ViewBox.H)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.SetTarget(0, 0, float64(w), float64(h))
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return img
}

func TestSVGEncoder_WhiteBackground(t *testing.T) {
	m := testMatrix(t)
	opts := RenderOptions{BoxSize: 10, Border: 4, Fill: color.Black, Background: color.White}

	var buf bytes.Buffer
	require.NoError(t, SVGEncoder{}.Encode(&buf, m, opts))
	out := buf.Bytes()

	assert.True(t, bytes.HasPrefix(out, []byte("<?xml")))
	assert.Contains(t, string(out[:200]), "<svg")
	assert.Contains(t, string(out), `width="290" height="290" viewBox="0 0 29 29"`)
	assert.Contains(t, string(out), `<rect x="0" y="0" width="29" height="29" fill="#ffffff"/>`)

	img := rasterSVG(t, out)
	assert.Equal(t, 29, img.Bounds().Dx())

	dark := nrgbaAt(img, 4, 4)
	assert.Greater(t, dark.A, uint8(0xf0))
	assert.Less(t, dark.R, uint8(0x10))

	light := nrgbaAt(img, 0, 0)
	assert.Greater(t, light.A, uint8(0xf0))
	assert.Greater(t, light.R, uint8(0xf0))
}

func TestSVGEncoder_TransparentBackground(t *testing.T) {
	m := testMatrix(t)
	opts := RenderOptions{BoxSize: 10, Border: 4, Fill: color.NRGBA{0xff, 0, 0, 0x80}}

	var buf bytes.Buffer
	require.NoError(t, SVGEncoder{}.Encode(&buf, m, opts))
	out := buf.String()

	assert.NotContains(t, out, "<rect")
	assert.Contains(t, out, `fill="#ff0000" fill-opacity="0.502"`)

	img := rasterSVG(t, buf.Bytes())
	assert.Equal(t, uint8(0), nrgbaAt(img, 0, 0).A)
}

func TestModulePath_MergesRuns(t *testing.T) {
	m := Matrix{
		{true, true, false, true},
		{false, false, false, false},
	}
	assert.Equal(t, "M1 1h2v1h-2zM4 1h1v1h-1z", modulePath(m, 1))
}

func TestEncoderForExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{"png", "png"},
		{".PNG", "png"},
		{"svg", "svg"},
		{".Svg", "svg"},
		{"jpg", "png"},
		{"", "png"},
	}
	for _, tt := range tests {
		enc := EncoderForExtension(tt.ext)
		assert.Equal(t, tt.want, enc.Ext(), tt.ext)
	}
	assert.Equal(t, "image/svg+xml", EncoderForExtension("svg").ContentType())
	assert.Equal(t, "image/png", EncoderForExtension("png").ContentType())
}
