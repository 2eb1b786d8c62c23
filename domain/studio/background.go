package studio

import (
	"fmt"
	"image/color"
	"strings"
)

// BackgroundStrategy decides what sits behind the light modules.
type BackgroundStrategy interface {
	Name() string
	BackColor() color.Color
	Transparent() bool
}

// WhiteBackground paints an opaque white canvas.
type WhiteBackground struct{}

func (WhiteBackground) Name() string           { return "White" }
func (WhiteBackground) BackColor() color.Color { return color.White }
func (WhiteBackground) Transparent() bool      { return false }

// TransparentBackground leaves the canvas clear. PNG output carries an alpha channel.
type TransparentBackground struct{}

func (TransparentBackground) Name() string           { return "Transparent" }
func (TransparentBackground) BackColor() color.Color { return color.Transparent }
func (TransparentBackground) Transparent() bool      { return true }

// BackgroundByName resolves "white" (or "") and "transparent", case-insensitively.
func BackgroundByName(name string) (BackgroundStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "white":
		return WhiteBackground{}, nil
	case "transparent":
		return TransparentBackground{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackground, name)
}
