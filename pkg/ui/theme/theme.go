// Package theme provides the palette and spacing shared by vista widgets.
// Dark is the default: deep blacks, warm text, amber accents.
package theme

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Theme defines the complete visual language of the display.
type Theme struct {
	Name string

	// Core palette
	Background    color.RGBA // Primary canvas
	Surface       color.RGBA // Panels, dialogs
	SurfaceRaised color.RGBA // Buttons, higher elevation
	SurfaceDim    color.RGBA // Recessed areas, text boxes

	// Text hierarchy
	TextPrimary   color.RGBA
	TextSecondary color.RGBA
	TextMuted     color.RGBA // Hints, disabled widgets
	TextInverse   color.RGBA // Text on accent backgrounds

	// Accent colors
	Accent    color.RGBA // Primary action, focus
	AccentDim color.RGBA

	// Semantic colors
	Success color.RGBA
	Warning color.RGBA
	Error   color.RGBA
	Info    color.RGBA

	// UI elements
	Border      color.RGBA
	BorderFocus color.RGBA
	Selection   color.RGBA
	ScrollThumb color.RGBA
}

// DefaultTheme returns the dark theme.
func DefaultTheme() *Theme {
	return Dark()
}

// Dark returns the dark theme.
func Dark() *Theme {
	return &Theme{
		Name: "dark",

		// Core palette - deep blacks with subtle blue undertone
		Background:    Hex("#0c0c10"),
		Surface:       Hex("#16161c"),
		SurfaceRaised: Hex("#202028"),
		SurfaceDim:    Hex("#08080a"),

		// Text hierarchy - warm whites
		TextPrimary:   Hex("#f0eee8"),
		TextSecondary: Hex("#a09e96"),
		TextMuted:     Hex("#64625c"),
		TextInverse:   Hex("#0c0c10"),

		// Accent - warm amber/gold
		Accent:    Hex("#ffb74d"),
		AccentDim: Hex("#b4823c"),

		Success: Hex("#86efac"),
		Warning: Hex("#ff8a65"),
		Error:   Hex("#ff6e5a"),
		Info:    Hex("#4db6ac"),

		Border:      Hex("#32323c"),
		BorderFocus: Hex("#ffb74d"),
		Selection:   Hex("#3c3c50"),
		ScrollThumb: Hex("#64646e"),
	}
}

// Light returns the light theme.
func Light() *Theme {
	return &Theme{
		Name: "light",

		Background:    Hex("#f6f4ee"),
		Surface:       Hex("#ffffff"),
		SurfaceRaised: Hex("#e8e6df"),
		SurfaceDim:    Hex("#ecebe6"),

		TextPrimary:   Hex("#1c1b19"),
		TextSecondary: Hex("#4a4843"),
		TextMuted:     Hex("#8d8a82"),
		TextInverse:   Hex("#ffffff"),

		Accent:    Hex("#c26a00"),
		AccentDim: Hex("#e0a85c"),

		Success: Hex("#1f8a4c"),
		Warning: Hex("#c2410c"),
		Error:   Hex("#b91c1c"),
		Info:    Hex("#0f766e"),

		Border:      Hex("#c9c6bd"),
		BorderFocus: Hex("#c26a00"),
		Selection:   Hex("#f3d9b1"),
		ScrollThumb: Hex("#a8a59c"),
	}
}

// ByName returns the named theme.
func ByName(name string) (*Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "dark":
		return Dark(), nil
	case "light":
		return Light(), nil
	default:
		return nil, fmt.Errorf("unknown theme %q", name)
	}
}

// Hex parses a "#rrggbb" colour. Malformed input yields opaque black.
func Hex(s string) color.RGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return toRGBA(c)
}

// Blend mixes a towards b by t in [0,1], interpolating in Lab space.
func Blend(a, b color.RGBA, t float64) color.RGBA {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	ca, _ := colorful.MakeColor(opaque(a))
	cb, _ := colorful.MakeColor(opaque(b))
	return toRGBA(ca.BlendLab(cb, t).Clamped())
}

func opaque(c color.RGBA) color.RGBA {
	c.A = 0xff
	return c
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Layout defines standard spacing and dimensions in pixels.
var Layout = struct {
	PaddingXS int
	PaddingSM int
	PaddingMD int

	ButtonHeight  int
	TextBoxHeight int
	ScrollbarSize int
	BorderWidth   int
}{
	PaddingXS: 1,
	PaddingSM: 2,
	PaddingMD: 4,

	ButtonHeight:  17,
	TextBoxHeight: 17,
	ScrollbarSize: 4,
	BorderWidth:   1,
}
