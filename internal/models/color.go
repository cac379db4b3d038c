package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ColorKind tags the variant held by a Color.
type ColorKind uint8

const (
	ColorNone ColorKind = iota
	ColorPreset
	ColorCustom
)

// PaletteEntry is one of the fixed preset swatches.
type PaletteEntry struct {
	Token string `json:"token"`
	Label string `json:"label"`
}

// Palette lists the preset tokens in picker order.
var Palette = []PaletteEntry{
	{Token: "todo", Label: "Amber"},
	{Token: "progress", Label: "Blue"},
	{Token: "done", Label: "Green"},
	{Token: "blue", Label: "Sky"},
	{Token: "purple", Label: "Purple"},
	{Token: "pink", Label: "Pink"},
	{Token: "orange", Label: "Orange"},
	{Token: "teal", Label: "Teal"},
}

// DefaultColor is used for columns created without a color.
var DefaultColor = CustomHex(0x3B82F6)

// Color is either a preset palette token or a custom 24-bit RGB value.
// Custom colors render in one canonical form (#RRGGBB, uppercase) so two
// colors compare equal with == exactly when they look the same.
type Color struct {
	kind  ColorKind
	token string
	rgb   uint32
}

// Preset returns the palette color for token.
func Preset(token string) (Color, error) {
	t := strings.ToLower(strings.TrimSpace(token))
	for _, p := range Palette {
		if p.Token == t {
			return Color{kind: ColorPreset, token: t}, nil
		}
	}
	return Color{}, validationf("unknown color token %q", token)
}

// CustomHex returns a custom color; bits above 24 are dropped.
func CustomHex(rgb uint32) Color {
	return Color{kind: ColorCustom, rgb: rgb & 0xFFFFFF}
}

// ParseColor accepts #RRGGBB, #RGB (any case) or a palette token.
func ParseColor(s string) (Color, error) {
	v := strings.TrimSpace(s)
	if !strings.HasPrefix(v, "#") {
		return Preset(v)
	}

	digits := v[1:]
	switch len(digits) {
	case 3:
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	case 6:
	default:
		return Color{}, validationf("malformed color %q", s)
	}
	n, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return Color{}, validationf("malformed color %q", s)
	}
	return CustomHex(uint32(n)), nil
}

// IsValidColor reports whether s is an accepted color encoding.
func IsValidColor(s string) bool {
	_, err := ParseColor(s)
	return err == nil
}

func (c Color) Kind() ColorKind { return c.kind }
func (c Color) IsZero() bool    { return c.kind == ColorNone }

// Token returns the palette token of a preset color.
func (c Color) Token() (string, bool) {
	return c.token, c.kind == ColorPreset
}

// RGB returns the value of a custom color.
func (c Color) RGB() (uint32, bool) {
	return c.rgb, c.kind == ColorCustom
}

func (c Color) String() string {
	switch c.kind {
	case ColorPreset:
		return c.token
	case ColorCustom:
		return fmt.Sprintf("#%06X", c.rgb)
	default:
		return ""
	}
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*c = Color{}
		return nil
	}
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
