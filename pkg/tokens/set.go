// Package tokens turns a Figma document tree into a design-token set:
// colors, typography, and spacing keyed by stable derived names, plus a
// keyword categorizer that groups colors into semantic palettes.
package tokens

import "time"

// RGB is the original normalized-float color triple a hex value was derived
// from.
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// ColorToken is a single extracted color. Hex is always derivable back to RGB
// within 1/255 rounding; opacity is tracked separately and never embedded in
// the hex string.
type ColorToken struct {
	Hex     string  `json:"hex"`
	RGB     RGB     `json:"rgb"`
	Opacity float64 `json:"opacity"`
	Key     string  `json:"key"`
	Name    string  `json:"name"`
}

// TypographyToken is a single extracted text style. Sizes are pixels, weight
// is the numeric font weight.
type TypographyToken struct {
	FontFamily string  `json:"fontFamily"`
	FontSize   float64 `json:"fontSize"`
	FontWeight float64 `json:"fontWeight"`
	LineHeight float64 `json:"lineHeight"`
	Key        string  `json:"key"`
	Name       string  `json:"name"`
}

// Metadata records when and from where a token set was produced.
type Metadata struct {
	Generated time.Time `json:"generated"`
	Source    string    `json:"source"`
	Version   int       `json:"version"`
}

// Set is one extraction run's complete output. A Set is built fresh on every
// run and never mutated afterwards; each run's snapshot supersedes the
// previous one on disk.
type Set struct {
	Colors     map[string]ColorToken      `json:"colors"`
	Typography map[string]TypographyToken `json:"typography"`
	Spacing    map[string]string          `json:"spacing"`
	Metadata   Metadata                   `json:"metadata"`
}

// NewSet returns an empty Set with all maps allocated.
func NewSet() *Set {
	return &Set{
		Colors:     make(map[string]ColorToken),
		Typography: make(map[string]TypographyToken),
		Spacing:    make(map[string]string),
	}
}
