package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ErrUnknownColor is returned for color values that match no accepted format
var ErrUnknownColor = errors.New("unknown color")

// ParseColor converts a skin color value into a color. Accepted values are
// a greyscale number (0-255), a CSS color name, #rgb, #rrggbb, rgb(r,g,b),
// rgba(r,g,b,a) and their percentage forms.
func ParseColor(v any) (color.NRGBA, error) {
	switch c := v.(type) {
	case float64:
		return grey(c)
	case int:
		return grey(float64(c))
	case json.Number:
		f, err := c.Float64()
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%v: %w", c, ErrUnknownColor)
		}
		return grey(f)
	case string:
		return parseColorString(c)
	}
	return color.NRGBA{}, fmt.Errorf("%v: %w", v, ErrUnknownColor)
}

func grey(f float64) (color.NRGBA, error) {
	if f < 0 || f > 255 {
		return color.NRGBA{}, fmt.Errorf("grey %v out of range: %w", f, ErrUnknownColor)
	}
	g := uint8(math.Round(f))
	return color.NRGBA{g, g, g, 255}, nil
}

func parseColorString(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)

	switch {
	case lower == "":
		return color.NRGBA{}, fmt.Errorf("empty: %w", ErrUnknownColor)
	case strings.HasPrefix(lower, "#"):
		c, err := colorful.Hex(lower)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%q: %w", s, ErrUnknownColor)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{r, g, b, 255}, nil
	case strings.HasPrefix(lower, "rgba(") || strings.HasPrefix(lower, "rgb("):
		return parseFunctional(lower)
	}

	if f, err := strconv.ParseFloat(lower, 64); err == nil {
		return grey(f)
	}
	if c, ok := colornames.Map[lower]; ok {
		return color.NRGBA{c.R, c.G, c.B, c.A}, nil
	}
	return color.NRGBA{}, fmt.Errorf("%q: %w", s, ErrUnknownColor)
}

// parseFunctional handles rgb(...) and rgba(...)
func parseFunctional(s string) (color.NRGBA, error) {
	open := strings.IndexByte(s, '(')
	if !strings.HasSuffix(s, ")") {
		return color.NRGBA{}, fmt.Errorf("%q: %w", s, ErrUnknownColor)
	}
	fn := s[:open]
	parts := strings.Split(s[open+1:len(s)-1], ",")

	want := 3
	if fn == "rgba" {
		want = 4
	}
	if len(parts) != want {
		return color.NRGBA{}, fmt.Errorf("%q has %d components: %w", s, len(parts), ErrUnknownColor)
	}

	var ch [3]float64
	for i := range ch {
		v, err := channel(parts[i])
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%q: %w", s, err)
		}
		ch[i] = v
	}
	r, g, b := colorful.Color{R: ch[0], G: ch[1], B: ch[2]}.RGB255()
	out := color.NRGBA{r, g, b, 255}
	if want == 4 {
		a, err := alpha(parts[3])
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%q: %w", s, err)
		}
		out.A = a
	}
	return out, nil
}

// channel parses an integer 0-255 or a percentage into 0-1
func channel(s string) (float64, error) {
	s = strings.TrimSpace(s)
	div := 255.0
	if strings.HasSuffix(s, "%") {
		s = strings.TrimSuffix(s, "%")
		div = 100
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrUnknownColor
	}
	f /= div
	if f < 0 || f > 1 {
		return 0, fmt.Errorf("channel %v out of range: %w", f, ErrUnknownColor)
	}
	return f, nil
}

// alpha parses a 0-1 fraction or a percentage
func alpha(s string) (uint8, error) {
	s = strings.TrimSpace(s)
	div := 1.0
	if strings.HasSuffix(s, "%") {
		s = strings.TrimSuffix(s, "%")
		div = 100
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrUnknownColor
	}
	f /= div
	if f < 0 || f > 1 {
		return 0, fmt.Errorf("alpha %v out of range: %w", f, ErrUnknownColor)
	}
	return uint8(math.Round(f * 255)), nil
}

// splitColors splits a comma-separated color list, keeping the commas
// inside rgb(...) and rgba(...)
func splitColors(s string) []string {
	var out []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if last := strings.TrimSpace(s[start:]); last != "" || len(out) > 0 {
		out = append(out, last)
	}
	return out
}
