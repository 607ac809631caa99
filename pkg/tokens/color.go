package tokens

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToHex converts normalized-float channels in [0,1] to a lowercase #rrggbb
// string. Each channel is rounded independently to the nearest integer in
// [0,255].
func ToHex(r, g, b float64) string {
	return fmt.Sprintf("#%02x%02x%02x", channelByte(r), channelByte(g), channelByte(b))
}

func channelByte(v float64) int {
	n := int(math.Round(v * 255))
	if n < 0 {
		n = 0
	}
	if n > 255 {
		n = 255
	}
	return n
}

// ToRGBFloat is the inverse of ToHex modulo rounding: for every valid
// 6-digit hex string h, ToHex(ToRGBFloat(h)) == strings.ToLower(h).
// The leading '#' is optional.
func ToRGBFloat(hex string) (RGB, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q: want 6 hex digits", hex)
	}

	var channels [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
		}
		channels[i] = float64(v) / 255
	}

	return RGB{R: channels[0], G: channels[1], B: channels[2]}, nil
}

// Slugify derives a stable lowercase identifier from a free-text author name:
// runs of non-alphanumeric characters collapse to a single hyphen, leading
// and trailing hyphens are trimmed.
func Slugify(name string) string {
	var sb strings.Builder
	pendingHyphen := false

	for _, r := range strings.ToLower(name) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingHyphen = sb.Len() > 0
			continue
		}
		if pendingHyphen {
			sb.WriteByte('-')
			pendingHyphen = false
		}
		sb.WriteRune(r)
	}

	return sb.String()
}
