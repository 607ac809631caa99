package tokens

import (
	"math/rand"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

const fallbackKeyLen = 9

// KeyStrategy names colors extracted from nodes that carry no author name.
type KeyStrategy interface {
	// ColorKey derives a key for an anonymous color from its hex value, the
	// owning node ID, and the paint's position.
	ColorKey(hex, nodeID string, index int) string
}

// HashKeys is the default strategy: a content hash of the color and its
// position, so repeated runs over an unchanged tree produce identical keys.
type HashKeys struct{}

// ColorKey returns "color-" followed by 9 base-36 characters of the xxhash of
// hex|nodeID|index.
func (HashKeys) ColorKey(hex, nodeID string, index int) string {
	sum := xxhash.Sum64String(hex + "|" + nodeID + "|" + strconv.Itoa(index))
	return "color-" + base36(sum, fallbackKeyLen)
}

// RandomKeys reproduces the original tool's naming: a random 9-character
// base-36 suffix. Output is not stable across runs; prefer HashKeys anywhere
// reproducibility matters.
type RandomKeys struct{}

func (RandomKeys) ColorKey(string, string, int) string {
	return "color-" + base36(rand.Uint64(), fallbackKeyLen)
}

func base36(v uint64, width int) string {
	s := strconv.FormatUint(v, 36)
	for len(s) < width {
		s = "0" + s
	}
	return s[:width]
}
