package formdata

import (
	"math/rand/v2"
	"strings"
)

const (
	// BoundaryPrefix is the run of dashes every generated boundary starts with.
	// It follows curl's layout so generated bodies look familiar on the wire.
	BoundaryPrefix = "------------------------"

	// BoundaryRandomLength is the number of random characters after the prefix
	BoundaryRandomLength = 16

	// BoundaryLength is the total length of a generated boundary
	BoundaryLength = len(BoundaryPrefix) + BoundaryRandomLength
)

const boundaryAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// GenerateBoundary returns a fresh boundary: BoundaryPrefix followed by 16
// characters drawn uniformly from [0-9A-Za-z].
//
// The characters come from the process-wide math/rand/v2 source. Boundaries
// only need to avoid colliding with field content, so a cryptographic source
// is not required.
func GenerateBoundary() string {
	var b strings.Builder
	b.Grow(BoundaryLength)
	b.WriteString(BoundaryPrefix)
	for range BoundaryRandomLength {
		b.WriteByte(boundaryAlphabet[rand.IntN(len(boundaryAlphabet))])
	}
	return b.String()
}
