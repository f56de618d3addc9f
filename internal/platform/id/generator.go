package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct {
	prefix string
	size   int
}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{size: 16}
}

// NewPrefixedGenerator yields ids like "season-3f9c...". The random part
// is size bytes, hex encoded.
func NewPrefixedGenerator(prefix string, size int) *RandomGenerator {
	if size < 4 {
		size = 4
	}
	return &RandomGenerator{prefix: strings.TrimSuffix(strings.TrimSpace(prefix), "-"), size: size}
}

func (g *RandomGenerator) NewID() (string, error) {
	size := g.size
	if size < 1 {
		size = 16
	}
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	raw := hex.EncodeToString(buf)
	if g.prefix == "" {
		return raw, nil
	}
	return g.prefix + "-" + raw, nil
}
