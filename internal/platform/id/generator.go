package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const defaultByteLen = 8

// Generator creates opaque IDs used to correlate requests across log lines.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct {
	byteLen int
}

// NewRandomGenerator returns a generator of hex IDs built from byteLen random bytes.
func NewRandomGenerator(byteLen int) *RandomGenerator {
	if byteLen <= 0 {
		byteLen = defaultByteLen
	}
	return &RandomGenerator{byteLen: byteLen}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, g.byteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
