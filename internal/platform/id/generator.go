package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Generator creates opaque IDs for correlating requests and warmup runs in logs.
type Generator interface {
	NewID() (string, error)
}

const defaultSize = 8

type RandomGenerator struct {
	prefix string
}

// NewRandomGenerator returns IDs of the form prefix + 16 hex chars, e.g. "wu-1f2e3d4c5b6a7988".
func NewRandomGenerator(prefix string) *RandomGenerator {
	return &RandomGenerator{prefix: prefix}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, defaultSize)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return g.prefix + hex.EncodeToString(buf), nil
}
