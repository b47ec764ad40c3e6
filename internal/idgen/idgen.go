// Package idgen generates document identifiers shaped like the ones a hosted
// document database assigns: fixed length, alphanumeric.
package idgen

import (
	"fmt"

	"github.com/google/uuid"
)

// DefaultLength is the length of auto-generated document ids.
const DefaultLength = 20

// MaxLength caps configurable id length.
const MaxLength = 128

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// maxUnbiased is the largest multiple of len(alphabet) that fits in a byte.
const maxUnbiased = 256 - 256%len(alphabet)

// Generator produces random alphanumeric ids from UUIDv4 entropy.
type Generator struct {
	length int
}

// New creates a generator. length <= 0 selects DefaultLength.
func New(length int) (*Generator, error) {
	if length <= 0 {
		length = DefaultLength
	}
	if length > MaxLength {
		return nil, fmt.Errorf("id length %d exceeds max %d", length, MaxLength)
	}
	return &Generator{length: length}, nil
}

// Length returns the id length.
func (g *Generator) Length() int { return g.length }

// NewID returns a fresh id.
func (g *Generator) NewID() (string, error) {
	buf := make([]byte, 0, g.length)
	for len(buf) < g.length {
		u, err := uuid.NewRandom()
		if err != nil {
			return "", fmt.Errorf("generate id: %w", err)
		}
		for i, b := range u {
			if len(buf) == g.length {
				break
			}
			// Bytes 6 and 8 carry the version and variant bits.
			if i == 6 || i == 8 || int(b) >= maxUnbiased {
				continue
			}
			buf = append(buf, alphabet[int(b)%len(alphabet)])
		}
	}
	return string(buf), nil
}
