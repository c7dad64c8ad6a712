// Package roundid generates sortable identifiers for blackjack rounds.
//
// IDs are UUIDv7 values encoded as 26-character Crockford base32 strings
// (the TypeID suffix form), so lexical order follows creation time.
package roundid

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/coder/quartz"
)

// Crockford's base32 alphabet, lower case
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the length of an encoded round ID
const Length = 26

// RandSource supplies random bytes for the non-timestamp bits
type RandSource interface {
	IntN(n int) int
}

// Generator creates round IDs from a clock and a source of randomness
type Generator struct {
	clock      quartz.Clock
	randSource RandSource
}

// NewGenerator creates a generator. A nil clock uses the real clock and a
// nil randSource uses crypto/rand.
func NewGenerator(clock quartz.Clock, randSource RandSource) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, randSource: randSource}
}

// Generate creates a new round ID
func (g *Generator) Generate() string {
	return encode(g.uuidV7())
}

func (g *Generator) uuidV7() [16]byte {
	var id [16]byte

	now := g.clock.Now().UnixMilli()
	for i := 0; i < 6; i++ {
		id[i] = byte(now >> (40 - 8*i))
	}

	if g.randSource != nil {
		for i := 6; i < 16; i++ {
			id[i] = byte(g.randSource.IntN(256))
		}
	} else if _, err := rand.Read(id[6:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}

	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // variant 10
	return id
}

// encode writes the 128 bits behind two zero pad bits, five bits per char
func encode(data [16]byte) string {
	bit := func(k int) byte {
		k -= 2
		if k < 0 {
			return 0
		}
		return (data[k/8] >> (7 - k%8)) & 1
	}

	var sb strings.Builder
	sb.Grow(Length)
	for i := 0; i < Length; i++ {
		var v byte
		for k := 5 * i; k < 5*i+5; k++ {
			v = v<<1 | bit(k)
		}
		sb.WriteByte(alphabet[v])
	}
	return sb.String()
}

// Validate checks that id is a well-formed round ID
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("round ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("round ID first character must be 0-7, got %c", id[0])
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
