package licensecrypto

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// RandomSource supplies the unit and batch identifiers. Implementations must
// be safe for concurrent use when a Generator is shared.
type RandomSource interface {
	// Bits returns a value with only its low n bits possibly set.
	Bits(n int) (uint64, error)
}

// CryptoSource draws from crypto/rand.
type CryptoSource struct{}

func (CryptoSource) Bits(n int) (uint64, error) {
	if n <= 0 || n > 64 {
		return 0, fmt.Errorf("random source: invalid width %d", n)
	}
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(b[:])
	if n == 64 {
		return v, nil
	}
	return v & (1<<uint(n) - 1), nil
}
