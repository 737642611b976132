package service

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// newSeed draws a match seed from crypto/rand. Everything after this
// point is derived from the seed, so a match is reproducible from it.
func newSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
