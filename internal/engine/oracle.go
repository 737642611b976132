package engine

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Oracle is the engine's only source of non-determinism.
//
// Rand returns a value in [min, max). Implementations must be deterministic in
// (seed, min, max, salt): the same tuple always yields the same value. The engine never draws
// twice with the same salt inside a game, so a pure function is enough.
type Oracle interface {
	Rand(min, max int, salt uint64) (int, error)
}

// SeedOracle hashes the seed together with the draw parameters.
type SeedOracle struct {
	seed uint64
}

func NewSeedOracle(seed uint64) SeedOracle { return SeedOracle{seed: seed} }

func (o SeedOracle) Seed() uint64 { return o.seed }

func (o SeedOracle) Rand(min, max int, salt uint64) (int, error) {
	if max <= min {
		return 0, fmt.Errorf("%w: [%d, %d)", ErrOracleRange, min, max)
	}
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[0:8], o.seed)
	binary.LittleEndian.PutUint64(buf[8:16], salt)
	binary.LittleEndian.PutUint64(buf[16:24], uint64(int64(min)))
	binary.LittleEndian.PutUint64(buf[24:32], uint64(int64(max)))
	h := xxhash.Sum64(buf[:])
	return min + int(h%uint64(max-min)), nil
}

// drawSalt packs the turn and the draw index within the turn.
func drawSalt(turn, draw int) uint64 {
	return uint64(turn)<<24 | uint64(draw)
}
