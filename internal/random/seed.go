// Package random provides the injectable uniform source used by every
// stochastic draw in the simulation (event firing, inflation and
// unemployment noise), plus seed generation helpers.
//
// Nothing in the simulation touches the global math/rand generator.
// A run is fully reproducible from its seed.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
