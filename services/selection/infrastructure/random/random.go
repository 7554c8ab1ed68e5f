// Package random provides the Source implementations used by the sampling engine.
package random

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mathrand "math/rand/v2"
	"sync"

	"github.com/mamecholeye-lab/Rmam/services/selection/domain/services"
)

const (
	KindCrypto = "crypto"
	KindSeeded = "seeded"
)

// Crypto reads from the operating system CSPRNG. Safe for concurrent use.
type Crypto struct{}

// Uint32 returns four bytes of crypto/rand output. crypto/rand.Read does not
// return an error on supported platforms.
func (Crypto) Uint32() uint32 {
	var b [4]byte
	_, _ = rand.Read(b[:])
	return binary.LittleEndian.Uint32(b[:])
}

// Seeded is a reproducible PCG stream guarded by a mutex.
type Seeded struct {
	mu  sync.Mutex
	rng *mathrand.Rand
}

// NewSeeded returns a Seeded source. Equal seeds give equal streams.
func NewSeeded(seed uint64) *Seeded {
	return &Seeded{rng: mathrand.New(mathrand.NewPCG(seed, seed^0x5851f42d4c957f2d))}
}

// Uint32 returns the next value of the stream.
func (s *Seeded) Uint32() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Uint32()
}

// New builds the source named by kind.
func New(kind string, seed uint64) (services.Source, error) {
	switch kind {
	case "", KindCrypto:
		return Crypto{}, nil
	case KindSeeded:
		return NewSeeded(seed), nil
	default:
		return nil, fmt.Errorf("unknown random source %q", kind)
	}
}
