// Package hwrand sources randomness without touching the operating system.
//
// Inside an SGX enclave /dev/urandom and friends are OS-mediated and therefore
// untrusted; the only acceptable entropy is the CPU hardware generator
// (RDRAND). A 32-byte hardware seed is expanded into a ChaCha20 keystream,
// which is a cryptographically secure stream accepted anywhere the proving
// backend expects an io.Reader of random bytes.
package hwrand

import (
	"crypto/rand"
	"errors"
	"math/big"

	"golang.org/x/crypto/chacha20"
)

// SeedSize is the number of hardware entropy bytes used to key the stream.
const SeedSize = 32

// ErrEntropyUnavailable is returned when the CPU hardware generator is not
// present or reports a fault. There is no fallback to an OS source.
var ErrEntropyUnavailable = errors.New("hwrand: hardware entropy unavailable")

// Source yields fixed-size seeds from some entropy capability.
//
// There is exactly one production implementation (RdRand) and one
// deterministic implementation for tests (FixedSource).
type Source interface {
	Seed() ([SeedSize]byte, error)
}

// FixedSource replays the same seed on every draw. Tests only.
type FixedSource [SeedSize]byte

func (s FixedSource) Seed() ([SeedSize]byte, error) { return s, nil }

// Rng expands a seed into a deterministic ChaCha20 keystream. It implements
// io.Reader and is safe to hand to the proving backend as a CSPRNG. It is not
// safe for concurrent use; each pipeline phase owns its own instance.
type Rng struct {
	stream *chacha20.Cipher
}

// FromSeed returns an Rng whose output is fully determined by seed.
func FromSeed(seed [SeedSize]byte) *Rng {
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(seed[:], nonce[:])
	if err != nil {
		// key and nonce sizes are correct by construction
		panic(err)
	}
	return &Rng{stream: c}
}

// New draws a fresh seed from src and returns the expanded stream. Every call
// consumes new entropy; seeds are never reused across instances.
func New(src Source) (*Rng, error) {
	seed, err := src.Seed()
	if err != nil {
		return nil, err
	}
	return FromSeed(seed), nil
}

// Read fills p with keystream bytes. It never fails.
func (r *Rng) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	r.stream.XORKeyStream(p, p)
	return len(p), nil
}

// Int samples a uniform value in [0, max). Used to draw scalar field elements
// by passing the field modulus.
func (r *Rng) Int(max *big.Int) (*big.Int, error) {
	return rand.Int(r, max)
}
