//go:build amd64

package hwrand

import "golang.org/x/sys/cpu"

// rdrand64 executes a single RDRAND instruction. ok is the carry flag: false
// means the hardware could not deliver a value.
func rdrand64() (v uint64, ok bool)

// RdRand draws seeds from the CPU RDRAND instruction.
type RdRand struct{}

// NewRdRand returns an RdRand source, or ErrEntropyUnavailable if the CPU does
// not expose the instruction.
func NewRdRand() (RdRand, error) {
	if !cpu.X86.HasRDRAND {
		return RdRand{}, ErrEntropyUnavailable
	}
	return RdRand{}, nil
}

// Seed draws SeedSize bytes of hardware entropy. A refused draw fails hard;
// callers may retry at their discretion.
func (RdRand) Seed() ([SeedSize]byte, error) {
	var seed [SeedSize]byte
	if !cpu.X86.HasRDRAND {
		return seed, ErrEntropyUnavailable
	}
	for i := 0; i < SeedSize; i += 8 {
		v, ok := rdrand64()
		if !ok {
			return [SeedSize]byte{}, ErrEntropyUnavailable
		}
		seed[i] = byte(v)
		seed[i+1] = byte(v >> 8)
		seed[i+2] = byte(v >> 16)
		seed[i+3] = byte(v >> 24)
		seed[i+4] = byte(v >> 32)
		seed[i+5] = byte(v >> 40)
		seed[i+6] = byte(v >> 48)
		seed[i+7] = byte(v >> 56)
	}
	return seed, nil
}
