//go:build !amd64

package hwrand

// RdRand draws seeds from the CPU RDRAND instruction. Not available on this
// architecture.
type RdRand struct{}

func NewRdRand() (RdRand, error) {
	return RdRand{}, ErrEntropyUnavailable
}

func (RdRand) Seed() ([SeedSize]byte, error) {
	return [SeedSize]byte{}, ErrEntropyUnavailable
}
