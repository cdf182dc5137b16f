package zkp

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/ecc"
	fr "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	kzgbls "github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/scs"
)

// Bounds cap the circuit shapes an SRS can index: maximum constraint count,
// variable count and non-zero-term count.
type Bounds struct {
	NbConstraints int
	NbVariables   int
	NbNonZero     int
}

func (b Bounds) size() uint64 {
	sizeSystem := b.NbConstraints + b.NbVariables
	if b.NbNonZero > sizeSystem {
		sizeSystem = b.NbNonZero
	}
	// kzg needs the next power of two plus 3 extra powers of tau
	return ecc.NextPowerOfTwo(uint64(sizeSystem)) + 3
}

// SRS is the universal structured reference string. It is produced once from
// secure randomness, is immutable afterwards, and bounds the size of the
// circuits that can be indexed against it.
type SRS struct {
	canonical *kzgbls.SRS
}

// UniversalSetup generates an SRS large enough for the given bounds. The
// toxic waste is drawn from rng and discarded; rng must be a
// cryptographically secure stream (see hwrand).
func UniversalSetup(b Bounds, rng io.Reader) (*SRS, error) {
	if b.NbConstraints <= 0 || b.NbVariables <= 0 {
		return nil, fmt.Errorf("%w: non-positive bounds %+v", ErrSetupFailed, b)
	}

	tau, err := rand.Int(rng, fr.Modulus())
	if err != nil {
		return nil, fmt.Errorf("%w: sampling toxic waste: %v", ErrSetupFailed, err)
	}
	srs, err := kzgbls.NewSRS(b.size(), tau)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSetupFailed, err)
	}
	return &SRS{canonical: srs}, nil
}

// ProvingKey is the prover half of an index. It is immutable and reusable
// across many proofs of the same circuit shape.
type ProvingKey struct {
	ccs constraint.ConstraintSystem
	pk  plonk.ProvingKey
}

// VerifyingKey is the verifier half of an index.
type VerifyingKey struct {
	vk plonk.VerifyingKey
}

// ConstraintSystem exposes the compiled circuit shape.
func (pk *ProvingKey) ConstraintSystem() constraint.ConstraintSystem { return pk.ccs }

// Index derives a (pk, vk) pair from the SRS and a placeholder circuit. Only
// the circuit shape matters here; values, if present, are ignored. Fails with
// ErrIndexingFailed when the compiled shape exceeds the SRS bounds.
func Index(srs *SRS, circuit *LinearCircuit) (*ProvingKey, *VerifyingKey, error) {
	ccs, err := frontend.Compile(ecc.BLS12_381.ScalarField(), scs.NewBuilder, circuit)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: compiling circuit: %v", ErrIndexingFailed, err)
	}

	lagrange, err := srs.lagrange(ccs)
	if err != nil {
		return nil, nil, err
	}
	pk, vk, err := plonk.Setup(ccs, srs.canonical, lagrange)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrIndexingFailed, err)
	}
	return &ProvingKey{ccs: ccs, pk: pk}, &VerifyingKey{vk: vk}, nil
}

// lagrange converts the canonical SRS to Lagrange form for the circuit's
// evaluation domain.
func (s *SRS) lagrange(ccs constraint.ConstraintSystem) (*kzgbls.SRS, error) {
	sizeSystem := ccs.GetNbPublicVariables() + ccs.GetNbConstraints()
	domain := int(ecc.NextPowerOfTwo(uint64(sizeSystem)))
	if domain+3 > len(s.canonical.Pk.G1) {
		return nil, fmt.Errorf("%w: circuit needs %d srs points, srs holds %d",
			ErrIndexingFailed, domain+3, len(s.canonical.Pk.G1))
	}

	lagrange := &kzgbls.SRS{Vk: s.canonical.Vk}
	g1, err := kzgbls.ToLagrangeG1(s.canonical.Pk.G1[:domain])
	if err != nil {
		return nil, fmt.Errorf("%w: lagrange conversion: %v", ErrIndexingFailed, err)
	}
	lagrange.Pk.G1 = g1
	return lagrange, nil
}
