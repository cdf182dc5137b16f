// Package zkp proves and verifies the linear relation y = a*x + b with a
// universal-setup SNARK, using gnark's PlonK backend over BLS12-381 with KZG
// polynomial commitments.
//
// The four backend phases are exposed as UniversalSetup, Index, Prove and
// Verify; Pipeline sequences them. All randomness is drawn from hwrand, never
// from the operating system.
package zkp

import (
	"math/big"

	fr "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Artifact file names inside a data directory.
var (
	srsFile     = "srs.bin"
	circuitFile = "circuit.bin"
	pkFile      = "pk.bin"
	vkFile      = "vk.bin"
)

// Params are the fixed coefficients of the relation y = a*x + b. They are
// known to both prover and verifier and are baked into the circuit as
// constants, not witness data.
type Params struct {
	A fr.Element
	B fr.Element
}

// NewParams builds relation parameters from small integers.
func NewParams(a, b uint64) Params {
	var p Params
	p.A.SetUint64(a)
	p.B.SetUint64(b)
	return p
}

// ParseParams builds relation parameters from decimal strings.
func ParseParams(a, b string) (Params, error) {
	var p Params
	if _, err := p.A.SetString(a); err != nil {
		return Params{}, err
	}
	if _, err := p.B.SetString(b); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Eval computes a*x + b in the scalar field.
func (p Params) Eval(x fr.Element) fr.Element {
	var y fr.Element
	y.Mul(&p.A, &x)
	y.Add(&y, &p.B)
	return y
}

func (p Params) aBig() *big.Int { return p.A.BigInt(new(big.Int)) }
func (p Params) bBig() *big.Int { return p.B.BigInt(new(big.Int)) }
