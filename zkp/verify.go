package zkp

import (
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	fr "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/frontend"
)

// Verify checks a proof against the public inputs. The boolean result is the
// outcome of the check: an invalid proof yields (false, nil), never an error.
// ErrVerificationFailed is reserved for faults preparing the check, such as a
// malformed public-input vector.
//
// rng is accepted because some backends randomize (batched) verification;
// gnark's PlonK verifier is deterministic and does not consume it.
func Verify(vk *VerifyingKey, publicInputs []fr.Element, proof plonk.Proof, rng io.Reader) (bool, error) {
	if len(publicInputs) != 1 {
		return false, fmt.Errorf("%w: want 1 public input, got %d", ErrVerificationFailed, len(publicInputs))
	}

	assignment := &LinearCircuit{Y: publicInputs[0].BigInt(new(big.Int))}
	witness, err := frontend.NewWitness(assignment, ecc.BLS12_381.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return false, fmt.Errorf("%w: building public witness: %v", ErrVerificationFailed, err)
	}

	// the backend reports rejection through its error return; a rejection is
	// a negative result, not a fault
	if err := plonk.Verify(proof, vk.vk, witness); err != nil {
		return false, nil
	}
	return true, nil
}
