package zkp

import (
	"bytes"
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/frontend"
)

// Prove produces a proof for a fully-assigned circuit. A placeholder or
// partially-assigned instance fails with ErrAssignmentMissing before the
// backend runs; default values are never substituted.
//
// rng keeps parity with backends that consume external prover randomness; the
// PlonK transcript is deterministic and gnark draws its blinding internally.
func Prove(pk *ProvingKey, circuit *LinearCircuit, rng io.Reader) (plonk.Proof, error) {
	if err := circuit.missing(); err != nil {
		return nil, err
	}

	witness, err := frontend.NewWitness(circuit, ecc.BLS12_381.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("%w: building witness: %v", ErrProvingFailed, err)
	}
	proof, err := plonk.Prove(pk.ccs, pk.pk, witness)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvingFailed, err)
	}
	return proof, nil
}

// MarshalProof serializes a proof canonically. The length is deterministic for
// a fixed circuit shape.
func MarshalProof(proof plonk.Proof) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalProof reads back a serialized proof. Tampered encodings fail here
// when a curve point no longer decodes; tampering that survives decoding is
// caught by Verify.
func UnmarshalProof(data []byte) (plonk.Proof, error) {
	proof := plonk.NewProof(ecc.BLS12_381)
	if _, err := proof.ReadFrom(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return proof, nil
}
