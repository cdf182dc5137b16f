package zkp

import (
	"testing"

	fr "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/require"

	"github.com/b-garbacz/zkp-merlin-sgx/zkp/hwrand"
)

var testEntropy = hwrand.FixedSource{0xde, 0xad, 0xbe, 0xef}

func testBounds() Bounds {
	return Bounds{NbConstraints: 2, NbVariables: 3, NbNonZero: 6}
}

func feUint64(v uint64) fr.Element {
	var e fr.Element
	e.SetUint64(v)
	return e
}

// indexed runs setup and index once for the canonical relation a=3, b=5.
func indexed(t *testing.T) (Params, *ProvingKey, *VerifyingKey) {
	t.Helper()
	params := NewParams(3, 5)

	rng, err := hwrand.New(testEntropy)
	require.NoError(t, err)
	srs, err := UniversalSetup(testBounds(), rng)
	require.NoError(t, err)

	pk, vk, err := Index(srs, params.Placeholder())
	require.NoError(t, err)
	return params, pk, vk
}

func TestPipelineEndToEnd(t *testing.T) {
	p := NewPipeline(NewParams(3, 5), testBounds(), WithEntropySource(testEntropy))

	ok, err := p.Run(feUint64(11), feUint64(38))
	require.NoError(t, err)
	require.True(t, ok, "y = 3*11 + 5 = 38 satisfies the relation")
	require.Equal(t, PhaseVerified, p.Phase())

	data, err := p.ProofBytes()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	tm := p.Timings()
	require.NotZero(t, tm.Setup)
	require.NotZero(t, tm.Index)
	require.NotZero(t, tm.Prove)
	require.NotZero(t, tm.Verify)
}

// A mismatched public input must be rejected with a false result, not an
// error: relation non-satisfaction is a valid outcome of the verify phase.
func TestVerifyWrongPublicInputIsFalseNotError(t *testing.T) {
	params, pk, vk := indexed(t)

	rng, err := hwrand.New(testEntropy)
	require.NoError(t, err)
	proof, err := Prove(pk, params.Assign(feUint64(11), feUint64(38)), rng)
	require.NoError(t, err)

	ok, err := Verify(vk, []fr.Element{feUint64(39)}, proof, rng)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = Verify(vk, []fr.Element{feUint64(38)}, proof, rng)
	require.NoError(t, err)
	require.True(t, ok)
}

// One (pk, vk) pair must serve many distinct valid assignments of the same
// relation.
func TestKeyReuseAcrossProofs(t *testing.T) {
	params, pk, vk := indexed(t)

	for _, x := range []uint64{0, 1, 2, 11, 1 << 40} {
		xe := feUint64(x)
		ye := params.Eval(xe)

		rng, err := hwrand.New(testEntropy)
		require.NoError(t, err)
		proof, err := Prove(pk, params.Assign(xe, ye), rng)
		require.NoError(t, err)

		ok, err := Verify(vk, []fr.Element{ye}, proof, rng)
		require.NoError(t, err)
		require.True(t, ok, "x=%d", x)
	}
}

// Proving with absent values must fail with ErrAssignmentMissing, never
// silently substitute defaults.
func TestProveMissingAssignment(t *testing.T) {
	params, pk, _ := indexed(t)

	rng, err := hwrand.New(testEntropy)
	require.NoError(t, err)

	_, err = Prove(pk, params.Placeholder(), rng)
	require.ErrorIs(t, err, ErrAssignmentMissing)

	// partially assigned: x present, derived value and public input absent
	partial := params.Placeholder()
	partial.X = 11
	_, err = Prove(pk, partial, rng)
	require.ErrorIs(t, err, ErrAssignmentMissing)
}

// Tampered proof bytes must never verify: either decoding rejects the bytes
// or the pairing check reports false.
func TestTamperedProofNeverVerifies(t *testing.T) {
	params, pk, vk := indexed(t)

	rng, err := hwrand.New(testEntropy)
	require.NoError(t, err)
	proof, err := Prove(pk, params.Assign(feUint64(11), feUint64(38)), rng)
	require.NoError(t, err)

	data, err := MarshalProof(proof)
	require.NoError(t, err)

	for _, idx := range []int{0, len(data) / 2, len(data) - 1} {
		tampered := make([]byte, len(data))
		copy(tampered, data)
		tampered[idx] ^= 0x01

		mangled, err := UnmarshalProof(tampered)
		if err != nil {
			continue // rejected at decode time
		}
		ok, err := Verify(vk, []fr.Element{feUint64(38)}, mangled, rng)
		require.NoError(t, err)
		require.False(t, ok, "bit flip at %d accepted", idx)
	}
}

func TestProofSerializationRoundTrip(t *testing.T) {
	params, pk, vk := indexed(t)

	rng, err := hwrand.New(testEntropy)
	require.NoError(t, err)
	proof, err := Prove(pk, params.Assign(feUint64(11), feUint64(38)), rng)
	require.NoError(t, err)

	data, err := MarshalProof(proof)
	require.NoError(t, err)
	restored, err := UnmarshalProof(data)
	require.NoError(t, err)

	ok, err := Verify(vk, []fr.Element{feUint64(38)}, restored, rng)
	require.NoError(t, err)
	require.True(t, ok)

	// proofs of a fixed circuit shape serialize to a fixed length
	proof2, err := Prove(pk, params.Assign(feUint64(2), feUint64(11)), rng)
	require.NoError(t, err)
	data2, err := MarshalProof(proof2)
	require.NoError(t, err)
	require.Equal(t, len(data), len(data2))
}

func TestPipelinePhaseOrder(t *testing.T) {
	params := NewParams(3, 5)

	p := NewPipeline(params, testBounds(), WithEntropySource(testEntropy))
	require.ErrorIs(t, p.Index(), ErrIndexingFailed)
	require.ErrorIs(t, p.Prove(feUint64(11), feUint64(38)), ErrProvingFailed)
	_, err := p.Verify(feUint64(38))
	require.ErrorIs(t, err, ErrVerificationFailed)

	require.NoError(t, p.Setup())
	require.ErrorIs(t, p.Setup(), ErrSetupFailed, "no phase is retried")
	require.NoError(t, p.Index())
	require.ErrorIs(t, p.Index(), ErrIndexingFailed)
	require.NoError(t, p.Prove(feUint64(11), feUint64(38)))

	ok, err := p.Verify(feUint64(38))
	require.NoError(t, err)
	require.True(t, ok)

	// verified is terminal
	_, err = p.Verify(feUint64(38))
	require.ErrorIs(t, err, ErrVerificationFailed)
}

func TestSetupBoundsTooSmallForCircuit(t *testing.T) {
	params := NewParams(3, 5)

	rng, err := hwrand.New(testEntropy)
	require.NoError(t, err)

	_, err = UniversalSetup(Bounds{NbConstraints: 0, NbVariables: 0}, rng)
	require.ErrorIs(t, err, ErrSetupFailed)

	// an SRS sized for a single-wire system cannot index this circuit
	srs, err := UniversalSetup(Bounds{NbConstraints: 1, NbVariables: 1}, rng)
	require.NoError(t, err)
	_, _, err = Index(srs, params.Placeholder())
	require.ErrorIs(t, err, ErrIndexingFailed)
}

func TestEntropyFailureAbortsSetup(t *testing.T) {
	p := NewPipeline(NewParams(3, 5), testBounds(), WithEntropySource(failingSource{}))
	err := p.Setup()
	require.ErrorIs(t, err, ErrSetupFailed)
	require.ErrorIs(t, err, hwrand.ErrEntropyUnavailable)
	require.Equal(t, PhaseNotStarted, p.Phase())
}

type failingSource struct{}

func (failingSource) Seed() ([hwrand.SeedSize]byte, error) {
	return [hwrand.SeedSize]byte{}, hwrand.ErrEntropyUnavailable
}
