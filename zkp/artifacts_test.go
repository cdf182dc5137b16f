package zkp

import (
	"path/filepath"
	"testing"

	fr "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/require"

	"github.com/b-garbacz/zkp-merlin-sgx/zkp/hwrand"
)

func TestArtifactRoundTrip(t *testing.T) {
	dir := t.TempDir()
	params := NewParams(3, 5)

	rng, err := hwrand.New(testEntropy)
	require.NoError(t, err)
	srs, err := UniversalSetup(testBounds(), rng)
	require.NoError(t, err)
	pk, vk, err := Index(srs, params.Placeholder())
	require.NoError(t, err)

	require.NoError(t, srs.Save(dir))
	require.NoError(t, pk.Save(dir))
	require.NoError(t, vk.Save(dir))

	loadedSRS, err := LoadSRS(dir)
	require.NoError(t, err)
	require.NotNil(t, loadedSRS)

	loadedPK, err := LoadProvingKey(dir)
	require.NoError(t, err)
	loadedVK, err := LoadVerifyingKey(dir)
	require.NoError(t, err)

	// proofs from reloaded keys must verify with the reloaded vk
	proof, err := Prove(loadedPK, params.Assign(feUint64(11), feUint64(38)), rng)
	require.NoError(t, err)

	proofPath := filepath.Join(dir, "proof.bin")
	require.NoError(t, SaveProof(proofPath, proof))
	loadedProof, err := LoadProof(proofPath)
	require.NoError(t, err)

	ok, err := Verify(loadedVK, []fr.Element{feUint64(38)}, loadedProof, rng)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = Verify(loadedVK, []fr.Element{feUint64(39)}, loadedProof, rng)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLoadMissingArtifacts(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadSRS(dir)
	require.Error(t, err)
	_, err = LoadProvingKey(dir)
	require.Error(t, err)
	_, err = LoadVerifyingKey(dir)
	require.Error(t, err)
	_, err = LoadProof(filepath.Join(dir, "proof.bin"))
	require.Error(t, err)
}
