package zkp

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/consensys/gnark-crypto/ecc"
	kzgbls "github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/pkg/errors"
)

// Disk persistence for the pipeline artifacts. Keys and SRS are written once
// after setup/index and reloaded read-only; a proof file may be stored for
// later replay.

// Save writes the SRS to dir.
func (s *SRS) Save(dir string) error {
	f, err := os.Create(filepath.Join(dir, srsFile))
	if err != nil {
		return errors.Wrap(err, "creating SRS file")
	}
	defer f.Close()
	if _, err := s.canonical.WriteTo(f); err != nil {
		return errors.Wrap(err, "writing SRS")
	}
	return nil
}

// LoadSRS reads an SRS previously written with Save.
func LoadSRS(dir string) (*SRS, error) {
	f, err := os.Open(filepath.Join(dir, srsFile))
	if err != nil {
		return nil, errors.Wrap(err, "opening SRS file")
	}
	defer f.Close()

	srs := kzgbls.SRS{}
	if _, err := srs.ReadFrom(bufio.NewReaderSize(f, 1024*1024)); err != nil {
		return nil, errors.Wrap(err, "reading SRS")
	}
	return &SRS{canonical: &srs}, nil
}

// Save writes the compiled circuit and proving key to dir.
func (pk *ProvingKey) Save(dir string) error {
	ccsF, err := os.Create(filepath.Join(dir, circuitFile))
	if err != nil {
		return errors.Wrap(err, "creating circuit file")
	}
	defer ccsF.Close()
	if _, err := pk.ccs.WriteTo(ccsF); err != nil {
		return errors.Wrap(err, "writing circuit")
	}

	pkF, err := os.Create(filepath.Join(dir, pkFile))
	if err != nil {
		return errors.Wrap(err, "creating proving key file")
	}
	defer pkF.Close()
	if _, err := pk.pk.WriteTo(pkF); err != nil {
		return errors.Wrap(err, "writing proving key")
	}
	return nil
}

// LoadProvingKey reads the compiled circuit and proving key from dir.
func LoadProvingKey(dir string) (*ProvingKey, error) {
	ccsF, err := os.Open(filepath.Join(dir, circuitFile))
	if err != nil {
		return nil, errors.Wrap(err, "opening circuit file")
	}
	defer ccsF.Close()
	ccs := plonk.NewCS(ecc.BLS12_381)
	if _, err := ccs.ReadFrom(bufio.NewReaderSize(ccsF, 1024*1024)); err != nil {
		return nil, errors.Wrap(err, "reading circuit")
	}

	pkF, err := os.Open(filepath.Join(dir, pkFile))
	if err != nil {
		return nil, errors.Wrap(err, "opening proving key file")
	}
	defer pkF.Close()
	pk := plonk.NewProvingKey(ecc.BLS12_381)
	if _, err := pk.ReadFrom(bufio.NewReaderSize(pkF, 1024*1024)); err != nil {
		return nil, errors.Wrap(err, "reading proving key")
	}
	return &ProvingKey{ccs: ccs, pk: pk}, nil
}

// Save writes the verifying key to dir.
func (vk *VerifyingKey) Save(dir string) error {
	f, err := os.Create(filepath.Join(dir, vkFile))
	if err != nil {
		return errors.Wrap(err, "creating verifying key file")
	}
	defer f.Close()
	if _, err := vk.vk.WriteTo(f); err != nil {
		return errors.Wrap(err, "writing verifying key")
	}
	return nil
}

// LoadVerifyingKey reads a verifying key from dir.
func LoadVerifyingKey(dir string) (*VerifyingKey, error) {
	f, err := os.Open(filepath.Join(dir, vkFile))
	if err != nil {
		return nil, errors.Wrap(err, "opening verifying key file")
	}
	defer f.Close()
	vk := plonk.NewVerifyingKey(ecc.BLS12_381)
	if _, err := vk.ReadFrom(f); err != nil {
		return nil, errors.Wrap(err, "reading verifying key")
	}
	return &VerifyingKey{vk: vk}, nil
}

// SaveProof writes a serialized proof to path.
func SaveProof(path string, proof plonk.Proof) error {
	data, err := MarshalProof(proof)
	if err != nil {
		return errors.Wrap(err, "serializing proof")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "writing proof file")
}

// LoadProof reads a proof previously written with SaveProof.
func LoadProof(path string) (plonk.Proof, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading proof file")
	}
	proof, err := UnmarshalProof(data)
	return proof, errors.Wrap(err, "deserializing proof")
}
