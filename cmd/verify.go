package cmd

import (
	"path/filepath"

	fr "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/spf13/cobra"

	"github.com/b-garbacz/zkp-merlin-sgx/zkp"
	"github.com/b-garbacz/zkp-merlin-sgx/zkp/hwrand"
)

var (
	verifyCmdDataDir   string
	verifyCmdY         string
	verifyCmdProofPath string
)

func init() {
	verifyCmd.Flags().StringVar(&verifyCmdDataDir, "data", "", "directory holding the setup artifacts")
	verifyCmd.Flags().StringVar(&verifyCmdY, "y", "", "public input y")
	verifyCmd.Flags().StringVar(&verifyCmdProofPath, "proof", "", "proof path (defaults to <data>/proof.bin)")
	verifyCmd.MarkFlagRequired("data")
	verifyCmd.MarkFlagRequired("y")
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "verify a stored proof against a public input",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		var y fr.Element
		if _, err := y.SetString(verifyCmdY); err != nil {
			return err
		}

		vk, err := zkp.LoadVerifyingKey(verifyCmdDataDir)
		if err != nil {
			return err
		}
		proofPath := verifyCmdProofPath
		if proofPath == "" {
			proofPath = filepath.Join(verifyCmdDataDir, proofFileName)
		}
		proof, err := zkp.LoadProof(proofPath)
		if err != nil {
			return err
		}

		rng, err := hwrand.New(hwrand.RdRand{})
		if err != nil {
			return err
		}
		ok, err := zkp.Verify(vk, []fr.Element{y}, proof, rng)
		if err != nil {
			return err
		}

		log.Info().Bool("valid", ok).Str("public_input", y.String()).Msg("verification done")
		return nil
	},
}
