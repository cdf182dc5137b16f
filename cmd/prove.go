package cmd

import (
	"path/filepath"

	fr "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/spf13/cobra"

	"github.com/b-garbacz/zkp-merlin-sgx/zkp"
	"github.com/b-garbacz/zkp-merlin-sgx/zkp/hwrand"
)

var (
	proveCmdDataDir   string
	proveCmdX         string
	proveCmdY         string
	proveCmdProofPath string
)

func init() {
	proveCmd.Flags().StringVar(&proveCmdDataDir, "data", "", "directory holding the setup artifacts")
	proveCmd.Flags().StringVar(&proveCmdX, "x", "", "secret witness x")
	proveCmd.Flags().StringVar(&proveCmdY, "y", "", "public input y (defaults to a*x + b)")
	proveCmd.Flags().StringVar(&proveCmdProofPath, "proof", "", "output proof path (defaults to <data>/proof.bin)")
	proveCmd.MarkFlagRequired("data")
	proveCmd.MarkFlagRequired("x")
}

var proveCmd = &cobra.Command{
	Use:   "prove",
	Short: "prove knowledge of x with the stored proving key",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		params, err := relationParams()
		if err != nil {
			return err
		}
		var x fr.Element
		if _, err := x.SetString(proveCmdX); err != nil {
			return err
		}
		y := params.Eval(x)
		if proveCmdY != "" {
			if _, err := y.SetString(proveCmdY); err != nil {
				return err
			}
		}

		pk, err := zkp.LoadProvingKey(proveCmdDataDir)
		if err != nil {
			return err
		}
		rng, err := hwrand.New(hwrand.RdRand{})
		if err != nil {
			return err
		}
		proof, err := zkp.Prove(pk, params.Assign(x, y), rng)
		if err != nil {
			return err
		}

		proofPath := proveCmdProofPath
		if proofPath == "" {
			proofPath = filepath.Join(proveCmdDataDir, proofFileName)
		}
		if err := zkp.SaveProof(proofPath, proof); err != nil {
			return err
		}
		data, err := zkp.MarshalProof(proof)
		if err != nil {
			return err
		}

		log.Info().
			Str("proof", proofPath).
			Int("proof_size_bytes", len(data)).
			Str("public_input", y.String()).
			Msg("proof written")
		return nil
	},
}
