package cmd

import (
	fr "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/spf13/cobra"

	"github.com/b-garbacz/zkp-merlin-sgx/zkp"
)

var (
	runCmdX           string
	runCmdY           string
	runCmdConstraints int
	runCmdVariables   int
	runCmdNonZero     int
)

func init() {
	runCmd.Flags().StringVar(&runCmdX, "x", "11", "secret witness x")
	runCmd.Flags().StringVar(&runCmdY, "y", "", "public input y (defaults to a*x + b)")
	runCmd.Flags().IntVar(&runCmdConstraints, "constraints", 2, "max constraints for the universal setup")
	runCmd.Flags().IntVar(&runCmdVariables, "variables", 3, "max variables for the universal setup")
	runCmd.Flags().IntVar(&runCmdNonZero, "nonzero", 6, "max non-zero terms for the universal setup")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run the full pipeline in memory: setup, index, prove, verify",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		params, err := relationParams()
		if err != nil {
			return err
		}
		var x fr.Element
		if _, err := x.SetString(runCmdX); err != nil {
			return err
		}
		y := params.Eval(x)
		if runCmdY != "" {
			if _, err := y.SetString(runCmdY); err != nil {
				return err
			}
		}

		bounds := zkp.Bounds{
			NbConstraints: runCmdConstraints,
			NbVariables:   runCmdVariables,
			NbNonZero:     runCmdNonZero,
		}
		pipeline := zkp.NewPipeline(params, bounds, zkp.WithLogger(log))

		ok, err := pipeline.Run(x, y)
		if err != nil {
			return err
		}
		proofBytes, err := pipeline.ProofBytes()
		if err != nil {
			return err
		}

		log.Info().
			Bool("valid", ok).
			Int("proof_size_bytes", len(proofBytes)).
			Str("public_input", y.String()).
			Msg("pipeline done")
		return nil
	},
}
