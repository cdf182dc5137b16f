package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/b-garbacz/zkp-merlin-sgx/zkp"
	"github.com/b-garbacz/zkp-merlin-sgx/zkp/hwrand"
)

var (
	setupCmdDataDir     string
	setupCmdConstraints int
	setupCmdVariables   int
	setupCmdNonZero     int
)

func init() {
	setupCmd.Flags().StringVar(&setupCmdDataDir, "data", "", "directory for srs/circuit/key artifacts")
	setupCmd.Flags().IntVar(&setupCmdConstraints, "constraints", 2, "max constraints for the universal setup")
	setupCmd.Flags().IntVar(&setupCmdVariables, "variables", 3, "max variables for the universal setup")
	setupCmd.Flags().IntVar(&setupCmdNonZero, "nonzero", 6, "max non-zero terms for the universal setup")
	setupCmd.MarkFlagRequired("data")
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "generate the SRS and key pair, write them to the data dir",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		params, err := relationParams()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(setupCmdDataDir, 0755); err != nil {
			return errors.Wrap(err, "creating data directory")
		}

		rng, err := hwrand.New(hwrand.RdRand{})
		if err != nil {
			return err
		}
		bounds := zkp.Bounds{
			NbConstraints: setupCmdConstraints,
			NbVariables:   setupCmdVariables,
			NbNonZero:     setupCmdNonZero,
		}
		srs, err := zkp.UniversalSetup(bounds, rng)
		if err != nil {
			return err
		}
		pk, vk, err := zkp.Index(srs, params.Placeholder())
		if err != nil {
			return err
		}

		if err := srs.Save(setupCmdDataDir); err != nil {
			return err
		}
		if err := pk.Save(setupCmdDataDir); err != nil {
			return err
		}
		if err := vk.Save(setupCmdDataDir); err != nil {
			return err
		}

		log.Info().
			Str("data", setupCmdDataDir).
			Int("constraints", pk.ConstraintSystem().GetNbConstraints()).
			Msg("setup artifacts written")
		return nil
	},
}
