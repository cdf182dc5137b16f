package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/b-garbacz/zkp-merlin-sgx/zkp"
)

var proofFileName = "proof.bin"

// relation flags shared by all commands; the coefficients must match the ones
// the keys were generated for.
var (
	flagA string
	flagB string
)

var rootCmd = &cobra.Command{
	Use:   "zkp-merlin-sgx",
	Short: "prove and verify y = a*x + b inside an SGX enclave",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagA, "a", "3", "relation coefficient a")
	rootCmd.PersistentFlags().StringVar(&flagB, "b", "5", "relation coefficient b")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(proveCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(serveCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	return zerolog.New(output).With().Timestamp().Logger()
}

func relationParams() (zkp.Params, error) {
	return zkp.ParseParams(flagA, flagB)
}
