package cmd

import (
	"github.com/spf13/cobra"

	"github.com/b-garbacz/zkp-merlin-sgx/server"
)

var (
	serveCmdDataDir string
	serveCmdPort    string
)

func init() {
	serveCmd.Flags().StringVar(&serveCmdDataDir, "data", "", "directory holding the setup artifacts")
	serveCmd.Flags().StringVar(&serveCmdPort, "port", "8080", "listen port")
	serveCmd.MarkFlagRequired("data")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve prove/verify requests over HTTP from one loaded key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		params, err := relationParams()
		if err != nil {
			return err
		}
		s, err := server.New(serveCmdDataDir, params, log)
		if err != nil {
			return err
		}
		return s.Start(serveCmdPort)
	},
}
