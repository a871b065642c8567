package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/packlane-io/packlane/internal/interfaces/cli/migrate"
	"github.com/packlane-io/packlane/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "packlane",
		Short: "Packlane - content pack sales backend",
		Long:  `Packlane is the backend for a content-sales learning platform: catalog management, purchase requests, receipt uploads, and entitlement checks.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
