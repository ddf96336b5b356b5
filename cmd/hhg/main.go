package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hhgcare/hhg/internal/interfaces/cli/migrate"
	"github.com/hhgcare/hhg/internal/interfaces/cli/privacy"
	"github.com/hhgcare/hhg/internal/interfaces/cli/server"
	"github.com/hhgcare/hhg/internal/interfaces/cli/token"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hhg",
		Short: "HHG booking and consent service",
		Long:  `HHG connects patients with partner clinics: consent links, bookings with encrypted patient data, and crypto-shredding erasure.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		privacy.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
