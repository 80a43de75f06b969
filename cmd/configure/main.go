package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/volunteernetwork/api/cmd/configure/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "volunteer-configure",
		Short: "Configuration tool for the Volunteer Network API",
		Long:  "CLI tool for managing CORS and rate limit settings stored in the database",
	}

	rootCmd.AddCommand(commands.NewCorsCmd())
	rootCmd.AddCommand(commands.NewRatelimitCmd())
	rootCmd.AddCommand(commands.NewListCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
