// Package cmd provides the command-line interface for the barbershop
// simulator.
package cmd

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "barbersim",
	Short: "Barbersim runs the sleeping-barber problem as an interactive simulation.",
	Long: `Barbersim runs the classic sleeping-barber problem as an ` +
		`interactive simulation. Barbers nap until customers walk in, ` +
		`customers wait in a bounded row of chairs, and the shop can be ` +
		`reconfigured while the clock runs.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	// A local .env file may supply BARBERSIM_* defaults.
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// stringFlagOrEnv returns the flag value, falling back to the named
// environment variable when the flag was not given on the command line.
func stringFlagOrEnv(cmd *cobra.Command, flag, env string) (string, error) {
	if !cmd.Flags().Changed(flag) {
		if v := os.Getenv(env); v != "" {
			return v, nil
		}
	}

	return cmd.Flags().GetString(flag)
}

// intFlagOrEnv is stringFlagOrEnv for integer flags.
func intFlagOrEnv(cmd *cobra.Command, flag, env string) (int, error) {
	if !cmd.Flags().Changed(flag) {
		if v := os.Getenv(env); v != "" {
			return strconv.Atoi(v)
		}
	}

	return cmd.Flags().GetInt(flag)
}
