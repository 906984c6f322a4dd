// Package cli provides command-line interface implementation for asepscan.
package cli

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "asepscan",
	Short: "A CLI tool for detecting registry autostart persistence in memory snapshots",
	Long: `asepscan inspects registry hives carved from a memory image for autostart
extensibility points (run keys, services, AppInit_DLLs, Winlogon hooks) and
correlates each entry with the processes captured in the same snapshot.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Show help and exit 0 if no subcommand is provided
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(scanCmd)
}
