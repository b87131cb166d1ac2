// Package main provides the ats_scorer CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configFile string
	logJSON    bool
	logDebug   bool
)

var rootCmd = &cobra.Command{
	Use:   "ats_scorer",
	Short: "ATS resume scoring engine",
	Long: `ats_scorer scores structured resumes the way an applicant tracking system would,
optionally against job requirements, and produces improvement recommendations.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default ./ats-scorer.yaml if present)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "json", false, "Emit JSON logs")
	rootCmd.PersistentFlags().BoolVar(&logDebug, "debug", false, "Enable debug logging")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
