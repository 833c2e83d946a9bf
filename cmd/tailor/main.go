// Package main provides the tailor CLI: keyword extraction, match scoring,
// strategy approval and tailored document generation for job postings.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Match and tailoring engine for job applications",
	Long:  "tailor scores job postings against a master profile, derives an application strategy, and generates ATS-optimized tailored documents with verified facts.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
