// Package main provides the entry point for the ATS resume optimizer.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "atsopt",
	Short: "ATS resume optimizer",
	Long: "atsopt scores a resume against a job description using keyword overlap " +
		"and sentence-embedding similarity, and lists the keywords the resume is missing.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
