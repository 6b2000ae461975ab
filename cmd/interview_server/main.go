// Package main provides the entry point for the interview prep HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "interview_server",
	Short: "Mock Interview HTTP API Server",
	Long:  "Backend for scheduling, running and grading AI-powered mock interviews: question generation, answer scoring, plan quotas and scheduled-mock reminders via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
