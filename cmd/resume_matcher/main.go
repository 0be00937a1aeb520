// Package main provides the resume_matcher command line.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "resume_matcher",
	Short: "Resume to job description match scoring",
	Long: "resume_matcher scores resumes against a job description using skill, experience, " +
		"education, keyword, context and role signals, and ranks batches of resumes concurrently.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "Path to a YAML/JSON/TOML config file")
	pf.Bool("json", false, "Emit JSON logs")
	pf.Bool("debug", false, "Enable debug logging")
	pf.String("database-url", "", "PostgreSQL URL for stored resumes and rank runs")
	pf.Bool("use-browser", false, "Render JavaScript-heavy pages with headless Chrome")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
