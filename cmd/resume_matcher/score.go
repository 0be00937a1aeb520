package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/observability"
	schemafiles "github.com/jonathan/resume-matcher/schemas"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one resume against a job description",
	Long: "Score one resume against a job description. Resumes and jobs may be a file path, " +
		"an http(s) URL, db:<uuid>, s3://bucket/key or gs://bucket/key.",
	RunE: runScore,
}

var (
	scoreResume  string
	scoreJob     string
	scoreJobText string
	scoreOut     string
	scoreVerbose bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreResume, "resume", "r", "", "Resume source (required)")
	scoreCmd.Flags().StringVarP(&scoreJob, "job", "j", "", "Job description source")
	scoreCmd.Flags().StringVar(&scoreJobText, "job-text", "", "Job description given inline")
	scoreCmd.Flags().StringVarP(&scoreOut, "out", "o", "", "Write JSON result to this file instead of stdout")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print a summary to stderr")
	_ = scoreCmd.MarkFlagRequired("resume")
	scoreCmd.MarkFlagsMutuallyExclusive("job", "job-text")
	scoreCmd.MarkFlagsOneRequired("job", "job-text")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.close()

	resolver, err := a.resolver(ctx)
	if err != nil {
		return err
	}
	scorer, err := a.scorer()
	if err != nil {
		return err
	}

	jobText, err := jobDescription(ctx, resolver, scoreJob, scoreJobText)
	if err != nil {
		return err
	}
	resumeText, err := resolver.ResolveText(ctx, scoreResume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	result, err := scorer.Score(ctx, resumeText, jobText)
	if err != nil {
		return err
	}
	a.logger.Info("scored resume",
		zap.String("resume", scoreResume),
		zap.Float64("total_score", result.TotalScore),
	)

	a.checkSchema(schemafiles.MatchResult, result)
	if scoreVerbose {
		observability.NewPrinter(os.Stderr).PrintMatchResult(scoreResume, result)
	}
	return writeJSON(cmd.OutOrStdout(), scoreOut, result)
}

// jobDescription returns inline text or resolves source like a resume.
func jobDescription(ctx context.Context, resolver *ingestion.Resolver, source, inline string) (string, error) {
	if inline != "" {
		return inline, nil
	}
	if source == "" {
		return "", errors.New("a job description is required")
	}
	text, err := resolver.ResolveText(ctx, source)
	if err != nil {
		return "", fmt.Errorf("failed to read job description: %w", err)
	}
	return text, nil
}
