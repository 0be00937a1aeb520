package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/batch"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/types"
	schemafiles "github.com/jonathan/resume-matcher/schemas"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank many resumes against one job description",
	Long: "Score every resume concurrently against a job description and print the results " +
		"best first. Items that fail or time out are reported without aborting the batch. " +
		"Runs are stored when a database is configured.",
	RunE: runRank,
}

var (
	rankResumes []string
	rankJob     string
	rankJobText string
	rankOut     string
	rankVerbose bool
	rankWorkers int
)

func init() {
	rankCmd.Flags().StringArrayVarP(&rankResumes, "resume", "r", nil, "Resume source, repeatable (required)")
	rankCmd.Flags().StringVarP(&rankJob, "job", "j", "", "Job description source")
	rankCmd.Flags().StringVar(&rankJobText, "job-text", "", "Job description given inline")
	rankCmd.Flags().StringVarP(&rankOut, "out", "o", "", "Write JSON results to this file instead of stdout")
	rankCmd.Flags().BoolVarP(&rankVerbose, "verbose", "v", false, "Print a leaderboard to stderr")
	rankCmd.Flags().IntVar(&rankWorkers, "workers", 0, "Override batch.max_workers")
	_ = rankCmd.MarkFlagRequired("resume")
	rankCmd.MarkFlagsMutuallyExclusive("job", "job-text")
	rankCmd.MarkFlagsOneRequired("job", "job-text")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
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
	jobText, err := jobDescription(ctx, resolver, rankJob, rankJobText)
	if err != nil {
		return err
	}

	opts := a.batchOptions()
	if rankWorkers > 0 {
		opts.MaxWorkers = rankWorkers
	}
	ranker := batch.NewRanker(scorer, resolver, opts)
	runID, results, err := ranker.RankAndRecord(ctx, a.runStore(), rankResumes, jobText, scorer.Weights().AsMap())
	if err != nil {
		return fmt.Errorf("ranking failed: %w", err)
	}

	types.SortByScore(results)
	out := &types.RankResults{Results: results}
	if runID != uuid.Nil {
		out.RunID = runID.String()
	}

	counts := types.CountByStatus(results)
	a.logger.Info("ranked resumes",
		zap.Int("total", len(results)),
		zap.Int("succeeded", counts[types.TaskSucceeded]),
		zap.Int("failed", counts[types.TaskFailed]),
		zap.Int("timed_out", counts[types.TaskTimedOut]),
		zap.String("run_id", out.RunID),
	)

	a.checkSchema(schemafiles.RankResults, out)
	if rankVerbose {
		observability.NewPrinter(os.Stderr).PrintRankResults(out)
	}
	return writeJSON(cmd.OutOrStdout(), rankOut, out)
}
