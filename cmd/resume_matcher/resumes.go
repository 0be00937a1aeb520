package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/ingestion"
)

var resumesCmd = &cobra.Command{
	Use:   "resumes",
	Short: "Manage resumes stored in the database",
	Long:  "Store resume text in PostgreSQL so it can be scored as db:<uuid>.",
}

var resumesAddCmd = &cobra.Command{
	Use:   "add <source>...",
	Short: "Resolve resumes and store their text",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runResumesAdd,
}

var resumesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored resumes",
	RunE:  runResumesList,
}

var (
	resumesLabel string
	resumesLimit int
)

func init() {
	resumesAddCmd.Flags().StringVar(&resumesLabel, "label", "", "Label for the stored resume (defaults to its source)")
	resumesListCmd.Flags().IntVar(&resumesLimit, "limit", 50, "Maximum resumes to list")

	resumesCmd.AddCommand(resumesAddCmd, resumesListCmd)
	rootCmd.AddCommand(resumesCmd)
}

var errNoDatabase = errors.New("a database is required (set --database-url or RESUME_MATCHER_DATABASE_URL)")

func runResumesAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.close()
	if a.db == nil {
		return errNoDatabase
	}

	resolver, err := a.resolver(ctx)
	if err != nil {
		return err
	}
	for _, source := range args {
		doc, err := resolver.Resolve(ctx, source)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", source, err)
		}
		label := resumesLabel
		if label == "" || len(args) > 1 {
			label = doc.Identifier
		}
		id, err := a.db.SaveResume(ctx, label, doc.Text)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s%s\t%s\n", ingestion.DatabasePrefix, id, label)
	}
	return nil
}

func runResumesList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.close()
	if a.db == nil {
		return errNoDatabase
	}

	resumes, err := a.db.ListResumes(ctx, resumesLimit)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLABEL\tCREATED")
	for _, r := range resumes {
		fmt.Fprintf(tw, "%s%s\t%s\t%s\n", ingestion.DatabasePrefix, r.ID, r.Label, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}
