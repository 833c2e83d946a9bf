package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/observability"
)

var extractCommand = &cobra.Command{
	Use:   "extract",
	Short: "Extract the ATS keyword set from a job posting file",
	RunE:  runExtractCmd,
}

var (
	extractConfigPath string
	extractJobPath    string
	extractJobIsHTML  bool
	extractTitle      string
	extractCompany    string
	extractVerbose    bool
)

func init() {
	extractCommand.Flags().StringVar(&extractConfigPath, "config", "", "Path to config.json")
	extractCommand.Flags().StringVarP(&extractJobPath, "job", "j", "", "Path to job posting text file")
	extractCommand.Flags().BoolVar(&extractJobIsHTML, "html", false, "Treat the job file as pre-fetched HTML")
	extractCommand.Flags().StringVar(&extractTitle, "title", "Unknown Role", "Job title")
	extractCommand.Flags().StringVar(&extractCompany, "company", "Unknown Company", "Company name")
	extractCommand.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print detailed debug information")

	_ = extractCommand.MarkFlagRequired("job")
	rootCmd.AddCommand(extractCommand)
}

func runExtractCmd(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, extractConfigPath, extractVerbose)
	if err != nil {
		return err
	}
	defer a.shutdown()

	posting, err := loadPosting(extractJobPath, extractTitle, extractCompany, "", extractJobIsHTML)
	if err != nil {
		return err
	}

	extracted, err := a.extract.Extract(ctx, posting.Description, posting.Language)
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintKeywords(extracted)
	return nil
}
