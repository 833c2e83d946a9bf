package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/observability"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/pipeline"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/profile"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/synthesis"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/types"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/workflow"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the tailoring pipeline for one posting or every stored todo posting",
	RunE:  runPipelineCmd,
}

var (
	runConfigPath  string
	runJobPath     string
	runJobIsHTML   bool
	runTitle       string
	runCompany     string
	runURL         string
	runProfilePath string
	runMode        string
	runApprove     bool
	runForce       bool
	runAll         bool
	runParallel    int
	runVerbose     bool
)

func init() {
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json")
	runCommand.Flags().StringVarP(&runJobPath, "job", "j", "", "Path to job posting text file")
	runCommand.Flags().BoolVar(&runJobIsHTML, "html", false, "Treat the job file as pre-fetched HTML")
	runCommand.Flags().StringVar(&runTitle, "title", "", "Job title")
	runCommand.Flags().StringVar(&runCompany, "company", "", "Company name")
	runCommand.Flags().StringVar(&runURL, "url", "", "Original posting URL")
	runCommand.Flags().StringVarP(&runProfilePath, "profile", "p", "profile.json", "Path to master profile JSON")
	runCommand.Flags().StringVarP(&runMode, "mode", "m", "senior", "Synthesis mode: senior or junior")
	runCommand.Flags().BoolVar(&runApprove, "approve", false, "Approve the strategic plan and continue into tailoring")
	runCommand.Flags().BoolVar(&runForce, "force", false, "Force-match: rewrite skill framing before scoring (logged)")
	runCommand.Flags().BoolVar(&runAll, "all", false, "Process every stored posting in todo (requires database)")
	runCommand.Flags().IntVar(&runParallel, "parallel", 3, "Max concurrent postings with --all")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, runConfigPath, runVerbose)
	if err != nil {
		return err
	}
	defer a.shutdown()

	masterProfile, err := profile.Load(runProfilePath)
	if err != nil {
		return err
	}

	mode := synthesis.Mode(runMode)
	if mode != synthesis.ModeSenior && mode != synthesis.ModeJunior {
		return fmt.Errorf("unknown mode %q", runMode)
	}
	opts := pipeline.Options{Mode: mode, AutoApprove: runApprove, Force: runForce}
	printer := observability.NewPrinter(os.Stdout)

	if runAll {
		if a.store == nil {
			return fmt.Errorf("--all requires a database URL")
		}
		postings, err := a.store.ListPostings(ctx, string(workflow.StatusTodo))
		if err != nil {
			return err
		}
		if len(postings) == 0 {
			fmt.Println("No postings in todo.")
			return nil
		}
		// Listing rows omit the description; load full rows before running.
		full := make([]*types.JobPosting, 0, len(postings))
		for _, p := range postings {
			loaded, err := a.store.GetPosting(ctx, p.ID)
			if err != nil {
				return err
			}
			if loaded != nil {
				full = append(full, loaded)
			}
		}
		results, err := a.pipe.RunAll(ctx, full, masterProfile, opts, runParallel)
		if err != nil {
			return err
		}
		for _, result := range results {
			printResult(printer, result)
		}
		return nil
	}

	if runJobPath == "" {
		return fmt.Errorf("--job is required without --all")
	}
	posting, err := loadPosting(runJobPath, runTitle, runCompany, runURL, runJobIsHTML)
	if err != nil {
		return err
	}
	if a.store != nil {
		if err := a.store.CreatePosting(ctx, posting); err != nil {
			return err
		}
	}

	result, err := a.pipe.Run(ctx, posting, masterProfile, opts)
	if err != nil {
		return err
	}
	printResult(printer, result)
	return nil
}

func printResult(printer *observability.Printer, result *pipeline.Result) {
	fmt.Printf("%s at %s [%s]\n", result.Posting.Title, result.Posting.Company, result.Status)
	printer.PrintKeywords(result.Keywords)
	printer.PrintMatchResult(result.Match)
	printer.PrintStrategicPlan(result.Plan)
	if result.Document != nil {
		printer.PrintDocument(result.Document)
	} else if result.Status == workflow.StatusStrategy {
		fmt.Println("Plan awaiting approval. Re-run with --approve or use: tailor approve --id", result.Posting.ID)
	}
}
