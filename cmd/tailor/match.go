package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/observability"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/profile"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/strategy"
	"github.com/tferreiram-cloud/Antigravity-CV/internal/types"
)

var matchCommand = &cobra.Command{
	Use:   "match",
	Short: "Score a job posting against the master profile without tailoring",
	RunE:  runMatchCmd,
}

var (
	matchConfigPath  string
	matchJobPath     string
	matchJobIsHTML   bool
	matchTitle       string
	matchCompany     string
	matchProfilePath string
	matchForce       bool
	matchVerbose     bool
)

func init() {
	matchCommand.Flags().StringVar(&matchConfigPath, "config", "", "Path to config.json")
	matchCommand.Flags().StringVarP(&matchJobPath, "job", "j", "", "Path to job posting text file")
	matchCommand.Flags().BoolVar(&matchJobIsHTML, "html", false, "Treat the job file as pre-fetched HTML")
	matchCommand.Flags().StringVar(&matchTitle, "title", "Unknown Role", "Job title")
	matchCommand.Flags().StringVar(&matchCompany, "company", "Unknown Company", "Company name")
	matchCommand.Flags().StringVarP(&matchProfilePath, "profile", "p", "profile.json", "Path to master profile JSON")
	matchCommand.Flags().BoolVar(&matchForce, "force", false, "Force-match: rewrite skill framing before scoring (logged)")
	matchCommand.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print detailed debug information")

	_ = matchCommand.MarkFlagRequired("job")
	rootCmd.AddCommand(matchCommand)
}

func runMatchCmd(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, matchConfigPath, matchVerbose)
	if err != nil {
		return err
	}
	defer a.shutdown()

	masterProfile, err := profile.Load(matchProfilePath)
	if err != nil {
		return err
	}
	posting, err := loadPosting(matchJobPath, matchTitle, matchCompany, "", matchJobIsHTML)
	if err != nil {
		return err
	}

	extracted, err := a.extract.Extract(ctx, posting.Description, posting.Language)
	if err != nil {
		return err
	}

	var match *types.MatchResult
	if matchForce {
		match, err = a.engine.ForceMatch(ctx, extracted, masterProfile, a.synth)
	} else {
		match, err = a.engine.Score(extracted, profile.NewSkillIndex(masterProfile), masterProfile.Experiences)
	}
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintKeywords(extracted)
	printer.PrintMatchResult(match)
	printer.PrintStrategicPlan(strategy.Analyze(posting, extracted))
	return nil
}
