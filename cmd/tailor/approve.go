package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tferreiram-cloud/Antigravity-CV/internal/workflow"
)

var approveCommand = &cobra.Command{
	Use:   "approve",
	Short: "Approve a stored posting's strategic plan, unlocking tailoring",
	RunE:  runApproveCmd,
}

var (
	approveConfigPath string
	approveID         string
	approveVerbose    bool
)

func init() {
	approveCommand.Flags().StringVar(&approveConfigPath, "config", "", "Path to config.json")
	approveCommand.Flags().StringVar(&approveID, "id", "", "Posting ID")
	approveCommand.Flags().BoolVarP(&approveVerbose, "verbose", "v", false, "Print detailed debug information")

	_ = approveCommand.MarkFlagRequired("id")
	rootCmd.AddCommand(approveCommand)
}

func runApproveCmd(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, approveConfigPath, approveVerbose)
	if err != nil {
		return err
	}
	defer a.shutdown()

	if a.store == nil {
		return fmt.Errorf("approve requires a database URL")
	}

	posting, err := a.store.GetPosting(ctx, approveID)
	if err != nil {
		return err
	}
	if posting == nil {
		return fmt.Errorf("posting %s not found", approveID)
	}

	tracker, err := workflow.ResumeTracker(workflow.Status(posting.Status))
	if err != nil {
		return err
	}
	if err := tracker.Approve(); err != nil {
		return err
	}

	if posting.StrategicPlan != nil {
		posting.StrategicPlan.Approved = true
		score := 0.0
		if posting.MatchScore != nil {
			score = *posting.MatchScore
		}
		if err := a.store.SaveMatch(ctx, posting.ID, score, posting.MatchedKeywords, posting.StrategicPlan); err != nil {
			return err
		}
	}
	if err := a.store.UpdateStatus(ctx, posting.ID, string(tracker.Status())); err != nil {
		return err
	}

	fmt.Printf("Posting %s approved: %s -> %s\n", posting.ID, posting.Status, tracker.Status())
	return nil
}
