package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Sushmit94/solana-project/internal/core"
	"github.com/Sushmit94/solana-project/internal/dashboard"
	"github.com/Sushmit94/solana-project/internal/di"
	"github.com/Sushmit94/solana-project/internal/present"
	"go.uber.org/dig"
	"go.uber.org/zap"
)

type cliParams struct {
	dig.In

	Flags   *di.CLIFlags
	Logger  *zap.Logger
	Session *dashboard.Session
	Backend core.Classifier `name:"backend"`
	Cache   core.VerdictCache
}

func main() {
	flags := di.ParseFlags()

	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(run); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(p cliParams) error {
	defer p.Logger.Sync()
	defer closeResources(p)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	switch p.Flags.Action {
	case "stats":
		stats, err := p.Session.Refresh(ctx)
		if err != nil {
			return err
		}
		printStatistics(os.Stdout, stats)
	case "inbox":
		filter, err := present.ParseFilter(p.Flags.Filter)
		if err != nil {
			return err
		}
		if _, err := p.Session.Refresh(ctx); err != nil {
			return err
		}
		printInbox(os.Stdout, p.Session.Messages(filter))
	case "submit":
		if _, err := p.Session.Refresh(ctx); err != nil {
			return err
		}
		if p.Flags.Connect {
			if _, err := p.Session.Connect(ctx); err != nil {
				return err
			}
		}
		report := p.Session.SubmitProofs(ctx)
		printReport(os.Stdout, report)
		if report.Rejected() {
			return report.RejectReason
		}
	case "reputation":
		view, err := p.Session.Reputation(ctx, p.Flags.Sender)
		if err != nil {
			return err
		}
		printReputation(os.Stdout, view)
	default:
		return errors.New("unknown action " + p.Flags.Action + " (stats, inbox, submit, reputation)")
	}
	return nil
}

func closeResources(p cliParams) {
	if closer, ok := p.Backend.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.Logger.Error("Failed to close classifier backend", zap.Error(err))
		}
	}
	if stopper, ok := p.Cache.(interface{ Stop() }); ok {
		stopper.Stop()
	}
}

func printStatistics(w io.Writer, stats *core.Statistics) {
	fmt.Fprintf(w, "\n=== Threat Statistics ===\n")
	fmt.Fprintf(w, "Total messages: %d\n", stats.Total)
	fmt.Fprintf(w, "Safe: %d\n", stats.SafeCount)
	fmt.Fprintf(w, "Threats: %d\n", stats.ThreatCount)
	if stats.Unclassified > 0 {
		fmt.Fprintf(w, "Unclassified: %d\n", stats.Unclassified)
	}

	view := present.Breakdown(stats)
	fmt.Fprintf(w, "\n=== By Level ===\n")
	for _, row := range view.Levels {
		fmt.Fprintf(w, "%-20s %4d  %5.1f%%\n", row.Label, row.Count, row.Percent)
	}
	fmt.Fprintf(w, "\n=== By Type ===\n")
	for _, row := range view.Types {
		fmt.Fprintf(w, "%-20s %4d  %5.1f%%\n", row.Label, row.Count, row.Percent)
	}
}

func printInbox(w io.Writer, items []present.InboxItem) {
	fmt.Fprintf(w, "\n=== Inbox (%d) ===\n", len(items))
	for _, item := range items {
		verdict := "unclassified"
		if item.Result != nil {
			verdict = string(item.Result.ThreatLevel)
			if item.Result.IsMalicious {
				verdict += " " + string(item.Result.EventType)
			}
		}
		fmt.Fprintf(w, "[%s] %s | %s | %s\n", item.Message.ID, item.Message.From, item.Message.Subject, verdict)
	}
}

func printReport(w io.Writer, report *core.SubmissionReport) {
	fmt.Fprintf(w, "\n=== Submission ===\n")
	fmt.Fprintf(w, "Run: %s\n", report.RunID)
	fmt.Fprintf(w, "Status: %s\n", report.Status)
	fmt.Fprintf(w, "%s\n", report.Notice())
	for _, o := range report.Outcomes {
		if o.Succeeded() {
			fmt.Fprintf(w, "  %s -> %s\n", o.MessageID, o.ConfirmationID)
		}
	}
	if len(report.Errors) > 0 {
		fmt.Fprintf(w, "\n=== Errors ===\n")
		for _, e := range report.Errors {
			fmt.Fprintf(w, "  %s (%s) [%s]: %s\n", e.EmailIdentifier, e.Sender, e.Stage, e.Error)
		}
	}
}

func printReputation(w io.Writer, view *present.ReputationView) {
	fmt.Fprintf(w, "\n=== Sender Reputation ===\n")
	fmt.Fprintf(w, "Sender: %s\n", view.Score.Sender)
	fmt.Fprintf(w, "Score: %.1f\n", view.Score.Score)
	fmt.Fprintf(w, "Trust: %s %s\n", view.Trust.Badge, view.Trust.Label)
	fmt.Fprintf(w, "Confidence: %d%%\n", view.Confidence)
	fmt.Fprintf(w, "Proofs: %d\n", view.Score.TotalProofs)
	if view.Trust.Recommendation != "" {
		fmt.Fprintf(w, "Recommendation: %s\n", view.Trust.Recommendation)
	}
	for _, r := range view.Score.ProofRecords {
		fmt.Fprintf(w, "  %s  %-20s %s\n", r.Timestamp.Format(time.RFC3339), r.EventType, strings.TrimSpace(r.ProofHash))
	}
}
