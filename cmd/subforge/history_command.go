package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"subforge/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded ingestion runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, runs)
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderHistoryTable(runs, time.Now()))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to show (0 shows all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit runs as JSON")

	cmd.AddCommand(newHistoryPruneCommand(ctx))
	cmd.AddCommand(newHistoryStatsCommand(ctx))
	return cmd
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete runs older than --days",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days <= 0 {
				return errors.New("--days must be positive")
			}
			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			cutoff := time.Now().Add(-time.Duration(days) * 24 * time.Hour)
			removed, err := store.Prune(cmd.Context(), cutoff)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d run(s) older than %d day(s)\n", removed, days)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "Age threshold in days")
	return cmd
}

func newHistoryStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count recorded runs by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			printLines(out, renderSectionHeader("History", colorize)...)
			for _, status := range []history.Status{
				history.StatusOK,
				history.StatusEmpty,
				history.StatusLossy,
				history.StatusFileUnavailable,
				history.StatusCanceled,
				history.StatusFailed,
			} {
				printLines(out, renderStatusLine(string(status), historyStatusKind(status), strconv.Itoa(stats[status]), colorize))
			}
			return nil
		},
	}
}

func openHistory(ctx *commandContext) (*history.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, errors.New("history is disabled (set history.enabled = true)")
	}
	return history.Open(cfg)
}

func renderHistoryTable(runs []history.Run, now time.Time) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			relativeTime(run.CreatedAt, now),
			run.SourcePath,
			humanize.Bytes(uint64(max(run.Bytes, 0))),
			run.Encoding,
			strconv.Itoa(run.Cues),
			string(run.Status),
		})
	}
	return renderTable(
		[]string{"When", "Source", "Size", "Encoding", "Cues", "Status"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignLeft},
		50, 1,
	)
}

func relativeTime(at, now time.Time) string {
	if at.IsZero() {
		return "-"
	}
	return humanize.RelTime(at, now, "ago", "from now")
}

func historyStatusKind(status history.Status) statusKind {
	switch status {
	case history.StatusOK:
		return statusOK
	case history.StatusEmpty, history.StatusLossy:
		return statusWarn
	case history.StatusFileUnavailable, history.StatusFailed:
		return statusError
	default:
		return statusInfo
	}
}
