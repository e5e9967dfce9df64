package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"subforge/internal/cues"
	"subforge/internal/history"
	"subforge/internal/ingest"
	"subforge/internal/textutil"
)

const cueTextWidth = 60

type ingestOutput struct {
	*ingest.Result
	Segments []ingest.Segment `json:"segments"`
	Summary  cues.Summary     `json:"summary"`
}

func newIngestCommand(ctx *commandContext) *cobra.Command {
	var flags pipelineFlags
	var jsonOut bool
	var rows int

	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Run the caption pipeline on a file and print the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			pipeline := ingest.NewPipeline(flags.options(cmd, cfg, logger))
			res, err := pipeline.IngestFile(cmd.Context(), args[0])
			ctx.recordRuns(cmd.Context(), logger, history.RunFromResult("", args[0], res, err, ""))
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, ingestOutput{Result: res, Segments: res.Segments(), Summary: cues.Summarize(res.Cues)})
			}
			out := cmd.OutOrStdout()
			printReport(out, res, shouldColorize(out))
			if len(res.Cues) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderCueTable(res.Cues, rows))
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the result as JSON")
	cmd.Flags().IntVar(&rows, "rows", 20, "Maximum cue rows to print (0 prints all)")
	return cmd
}

func printReport(out io.Writer, res *ingest.Result, colorize bool) {
	report := res.Report
	summary := cues.Summarize(res.Cues)

	printLines(out, renderSectionHeader("Ingest", colorize)...)
	printLines(out,
		renderStatusLine("File", statusInfo, res.Source, colorize),
		renderStatusLine("Encoding", resolutionKind(res.Resolution),
			fmt.Sprintf("%s via %s, score %.3f", res.Resolution.Encoding, res.Resolution.Method, res.Resolution.Score), colorize),
		renderStatusLine("Blocks", statusInfo,
			fmt.Sprintf("%d parsed of %d%s", report.Parsed, report.Blocks, formatCounts(report.Skipped, ", skipped ")), colorize),
	)
	if report.RepairTotal() > 0 {
		printLines(out, renderStatusLine("Repairs", statusInfo, formatCounts(report.Repairs, ""), colorize))
	}

	var adjustments []string
	for _, part := range []struct {
		label string
		n     int
	}{
		{"extended", report.Extended},
		{"shortened", report.Shortened},
		{"overlap clipped", report.ClippedOverlap},
		{"overlap dropped", report.DroppedOverlap},
		{"empty dropped", report.DroppedEmpty},
		{"truncated", report.Truncated},
		{"fit clipped", report.ClippedFit},
		{"fit dropped", report.DroppedFit},
	} {
		if part.n > 0 {
			adjustments = append(adjustments, fmt.Sprintf("%s %d", part.label, part.n))
		}
	}
	if len(adjustments) > 0 {
		printLines(out, renderStatusLine("Adjusted", statusInfo, strings.Join(adjustments, ", "), colorize))
	}

	if report.Empty {
		printLines(out, renderStatusLine("Cues", statusWarn, "none survived", colorize))
		return
	}
	printLines(out, renderStatusLine("Cues", statusOK,
		fmt.Sprintf("%d spanning %s --> %s", summary.Count, cues.FormatTimestamp(summary.FirstStart), cues.FormatTimestamp(summary.LastEnd)), colorize))
	if warn := res.Warning(); warn != nil {
		printLines(out, renderStatusLine("Warning", statusWarn, warn.Error(), colorize))
	}
}

func renderCueTable(seq []cues.Cue, limit int) string {
	shown := seq
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	rows := make([][]string, 0, len(shown)+1)
	for _, cue := range shown {
		text, _ := textutil.Truncate(strings.ReplaceAll(cue.Text, "\n", " / "), cueTextWidth*2)
		rows = append(rows, []string{
			strconv.Itoa(cue.Index),
			cues.FormatTimestamp(cue.Start),
			cues.FormatTimestamp(cue.End),
			text,
		})
	}
	if hidden := len(seq) - len(shown); hidden > 0 {
		rows = append(rows, []string{"", "", "", fmt.Sprintf("… %d more", hidden)})
	}
	return renderTable(
		[]string{"#", "Start", "End", "Text"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
		cueTextWidth, 3,
	)
}

// formatCounts renders "a 1, b 2" in key order, prefixed when non-empty.
func formatCounts(counts map[string]int, prefix string) string {
	if len(counts) == 0 {
		return ""
	}
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s %d", key, counts[key]))
	}
	return prefix + strings.Join(parts, ", ")
}
