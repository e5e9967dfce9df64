package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"subforge/internal/cues"
	"subforge/internal/fileutil"
	"subforge/internal/history"
	"subforge/internal/ingest"
	"subforge/internal/logging"
	"subforge/internal/textutil"
)

type batchEntry struct {
	Source   string         `json:"source"`
	Status   history.Status `json:"status"`
	Encoding string         `json:"encoding,omitempty"`
	Cues     int            `json:"cues"`
	Output   string         `json:"output,omitempty"`
	Error    string         `json:"error,omitempty"`
}

type batchSummary struct {
	Files  int          `json:"files"`
	Failed int          `json:"failed"`
	Items  []batchEntry `json:"items"`
}

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var flags pipelineFlags
	var outputDir string
	var workers int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "batch <file>...",
		Short: "Ingest many caption files concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("workers") {
				workers = cfg.Batch.Workers
			}
			outputDir = strings.TrimSpace(outputDir)

			pipelineLogger := logger
			if !ctx.isVerbose() {
				pipelineLogger = logging.WithLevelFloor(logger, slog.LevelWarn)
			}
			opts := flags.options(cmd, cfg, pipelineLogger)
			progress, finish := newBatchProgress(cmd.ErrOrStderr(), logger, len(args), jsonOut)
			opts.Progress = progress

			items := ingest.NewPipeline(opts).IngestAll(cmd.Context(), args, workers)
			finish()

			summary, runs, err := writeBatchOutputs(cmd, outputDir, items)
			if err != nil {
				return err
			}
			ctx.recordRuns(cmd.Context(), logger, runs...)

			logger.Info("batch complete",
				logging.String(logging.FieldEventType, "batch_complete"),
				logging.Int("files", summary.Files),
				logging.Int("failed", summary.Failed),
			)
			if jsonOut {
				if err := writeJSON(cmd, summary); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), renderBatchTable(summary))
			}
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d files failed", summary.Failed, summary.Files)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Write one SRT per input into this directory")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent files (default batch.workers)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the summary as JSON")
	return cmd
}

// newBatchProgress returns a per-file callback and a finish func. Terminals
// get a progress bar; other writers get sampled log lines.
func newBatchProgress(w io.Writer, logger *slog.Logger, total int, quiet bool) (func(ingest.BatchItem, int, int), func()) {
	if quiet {
		return nil, func() {}
	}
	if file, ok := w.(*os.File); ok && shouldColorize(file) {
		bar := progressbar.NewOptions(total,
			progressbar.OptionSetWriter(file),
			progressbar.OptionSetDescription("ingesting"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionClearOnFinish(),
		)
		return func(ingest.BatchItem, int, int) { _ = bar.Add(1) }, func() { _ = bar.Finish() }
	}

	sampler := logging.NewProgressSampler(25)
	return func(item ingest.BatchItem, done, total int) {
		if !sampler.ShouldLog(done, total) {
			return
		}
		logger.Info("batch progress",
			logging.String(logging.FieldEventType, "batch_progress"),
			logging.Int("done", done),
			logging.Int("total", total),
			logging.String("last", filepath.Base(item.Path)),
		)
	}, func() {}
}

// writeBatchOutputs exports each successful result into dir (when set) and
// builds the summary and history rows in input order.
func writeBatchOutputs(cmd *cobra.Command, dir string, items []ingest.BatchItem) (batchSummary, []history.Run, error) {
	summary := batchSummary{Files: len(items), Items: make([]batchEntry, 0, len(items))}
	runs := make([]history.Run, 0, len(items))

	if dir != "" {
		unlock, err := lockOutputDir(cmd.Context(), dir)
		if err != nil {
			return summary, nil, err
		}
		defer unlock()
	}

	used := make(map[string]int)
	for _, item := range items {
		entry := batchEntry{Source: item.Path}
		itemErr := item.Err
		output := ""
		if itemErr == nil && dir != "" && !item.Result.Report.Empty {
			output = filepath.Join(dir, uniqueName(used, textutil.ExportName(item.Path, ".srt")))
			if err := fileutil.WriteAtomic(output, []byte(cues.FormatSRT(item.Result.Cues)), 0o644); err != nil {
				itemErr = fmt.Errorf("write %s: %w", output, err)
				output = ""
			}
		}

		var run history.Run
		if itemErr != nil {
			runID := ""
			if item.Result != nil {
				runID = item.Result.RunID
			}
			run = history.RunFromResult(runID, item.Path, nil, itemErr, "")
			entry.Error = itemErr.Error()
			summary.Failed++
		} else {
			run = history.RunFromResult("", item.Path, item.Result, nil, output)
			entry.Encoding = item.Result.Resolution.Encoding
			entry.Cues = len(item.Result.Cues)
		}
		entry.Status = run.Status
		entry.Output = output
		summary.Items = append(summary.Items, entry)
		runs = append(runs, run)
	}
	return summary, runs, nil
}

// uniqueName returns name, or name with a numeric suffix when an earlier
// input already claimed it.
func uniqueName(used map[string]int, name string) string {
	key := strings.ToLower(name)
	used[key]++
	if used[key] == 1 {
		return name
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := used[key]; ; n++ {
		candidate := stem + "-" + strconv.Itoa(n) + ext
		ckey := strings.ToLower(candidate)
		if used[ckey] == 0 {
			used[ckey] = 1
			used[key] = n
			return candidate
		}
	}
}

func renderBatchTable(summary batchSummary) string {
	rows := make([][]string, 0, len(summary.Items))
	for _, entry := range summary.Items {
		detail := entry.Output
		if entry.Error != "" {
			detail = entry.Error
		}
		rows = append(rows, []string{
			filepath.Base(entry.Source),
			entry.Encoding,
			strconv.Itoa(entry.Cues),
			string(entry.Status),
			detail,
		})
	}
	return renderTable(
		[]string{"Source", "Encoding", "Cues", "Status", "Output"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
		50, 4,
	)
}
