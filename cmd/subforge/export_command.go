package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"subforge/internal/cues"
	"subforge/internal/fileutil"
	"subforge/internal/history"
	"subforge/internal/ingest"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var flags pipelineFlags
	var output string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write the cleaned captions of a file as SRT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := args[0]
			output = strings.TrimSpace(output)
			if output == "" {
				return errors.New("--output is required")
			}
			if samePath(source, output) {
				return fmt.Errorf("refusing to overwrite source file %s", source)
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			pipeline := ingest.NewPipeline(flags.options(cmd, cfg, logger))
			res, err := pipeline.IngestFile(cmd.Context(), source)
			if err != nil {
				ctx.recordRuns(cmd.Context(), logger, history.RunFromResult("", source, nil, err, ""))
				return err
			}
			if res.Report.Empty {
				ctx.recordRuns(cmd.Context(), logger, history.RunFromResult("", source, res, nil, ""))
				return fmt.Errorf("no cues survived in %s; nothing written", source)
			}

			unlock, err := lockOutputDir(cmd.Context(), filepath.Dir(output))
			if err != nil {
				return err
			}
			writeErr := fileutil.WriteAtomic(output, []byte(cues.FormatSRT(res.Cues)), 0o644)
			unlock()
			if writeErr != nil {
				ctx.recordRuns(cmd.Context(), logger, history.RunFromResult(res.RunID, source, nil, writeErr, output))
				return fmt.Errorf("write %s: %w", output, writeErr)
			}
			ctx.recordRuns(cmd.Context(), logger, history.RunFromResult("", source, res, nil, output))

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			printLines(out, renderStatusLine("Exported", statusOK, fmt.Sprintf("%d cues to %s", len(res.Cues), output), colorize))
			if warn := res.Warning(); warn != nil {
				printLines(out, renderStatusLine("Warning", statusWarn, warn.Error(), colorize))
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination SRT path")
	return cmd
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
