package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"subforge/internal/charset"
	"subforge/internal/fileutil"
	"subforge/internal/ingest"
	"subforge/internal/language"
)

type detectReport struct {
	Source     string             `json:"source"`
	Bytes      int                `json:"bytes"`
	Resolution charset.Resolution `json:"resolution"`
	Lossy      bool               `json:"lossy"`
}

func newDetectCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "detect <file>",
		Short: "Show how a caption file's byte encoding is resolved",
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
			data, err := fileutil.ReadFile(args[0])
			if err != nil {
				return ingest.Wrap(ingest.ErrFileUnavailable, "read", args[0], err)
			}

			opts := ingest.OptionsFromConfig(cfg, logger).Charset
			res := charset.NewResolver(opts).Resolve(data)
			report := detectReport{Source: args[0], Bytes: len(data), Resolution: res, Lossy: res.Lossy()}
			if jsonOut {
				return writeJSON(cmd, report)
			}
			printDetect(cmd, report)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

func printDetect(cmd *cobra.Command, report detectReport) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	res := report.Resolution

	printLines(out, renderSectionHeader("Encoding", colorize)...)
	printLines(out,
		renderStatusLine("File", statusInfo, fmt.Sprintf("%s (%d bytes)", report.Source, report.Bytes), colorize),
		renderStatusLine("Encoding", resolutionKind(res), fmt.Sprintf("%s via %s, score %.3f", res.Encoding, res.Method, res.Score), colorize),
	)
	if res.Hint != nil {
		hint := fmt.Sprintf("%s at %.0f%% confidence", res.Hint.Charset, res.Hint.Confidence*100)
		if code := language.ToISO2(res.Hint.Language); code != "" {
			hint += fmt.Sprintf(", language %s", language.DisplayName(code))
			if script := language.Script(code); script != "" {
				hint += " (" + script + ")"
			}
		}
		printLines(out, renderStatusLine("Guess", statusInfo, hint, colorize))
	}
	if family, ok := charset.FamilyOf(res.Encoding); ok {
		printLines(out, renderStatusLine("Family", statusInfo, family, colorize))
	}
	if len(res.Candidates) == 0 {
		return
	}

	rows := make([][]string, 0, len(res.Candidates))
	for i, cand := range res.Candidates {
		score := "-"
		if cand.Decoded {
			score = strconv.FormatFloat(cand.Score, 'f', 3, 64)
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), cand.Name, yesNo(cand.Decoded), score})
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Candidate", "Decoded", "Score"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
		0,
	))
}

func resolutionKind(res charset.Resolution) statusKind {
	switch {
	case res.Lossy():
		return statusError
	case res.Score < 0.5:
		return statusWarn
	default:
		return statusOK
	}
}
