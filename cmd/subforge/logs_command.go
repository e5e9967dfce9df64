package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"subforge/internal/logging"
	"subforge/internal/logs"
)

const logFollowWait = 2 * time.Second

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool
	var file string
	var query logs.Query
	var level string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show entries from today's JSON log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := strings.TrimSpace(file)
			if path == "" {
				if cfg.Paths.LogDir == "" {
					return errors.New("paths.log_dir is not configured")
				}
				path = logging.DailyLogPath(cfg.Paths.LogDir, time.Now())
			}
			if level != "" {
				query.MinLevel = logging.ParseLevel(level)
			}

			out := cmd.OutOrStdout()
			result, err := logs.Tail(cmd.Context(), path, logs.TailOptions{Offset: -1, Limit: lines, Query: query})
			if err != nil {
				return err
			}
			for _, entry := range result.Entries {
				fmt.Fprintln(out, entry.Format())
			}
			if !follow {
				return nil
			}

			offset := result.Offset
			for {
				result, err := logs.Tail(cmd.Context(), path, logs.TailOptions{Offset: offset, Follow: true, Wait: logFollowWait, Query: query})
				if err != nil {
					if errors.Is(err, context.Canceled) {
						return nil
					}
					return err
				}
				for _, entry := range result.Entries {
					fmt.Fprintln(out, entry.Format())
				}
				offset = result.Offset
			}
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of matching entries to show (0 shows all)")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new entries until interrupted")
	cmd.Flags().StringVar(&file, "file", "", "Read this log file instead of today's")
	cmd.Flags().StringVar(&query.RunID, "run", "", "Only entries for this run id")
	cmd.Flags().StringVar(&query.Component, "component", "", "Only entries from this component")
	cmd.Flags().StringVar(&query.Search, "search", "", "Only entries containing this text")
	cmd.Flags().StringVar(&level, "level", "", "Minimum level (debug, info, warn, error)")
	return cmd
}
