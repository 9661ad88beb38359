package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/battlewithbytes/gh-reinvite/internal/config"
	"github.com/battlewithbytes/gh-reinvite/internal/history"
	"github.com/battlewithbytes/gh-reinvite/internal/ui"
)

var flagHistoryLimit int

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent reinvite runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(config.DefaultPath())
		if err != nil {
			return err
		}

		path := cfg.History.Path
		if path == "" {
			path, err = history.DefaultPath()
			if err != nil {
				return fmt.Errorf("locating history database: %w", err)
			}
		}

		store, err := history.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.List(flagHistoryLimit)
		if err != nil {
			return fmt.Errorf("listing runs: %w", err)
		}
		if len(runs) == 0 {
			fmt.Println(ui.Dim.Render("No runs recorded yet."))
			return nil
		}

		for _, run := range runs {
			marker := ui.OK
			if run.Outcome != history.OutcomeCompleted {
				marker = ui.Warn
			}
			fmt.Printf("%s %s  %s  %s  %s  %s\n",
				marker,
				ui.Dim.Render(run.CreatedAt.Local().Format(time.DateTime)),
				ui.Bold.Render(run.Repository),
				ui.White.Render(run.Username),
				ui.Cyan.Render(run.Permission),
				run.Outcome,
			)
		}
		return nil
	},
}
