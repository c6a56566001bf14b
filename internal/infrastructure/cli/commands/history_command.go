package commands

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/voicehook/internal/app"
)

const msgNoHistoryRecorded = "No notifications recorded yet."

// NewHistoryCommand creates the history command with its subcommands.
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect spoken notifications",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistoryClearCommand(container),
	)

	return historyCmd
}

func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listNotifications(cmd.OutOrStdout(), container, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", DefaultHistoryLimit, "Max entries to show")
	return cmd
}

func newHistoryClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.History == nil {
				return fmt.Errorf("history store unavailable")
			}
			return container.History.Clear()
		},
	}
}

func listNotifications(out io.Writer, container *app.Container, limit int) error {
	if container.History == nil {
		return fmt.Errorf("history store unavailable")
	}

	records, err := container.History.Recent(limit)
	if err != nil {
		return fmt.Errorf("failed to retrieve notifications: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, msgNoHistoryRecorded)
		return nil
	}

	for _, rec := range records {
		model := rec.Model
		if model == "" {
			model = rec.Source
		}
		fmt.Fprintf(out, "%s (%s) | %s | %s | %s\n",
			rec.Timestamp.Format(TimestampFormat),
			humanize.Time(rec.Timestamp),
			rec.OperationKind,
			model,
			rec.Summary)
	}

	return nil
}
