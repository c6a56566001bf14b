package commands

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/voicehook/internal/app"
)

// NewUsageCommand creates the usage command showing today's API spend.
func NewUsageCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show today's LLM usage and budget",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showUsage(cmd.OutOrStdout(), container)
		},
	}
}

func showUsage(out io.Writer, container *app.Container) error {
	record := container.Usage.LoadToday()
	limit := container.Config.LLM.CostControl.DailyLimitUSD

	fmt.Fprintf(out, "Date:   %s\n", record.Date)
	fmt.Fprintf(out, "Cost:   $%.4f of $%.2f daily limit\n", record.CostUSD, limit)
	fmt.Fprintf(out, "Calls:  %d\n", record.Calls)
	fmt.Fprintf(out, "Tokens: %s in / %s out\n",
		humanize.Comma(int64(record.Tokens.Input)),
		humanize.Comma(int64(record.Tokens.Output)))

	if len(record.Models) > 0 {
		fmt.Fprintln(out, "Per model:")
		for model, mu := range record.Models {
			fmt.Fprintf(out, "  %s: %d calls, $%.4f, %s tokens\n",
				model, mu.Calls, mu.CostUSD, humanize.Comma(int64(mu.Tokens.Total)))
		}
	}

	if !container.Usage.IsUnderBudget(limit) {
		fmt.Fprintln(out, "Daily budget exhausted; summaries fall back to offline phrases.")
	}
	return nil
}
