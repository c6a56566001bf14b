// Package cli wires the cobra command tree. The root command with no
// subcommand reads a hook event from stdin, which is how the assistant
// invokes the binary.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/voicehook/internal/app"
	"github.com/doeshing/voicehook/internal/domain"
	"github.com/doeshing/voicehook/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	root := &cobra.Command{
		Use:   "voicehook",
		Short: "Voice notifications for coding-assistant hooks",
		Long:  "voicehook reads a hook event from stdin, summarizes the result with an LLM (with offline fallback) and speaks it aloud.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHook(cmd.Context(), cmd.InOrStdin(), container)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(commands.NewSpeakCommand(container))
	root.AddCommand(commands.NewUsageCommand(container))
	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewInitCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	return root, nil
}

// runHook decodes one hook event from stdin and hands it to the notify
// service. A decode failure is not fatal for the assistant: the hook
// contract requires exiting cleanly, so malformed input is only logged.
func runHook(ctx context.Context, in io.Reader, container *app.Container) error {
	var input domain.HookInput
	if err := json.NewDecoder(in).Decode(&input); err != nil {
		container.Logger.Warn("invalid hook input, skipping", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	spoken, err := container.NotifyService.HandleHook(ctx, input)
	if err != nil {
		return fmt.Errorf("hook handling failed: %w", err)
	}
	if spoken != "" {
		container.Logger.Info("notification spoken", map[string]interface{}{"text": spoken})
	}
	return nil
}
