package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/voicehook/internal/app"
)

// NewSpeakCommand creates the speak command for testing voice output.
func NewSpeakCommand(container *app.Container) *cobra.Command {
	var listVoices bool

	cmd := &cobra.Command{
		Use:   "speak [text]",
		Short: "Speak a message through the configured voice",
		RunE: func(cmd *cobra.Command, args []string) error {
			if listVoices {
				return printVoices(cmd, container)
			}
			if len(args) == 0 {
				return fmt.Errorf("text required (or use --voices)")
			}
			return container.Speech.Speak(cmd.Context(), strings.Join(args, " "))
		},
	}

	cmd.Flags().BoolVar(&listVoices, "voices", false, "List installed voices instead of speaking")
	return cmd
}

func printVoices(cmd *cobra.Command, container *app.Container) error {
	voices, err := container.Speech.AvailableVoices(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list voices: %w", err)
	}
	for _, v := range voices {
		fmt.Fprintln(cmd.OutOrStdout(), v)
	}
	return nil
}
