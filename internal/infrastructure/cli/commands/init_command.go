package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doeshing/voicehook/assets"
	"github.com/doeshing/voicehook/internal/app"
)

// NewInitCommand creates the init command writing the default config.
// Users can then edit ~/.voicehook/config.yaml to pick models and voice.
func NewInitCommand(container *app.Container) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.OutOrStdout(), container, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config")
	return cmd
}

func runInit(out io.Writer, container *app.Container, force bool) error {
	path := container.ConfigLoader.Path()

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s exists; use --force to overwrite", path)
	}

	if err := os.WriteFile(path, assets.DefaultConfigYAML, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	displayCompletionInstructions(out, path)
	return nil
}

func displayCompletionInstructions(out io.Writer, configPath string) {
	fmt.Fprintf(out, "Configuration written: %s\n\n", configPath)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Edit the config to pick your models and voice")
	fmt.Fprintln(out, "  2. Set required environment variables:")
	fmt.Fprintln(out, "     export GEMINI_API_KEY=your-key-here")
	fmt.Fprintln(out, "     export ANTHROPIC_API_KEY=your-key-here")
	fmt.Fprintln(out, "  3. Verify your setup:")
	fmt.Fprintln(out, "     voicehook doctor")
	fmt.Fprintln(out, "  4. Test voice output:")
	fmt.Fprintln(out, "     voicehook speak \"hello\"")
}
