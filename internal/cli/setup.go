package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minatolabs/minato/internal/setup"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure minato credentials",
	Long:  `Run the interactive first-run prompt to configure an LLM provider and tool backend keys.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !setup.IsInteractive() {
			setup.PrintEnvInstructions()
			return fmt.Errorf("setup requires an interactive terminal")
		}

		dataDir := dataDirPath()
		if dataDir == "" {
			return fmt.Errorf("failed to get home directory")
		}

		if err := setup.RunPrompt(dataDir); err != nil {
			return fmt.Errorf("setup failed: %w", err)
		}

		fmt.Println("\nSetup complete! Run 'minato' to start.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
