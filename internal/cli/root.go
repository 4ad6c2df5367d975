package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/minatolabs/minato/internal/setup"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "minato",
		Short: "Terminal research assistant",
		Long: `minato is a conversational assistant for the terminal.

It answers questions through an LLM agent whose tools fetch live data
(search, weather, news, recipes, feeds, reminders) and renders each
tool result as a styled card.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir := dataDirPath()
			if dataDir == "" {
				return fmt.Errorf("failed to get home directory")
			}

			// Check if setup is needed
			if setup.NeedsSetup(dataDir) {
				if !setup.IsInteractive() {
					setup.PrintEnvInstructions()
					return fmt.Errorf("setup required: run minato interactively or set environment variables")
				}
				if err := setup.RunPrompt(dataDir); err != nil {
					return fmt.Errorf("setup failed: %w", err)
				}
			}

			// Start the REPL
			return RunREPL()
		},
	}
)

func Execute() error {
	return rootCmd.Execute()
}

// dataDirPath resolves $HOME/.minato, or "" when the home directory is
// unknown.
func dataDirPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".minato")
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.minato/config.yaml)")
	rootCmd.PersistentFlags().Bool("payments", true, "Enable payment link cards")
	_ = viper.BindPFlag("payments.enabled", rootCmd.PersistentFlags().Lookup("payments"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".minato")
		if err := os.MkdirAll(configDir, 0700); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config directory: %v\n", err)
		}

		viper.AddConfigPath(configDir)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()

	// Silently ignore missing config file - it's optional
	_ = viper.ReadInConfig()
}
