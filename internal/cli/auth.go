package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/minatolabs/minato/internal/auth"
	"github.com/minatolabs/minato/internal/llm"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage provider and service API keys",
	Long:  `Connect, disconnect, and manage API keys for LLM providers and tool backends.`,
}

var authConnectCmd = &cobra.Command{
	Use:   "connect [provider]",
	Short: "Connect to an LLM provider",
	Long: `Connect to an LLM provider by providing an API key.

Supported providers:
  anthropic  - Anthropic Claude
  openai     - OpenAI GPT
  gemini     - Google Gemini`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAuthConnect,
}

var authServiceCmd = &cobra.Command{
	Use:   "service <name>",
	Short: "Store an API key for a tool backend",
	Long: `Store an API key for a tool backend.

Supported services:
  serper  - web, news, product, video, and lead search
  pexels  - stock photo search
  stripe  - payment link creation`,
	Args: cobra.ExactArgs(1),
	RunE: runAuthService,
}

var authListCmd = &cobra.Command{
	Use:   "list",
	Short: "List connected providers and services",
	RunE:  runAuthList,
}

var authDisconnectCmd = &cobra.Command{
	Use:   "disconnect <provider>",
	Short: "Disconnect from a provider",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuthDisconnect,
}

var authDefaultCmd = &cobra.Command{
	Use:   "default [provider]",
	Short: "Get or set the default provider",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAuthDefault,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authConnectCmd)
	authCmd.AddCommand(authServiceCmd)
	authCmd.AddCommand(authListCmd)
	authCmd.AddCommand(authDisconnectCmd)
	authCmd.AddCommand(authDefaultCmd)

	authConnectCmd.Flags().String("key", "", "API key (will prompt if not provided)")
	authServiceCmd.Flags().String("key", "", "API key (will prompt if not provided)")
}

func getAuthManager() (*auth.Manager, error) {
	dir := dataDirPath()
	if dir == "" {
		return nil, fmt.Errorf("cannot resolve data directory")
	}
	return auth.NewManager(dir)
}

func runAuthConnect(cmd *cobra.Command, args []string) error {
	var providerID llm.ProviderID

	if len(args) == 0 {
		// Interactive provider selection
		fmt.Println("Select a provider to connect:")
		providers := llm.AllProviderIDs()
		for i, p := range providers {
			fmt.Printf("  %d. %s\n", i+1, p)
		}
		fmt.Print("\nEnter number: ")

		var choice int
		_, _ = fmt.Scanln(&choice)
		if choice < 1 || choice > len(providers) {
			return fmt.Errorf("invalid selection")
		}
		providerID = providers[choice-1]
	} else {
		providerID = llm.ProviderID(strings.ToLower(args[0]))
	}

	// Validate provider
	validProvider := false
	for _, p := range llm.AllProviderIDs() {
		if p == providerID {
			validProvider = true
			break
		}
	}
	if !validProvider {
		return fmt.Errorf("unknown provider: %s", providerID)
	}

	manager, err := getAuthManager()
	if err != nil {
		return err
	}

	apiKey, _ := cmd.Flags().GetString("key")
	if apiKey == "" {
		if envVar := llm.EnvVarForProvider(providerID); envVar != "" {
			fmt.Printf("Tip: You can also set the %s environment variable\n\n", envVar)
		}

		apiKey, err = readSecret(fmt.Sprintf("Enter API key for %s: ", providerID))
		if err != nil {
			return err
		}
	}

	if apiKey == "" {
		return fmt.Errorf("API key is required")
	}

	if err := manager.SetAPIKey(providerID, apiKey); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}

	fmt.Printf("✓ Successfully connected to %s\n", providerID)
	return nil
}

func runAuthService(cmd *cobra.Command, args []string) error {
	service := auth.Service(strings.ToLower(args[0]))

	valid := false
	for _, s := range auth.AllServices() {
		if s == service {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown service: %s", service)
	}

	manager, err := getAuthManager()
	if err != nil {
		return err
	}

	apiKey, _ := cmd.Flags().GetString("key")
	if apiKey == "" {
		if envVar := auth.EnvVarForService(service); envVar != "" {
			fmt.Printf("Tip: You can also set the %s environment variable\n\n", envVar)
		}

		apiKey, err = readSecret(fmt.Sprintf("Enter API key for %s: ", service))
		if err != nil {
			return err
		}
	}

	if apiKey == "" {
		return fmt.Errorf("API key is required")
	}

	if err := manager.SetServiceKey(service, apiKey); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}

	fmt.Printf("✓ Saved %s key\n", service)
	return nil
}

// readSecret prompts for a secret without echoing it.
func readSecret(prompt string) (string, error) {
	fmt.Print(prompt)
	keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}
	return string(keyBytes), nil
}

func runAuthList(cmd *cobra.Command, args []string) error {
	manager, err := getAuthManager()
	if err != nil {
		return err
	}

	connected := manager.ListConnected()
	defaultProvider := manager.GetDefaultProvider()

	if len(connected) == 0 {
		fmt.Println("No providers connected.")
		fmt.Println("\nUse 'minato auth connect <provider>' to connect a provider.")
		fmt.Println("Or set environment variables:")
		for _, id := range llm.AllProviderIDs() {
			envVar := llm.EnvVarForProvider(id)
			if envVar != "" {
				fmt.Printf("  %s=%s\n", envVar, id)
			}
		}
		return nil
	}

	fmt.Println("Connected providers:")
	for _, id := range connected {
		marker := "  "
		if id == defaultProvider {
			marker = "* "
		}
		fmt.Printf("%s%s\n", marker, id)
	}
	fmt.Printf("\n* = default provider\n")

	fmt.Println("\nTool backends:")
	for _, s := range auth.AllServices() {
		status := "not configured"
		if manager.HasServiceKey(s) {
			status = "configured"
		}
		fmt.Printf("  %-8s %s\n", s, status)
	}
	return nil
}

func runAuthDisconnect(cmd *cobra.Command, args []string) error {
	providerID := llm.ProviderID(strings.ToLower(args[0]))

	manager, err := getAuthManager()
	if err != nil {
		return err
	}

	if err := manager.RemoveCredential(providerID); err != nil {
		return fmt.Errorf("failed to disconnect: %w", err)
	}

	fmt.Printf("Disconnected from %s\n", providerID)
	return nil
}

func runAuthDefault(cmd *cobra.Command, args []string) error {
	manager, err := getAuthManager()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		// Show current default
		defaultProvider := manager.GetDefaultProvider()
		fmt.Printf("Default provider: %s\n", defaultProvider)
		return nil
	}

	// Set default
	providerID := llm.ProviderID(strings.ToLower(args[0]))

	// Check if connected
	if !manager.HasCredential(providerID) {
		return fmt.Errorf("provider %s is not connected. Connect it first with 'minato auth connect %s'", providerID, providerID)
	}

	if err := manager.SetDefaultProvider(providerID); err != nil {
		return fmt.Errorf("failed to set default provider: %w", err)
	}

	fmt.Printf("Default provider set to: %s\n", providerID)
	return nil
}
