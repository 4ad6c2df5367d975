package setup

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/minatolabs/minato/internal/auth"
	"github.com/minatolabs/minato/internal/llm"
)

// SetupStatus represents the current setup state
type SetupStatus struct {
	HasProvider bool
	IsComplete  bool
	ProviderID  llm.ProviderID
	Services    []auth.Service
}

// DetectSetupStatus checks the current setup state
func DetectSetupStatus(dataDir string) (*SetupStatus, error) {
	status := &SetupStatus{}

	authManager, err := auth.NewManager(dataDir)
	if err != nil {
		return status, nil // No auth setup yet
	}

	connected := authManager.ListConnected()
	if len(connected) > 0 {
		status.HasProvider = true
		status.ProviderID = authManager.GetDefaultProvider()
		if status.ProviderID == "" {
			status.ProviderID = connected[0]
		}
	}

	for _, s := range auth.AllServices() {
		if authManager.HasServiceKey(s) {
			status.Services = append(status.Services, s)
		}
	}

	// A provider is enough to chat; tool backend keys are optional.
	status.IsComplete = status.HasProvider

	return status, nil
}

// NeedsSetup returns true if interactive setup should run
func NeedsSetup(dataDir string) bool {
	status, _ := DetectSetupStatus(dataDir)
	return !status.IsComplete
}

// GetDataDir returns the minato data directory path
func GetDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".minato"), nil
}

// IsInteractive returns true if running in a terminal
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// PrintEnvInstructions prints setup guidance for non-interactive environments
func PrintEnvInstructions() {
	fmt.Println("minato requires an LLM provider to function.")
	fmt.Println("")
	fmt.Println("Set one of these environment variables:")
	fmt.Println("  ANTHROPIC_API_KEY=sk-ant-...")
	fmt.Println("  OPENAI_API_KEY=sk-...")
	fmt.Println("  GOOGLE_API_KEY=...")
	fmt.Println("")
	fmt.Println("Tool backends are optional and configured the same way:")
	fmt.Println("  SERPER_API_KEY=...   (web, news, product, video, and lead search)")
	fmt.Println("  PEXELS_API_KEY=...   (stock photo search)")
	fmt.Println("  STRIPE_API_KEY=...   (payment links)")
	fmt.Println("")
	fmt.Println("Or run minato interactively to complete guided setup.")
}
