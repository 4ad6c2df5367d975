package setup

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/minatolabs/minato/internal/auth"
	"github.com/minatolabs/minato/internal/llm"
	"github.com/minatolabs/minato/internal/ui"
)

// selectorModel runs a single ui.Selector to completion.
type selectorModel struct {
	selector ui.Selector
}

func (m selectorModel) Init() tea.Cmd {
	return nil
}

func (m selectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
		m.selector.Update(tea.KeyMsg{Type: tea.KeyEsc})
		return m, tea.Quit
	}

	sel, _ := m.selector.Update(msg)
	m.selector = *sel
	if !m.selector.Active() {
		return m, tea.Quit
	}
	return m, nil
}

func (m selectorModel) View() string {
	return m.selector.View()
}

func selectProvider(current llm.ProviderID) (llm.ProviderID, error) {
	items := make([]ui.SelectorItem, 0, len(llm.AllProviderIDs()))
	descriptions := map[llm.ProviderID]string{
		llm.ProviderAnthropic: "Anthropic Claude",
		llm.ProviderOpenAI:    "OpenAI GPT",
		llm.ProviderGemini:    "Google Gemini",
	}
	for _, id := range llm.AllProviderIDs() {
		items = append(items, ui.SelectorItem{
			ID:          string(id),
			Label:       string(id),
			Description: descriptions[id],
			Current:     id == current,
		})
	}

	m := selectorModel{selector: ui.NewSelector("Choose an LLM provider", items)}
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", err
	}

	finalSelector := final.(selectorModel).selector
	selected := finalSelector.Selected()
	if selected == "" {
		return "", fmt.Errorf("setup cancelled")
	}
	return llm.ProviderID(selected), nil
}

func readKey(prompt string) (string, error) {
	fmt.Print(prompt)
	keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read key: %w", err)
	}
	return string(keyBytes), nil
}

// RunPrompt walks through first-run configuration: pick a provider, store
// its API key, and optionally store tool backend keys. Keys already
// available from the environment are left alone.
func RunPrompt(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	manager, err := auth.NewManager(dataDir)
	if err != nil {
		return err
	}

	fmt.Println(ui.TitleStyle.Render("Welcome to minato"))
	fmt.Println()

	providerID, err := selectProvider(manager.GetDefaultProvider())
	if err != nil {
		return err
	}

	if !manager.HasCredential(providerID) {
		key, err := readKey(fmt.Sprintf("Enter API key for %s: ", providerID))
		if err != nil {
			return err
		}
		if key == "" {
			return fmt.Errorf("API key is required")
		}
		if err := manager.SetAPIKey(providerID, key); err != nil {
			return fmt.Errorf("failed to save credential: %w", err)
		}
	}

	if err := manager.SetDefaultProvider(providerID); err != nil {
		return err
	}
	fmt.Printf("%s %s connected\n\n", ui.SymbolCheck, providerID)

	fmt.Println("Tool backend keys (press enter to skip):")
	for _, service := range auth.AllServices() {
		if manager.HasServiceKey(service) {
			fmt.Printf("%s %s already configured\n", ui.SymbolCheck, service)
			continue
		}
		key, err := readKey(fmt.Sprintf("  %s key: ", service))
		if err != nil {
			return err
		}
		if key == "" {
			continue
		}
		if err := manager.SetServiceKey(service, key); err != nil {
			return fmt.Errorf("failed to save %s key: %w", service, err)
		}
	}

	return nil
}
