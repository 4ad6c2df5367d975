package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/minatolabs/minato/internal/agent"
	"github.com/minatolabs/minato/internal/remind"
	"github.com/minatolabs/minato/internal/render"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	assistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("35"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	toolStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99"))

	alertStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

// chatMessage represents a message in the chat history
type chatMessage struct {
	role    string // "user", "assistant", "card", "tool", "error", "system", "alert"
	content string
	time    time.Time
}

// model represents the REPL state
type model struct {
	agent      *agent.Agent
	dispatcher *render.Dispatcher
	alerts     <-chan remind.Reminder
	textarea   textarea.Model
	viewport   viewport.Model
	messages   []chatMessage
	spinner    spinner.Model
	loading    bool
	width      int
	height     int
	ready      bool
	quitting   bool
}

// eventsMsg is sent when the agent finishes a turn
type eventsMsg struct {
	events []agent.ChatEvent
	err    error
}

// alertMsg is sent when a reminder comes due
type alertMsg remind.Reminder

// initialModel creates the initial model state
func initialModel(ag *agent.Agent, dispatcher *render.Dispatcher, alerts <-chan remind.Reminder) model {
	ta := textarea.New()
	ta.Placeholder = "Ask me anything..."
	ta.Focus()
	ta.CharLimit = 500
	ta.SetWidth(80)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return model{
		agent:      ag,
		dispatcher: dispatcher,
		alerts:     alerts,
		textarea:   ta,
		spinner:    sp,
		messages: []chatMessage{
			{
				role:    "system",
				content: "Welcome to minato! Ask me about the weather, news, recipes, or anything else.\nType your questions below. Use /help for commands, /quit to exit.",
				time:    time.Now(),
			},
		},
	}
}

// Init initializes the model
func (m model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick, m.waitForAlert())
}

// Update handles messages and updates state
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}

			// Handle commands
			if strings.HasPrefix(input, "/") {
				m.textarea.Reset()
				return m.handleCommand(input)
			}

			// Add user message
			m.messages = append(m.messages, chatMessage{
				role:    "user",
				content: input,
				time:    time.Now(),
			})

			// Clear input and start loading
			m.textarea.Reset()
			m.loading = true
			m.updateViewport()

			// Send to agent
			return m, m.sendToAgent(input)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-8)
			m.viewport.YPosition = 0
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 8
		}
		m.textarea.SetWidth(msg.Width - 4)
		m.updateViewport()

	case eventsMsg:
		m.loading = false
		if msg.err != nil {
			m.messages = append(m.messages, chatMessage{
				role:    "error",
				content: msg.err.Error(),
				time:    time.Now(),
			})
		} else {
			m.appendEvents(msg.events)
		}
		m.updateViewport()
		m.viewport.GotoBottom()

	case alertMsg:
		m.messages = append(m.messages, chatMessage{
			role:    "alert",
			content: fmt.Sprintf("Reminder due: %s", msg.Text),
			time:    time.Now(),
		})
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, m.waitForAlert()

	case spinner.TickMsg:
		m.spinner, spCmd = m.spinner.Update(msg)
		return m, spCmd
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd)
}

// appendEvents converts agent events into chat messages. Tool results go
// through the card dispatcher; assistant prose through glamour.
func (m *model) appendEvents(events []agent.ChatEvent) {
	for _, ev := range events {
		switch ev.Type {
		case "tool_call":
			m.messages = append(m.messages, chatMessage{
				role:    "tool",
				content: fmt.Sprintf("⚙ %s %s", ev.Tool, ev.Args),
				time:    time.Now(),
			})

		case "tool_result":
			if ev.IsError {
				m.messages = append(m.messages, chatMessage{
					role:    "error",
					content: ev.Content,
					time:    time.Now(),
				})
				continue
			}
			if card := m.dispatcher.DispatchJSON(string(ev.Result)); card != nil {
				m.messages = append(m.messages, chatMessage{
					role:    "card",
					content: card.Body,
					time:    time.Now(),
				})
			}

		case "content":
			m.messages = append(m.messages, chatMessage{
				role:    "assistant",
				content: ev.Content,
				time:    time.Now(),
			})
		}
	}
}

// View renders the UI
func (m model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	if !m.ready {
		return "Initializing...\n"
	}

	var b strings.Builder

	// Title
	title := titleStyle.Render("  minato - Research Assistant")
	b.WriteString(title + "\n\n")

	// Messages viewport
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	// Loading indicator or input
	if m.loading {
		b.WriteString(fmt.Sprintf("\n  %s Thinking...\n\n", m.spinner.View()))
	} else {
		b.WriteString("\n")
	}

	// Input area
	b.WriteString(m.textarea.View())
	b.WriteString("\n")

	// Help
	help := helpStyle.Render("  /help • /model • /clear • /quit • Ctrl+C to exit")
	b.WriteString(help)

	return b.String()
}

// updateViewport updates the viewport content with messages
func (m *model) updateViewport() {
	var content strings.Builder

	for _, msg := range m.messages {
		switch msg.role {
		case "user":
			content.WriteString(userStyle.Render("You: "))
			content.WriteString(msg.content)
		case "assistant":
			content.WriteString(assistantStyle.Render("minato:"))
			content.WriteString("\n")
			content.WriteString(m.renderProse(msg.content))
		case "card":
			content.WriteString(msg.content)
		case "tool":
			content.WriteString(toolStyle.Render(msg.content))
		case "error":
			content.WriteString(errorStyle.Render("Error: "))
			content.WriteString(msg.content)
		case "alert":
			content.WriteString(alertStyle.Render("⏰ " + msg.content))
		case "system":
			content.WriteString(helpStyle.Render(msg.content))
		}
		content.WriteString("\n\n")
	}

	m.viewport.SetContent(content.String())
}

// renderProse renders assistant markdown through glamour. Falls back to
// the raw text if the renderer cannot be built.
func (m *model) renderProse(s string) string {
	width := m.width - 4
	if width < 20 || width > 100 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return s
	}
	out, err := r.Render(s)
	if err != nil {
		return s
	}
	return strings.TrimRight(out, "\n")
}

// handleCommand handles slash commands
func (m model) handleCommand(input string) (tea.Model, tea.Cmd) {
	input = strings.TrimSpace(input)
	parts := strings.SplitN(input, " ", 2)
	cmd := strings.ToLower(parts[0])
	arg := ""
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}

	switch cmd {
	case "/quit", "/exit", "/q":
		m.quitting = true
		return m, tea.Quit

	case "/clear":
		m.messages = []chatMessage{
			{
				role:    "system",
				content: "Chat cleared. How can I help you?",
				time:    time.Now(),
			},
		}
		if m.agent != nil {
			m.agent.Reset()
		}
		m.updateViewport()
		return m, nil

	case "/model":
		return m.handleModelCommand(arg)

	case "/help", "/?":
		helpText := `Available commands:
  /help, /?       - Show this help
  /model          - List available models
  /model <id>     - Switch to a different model
  /clear          - Clear chat history
  /quit, /exit    - Exit minato

Example queries:
  "What's the weather in Lisbon?"
  "Top posts on r/golang today"
  "Find me a recipe for caldo verde"
  "Remind me to call the dentist tomorrow"`

		m.messages = append(m.messages, chatMessage{
			role:    "system",
			content: helpText,
			time:    time.Now(),
		})
		m.updateViewport()
		return m, nil

	default:
		m.messages = append(m.messages, chatMessage{
			role:    "error",
			content: fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd),
			time:    time.Now(),
		})
		m.updateViewport()
		return m, nil
	}
}

// handleModelCommand lists models or switches to a new one
func (m model) handleModelCommand(modelID string) (tea.Model, tea.Cmd) {
	if m.agent == nil {
		m.messages = append(m.messages, chatMessage{
			role:    "error",
			content: "Agent not initialized.",
			time:    time.Now(),
		})
		m.updateViewport()
		return m, nil
	}

	// No argument: list available models
	if modelID == "" {
		current := m.agent.CurrentModel()
		models := m.agent.ListModels()
		provider := m.agent.ProviderName()

		var b strings.Builder
		b.WriteString(fmt.Sprintf("Models for %s:\n", provider))
		for _, md := range models {
			marker := "  "
			if md.ID == current {
				marker = "▸ "
			}
			b.WriteString(fmt.Sprintf("  %s%-30s %s\n", marker, md.ID, md.Name))
		}
		b.WriteString(fmt.Sprintf("\nActive: %s", current))
		b.WriteString("\nUsage: /model <id>")

		m.messages = append(m.messages, chatMessage{
			role:    "system",
			content: b.String(),
			time:    time.Now(),
		})
		m.updateViewport()
		return m, nil
	}

	// Switch model
	if err := m.agent.SetModel(modelID); err != nil {
		m.messages = append(m.messages, chatMessage{
			role:    "error",
			content: fmt.Sprintf("Failed to switch model: %v", err),
			time:    time.Now(),
		})
		m.updateViewport()
		return m, nil
	}

	m.messages = append(m.messages, chatMessage{
		role:    "system",
		content: fmt.Sprintf("Switched to %s. Conversation history cleared.", modelID),
		time:    time.Now(),
	})
	m.updateViewport()
	return m, nil
}

// sendToAgent sends a message to the agent and returns a command
func (m model) sendToAgent(input string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
		defer cancel()

		events, err := m.agent.ChatWithEvents(ctx, input)
		return eventsMsg{
			events: events,
			err:    err,
		}
	}
}

// waitForAlert blocks on the reminder alert channel.
func (m model) waitForAlert() tea.Cmd {
	if m.alerts == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-m.alerts
		if !ok {
			return nil
		}
		return alertMsg(r)
	}
}

// RunREPL starts the interactive REPL
func RunREPL() error {
	ag, err := agent.New("")
	if err != nil {
		return fmt.Errorf("failed to create agent: %w", err)
	}
	defer ag.Close()

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	dispatcher := render.New(
		render.WithLogger(logger),
		render.WithPaymentLinks(paymentsEnabled()),
	)

	var alerts <-chan remind.Reminder
	if store := ag.ReminderStore(); store != nil {
		scheduler := remind.NewScheduler(store)
		if err := scheduler.Start(); err == nil {
			alerts = scheduler.Alerts()
			defer scheduler.Stop()
		}
	}

	p := tea.NewProgram(
		initialModel(ag, dispatcher, alerts),
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}

// paymentsEnabled reads the payment-link policy toggle. The flag default
// keeps cards on when neither config nor flag says otherwise.
func paymentsEnabled() bool {
	return viper.GetBool("payments.enabled")
}

// newLogger builds the app logger. Logs go to the data dir so they never
// corrupt the TUI; a broken log path degrades to a no-op logger.
func newLogger() *zap.Logger {
	dir := dataDirPath()
	if dir == "" {
		return zap.NewNop()
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{dir + "/minato.log"}
	cfg.ErrorOutputPaths = cfg.OutputPaths
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
