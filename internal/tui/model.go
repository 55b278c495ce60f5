// Package tui is the interactive chat surface over a session.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"papertutor/internal/models"
	"papertutor/internal/session"
)

// SessionPort is the TUI-facing subset of the session orchestrator.
type SessionPort interface {
	Load(ctx context.Context, path string) (int, error)
	Ask(ctx context.Context, question string) (string, []models.RetrievalResult, error)
	Summarize(ctx context.Context) (string, error)
	Clear()
	HasDocument() bool
	DocumentName() string
	History() []models.ChatMessage
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	contextStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	chatBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Model is the Bubble Tea model for the chat interface.
type Model struct {
	service   SessionPort
	input     textinput.Model
	viewport  viewport.Model
	retrieved []models.RetrievalResult
	status    string
	ready     bool
}

// New creates the chat model. An initial status line lets main report the
// result of a startup document load.
func New(service SessionPort, status string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about the paper, or /load <path>, /summary, /clear, /quit"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	if status == "" {
		status = "No document loaded. Use /load <path> to begin."
	}
	return Model{service: service, input: ti, viewport: vp, status: status}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events. Session calls run synchronously:
// every user action completes before the next frame, matching the
// request-per-action execution model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ch := chatBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header, status, input frame, spacer
		vh := msg.Height - reserved - ch
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderTranscript())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			if line == "" {
				return m, nil
			}
			m.input.SetValue("")
			if cmd := m.handleLine(line); cmd != nil {
				return m, cmd
			}
			m.viewport.SetContent(m.renderTranscript())
			m.viewport.GotoBottom()
			return m, nil
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleLine(line string) tea.Cmd {
	ctx := context.Background()
	switch {
	case line == "/quit":
		return tea.Quit
	case line == "/clear":
		m.service.Clear()
		m.retrieved = nil
		m.status = "Conversation cleared."
	case line == "/summary":
		if _, err := m.service.Summarize(ctx); err != nil {
			m.status = warnText(err)
		} else {
			m.retrieved = nil
			m.status = "Summary generated."
		}
	case strings.HasPrefix(line, "/load "):
		path := strings.TrimSpace(strings.TrimPrefix(line, "/load "))
		n, err := m.service.Load(ctx, path)
		if err != nil {
			m.status = warnText(err)
		} else {
			m.retrieved = nil
			m.status = fmt.Sprintf("Indexed %q (%d chunks). Ask away.", m.service.DocumentName(), n)
		}
	case strings.HasPrefix(line, "/"):
		m.status = "Unknown command. Try /load <path>, /summary, /clear or /quit."
	default:
		_, retrieved, err := m.service.Ask(ctx, line)
		if err != nil {
			m.status = warnText(err)
		} else {
			m.retrieved = retrieved
			m.status = "Answered. Retrieved context shown below the reply."
		}
	}
	return nil
}

// warnText converts guard errors into the user-visible warnings; anything
// else is surfaced verbatim.
func warnText(err error) string {
	switch {
	case errors.Is(err, session.ErrNoDocument):
		return "Please upload a research paper first (/load <path>)."
	case errors.Is(err, session.ErrNoChunks):
		return "That document contained no usable text; nothing was loaded."
	default:
		return "Error: " + err.Error()
	}
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	title := "Intelligent AI Research Tutor"
	if m.service.HasDocument() {
		title += "  [" + m.service.DocumentName() + "]"
	}
	header := headerStyle.Render(title)
	chat := chatBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + chat + "\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	history := m.service.History()
	if len(history) == 0 {
		return "Grounded assistant for understanding research papers.\n\nLoad a paper and start asking."
	}
	var b strings.Builder
	for i, msg := range history {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch msg.Role {
		case models.RoleUser:
			b.WriteString(userStyle.Render("You: "))
		default:
			b.WriteString(assistantStyle.Render("Tutor: "))
		}
		b.WriteString(msg.Content)
	}
	if len(m.retrieved) > 0 {
		b.WriteString("\n\n")
		b.WriteString(contextStyle.Render(renderRetrieved(m.retrieved)))
	}
	return b.String()
}

func renderRetrieved(results []models.RetrievalResult) string {
	var b strings.Builder
	b.WriteString("Retrieved context:")
	for _, r := range results {
		fmt.Fprintf(&b, "\n  %d. (Page %d, distance %.3f) %s", r.Rank, r.PageNumber, r.Distance, r.Content)
	}
	return b.String()
}
