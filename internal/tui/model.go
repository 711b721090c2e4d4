package tui

import (
	"context"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"counsellor/internal/domain"
)

// CounsellorPort is the TUI-facing subset of the counsellor service.
type CounsellorPort interface {
	Respond(ctx context.Context, state *domain.SessionState, message string) string
}

type replyMsg struct{ text string }

// Model is the Bubble Tea model for the chat application.
type Model struct {
	service    CounsellorPort
	session    *domain.SessionState
	input      textinput.Model
	viewport   viewport.Model
	transcript []domain.Message
	pending    string
	status     string
	busy       bool
	ready      bool
}

// New creates a chat model bound to one session.
func New(service CounsellorPort, session *domain.SessionState) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Tell me about your interests and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service:    service,
		session:    session,
		input:      ti,
		viewport:   vp,
		transcript: snapshot(session.History),
		status:     "Ctrl+C to quit.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ch := chatBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 1 + 1 + ih + 1 // header, status, input, spacer
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = max(3, msg.Height-reserved-ch)
		m.refresh()
		return m, nil
	case replyMsg:
		// Respond has returned, so the session is no longer being written.
		m.busy = false
		m.pending = ""
		m.transcript = snapshot(m.session.History)
		m.status = "Ctrl+C to quit."
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.busy {
				return m, nil
			}
			m.busy = true
			m.pending = text
			m.status = "Thinking..."
			m.input.SetValue("")
			m.refresh()
			return m, m.respond(text)
		case "pgup", "pgdown", "up", "down":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the header, transcript, input box and status line.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Career Counsellor")
	chat := chatBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + chat + "\n" + input + "\n" + status
}

func (m Model) respond(text string) tea.Cmd {
	svc, st := m.service, m.session
	return func() tea.Msg {
		return replyMsg{text: svc.Respond(context.Background(), st, text)}
	}
}

func (m *Model) refresh() {
	m.viewport.SetContent(renderTranscript(m.transcript, m.pending, m.viewport.Width))
	m.viewport.GotoBottom()
}

var (
	chatBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	boldStyle      = lipgloss.NewStyle().Bold(true)
	boldRe         = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

func renderTranscript(msgs []domain.Message, pending string, width int) string {
	blocks := make([]string, 0, len(msgs)+1)
	for _, msg := range msgs {
		blocks = append(blocks, renderMessage(msg, width))
	}
	if pending != "" {
		blocks = append(blocks, renderMessage(domain.Message{Role: domain.RoleUser, Text: pending}, width))
	}
	if len(blocks) == 0 {
		return "Say hello to get started."
	}
	return strings.Join(blocks, "\n\n")
}

func renderMessage(msg domain.Message, width int) string {
	label := assistantStyle.Render("Counsellor")
	if msg.Role == domain.RoleUser {
		label = userStyle.Render("You")
	}
	body := renderBold(msg.Text)
	if width > 0 {
		body = lipgloss.NewStyle().Width(width).Render(body)
	}
	return label + "\n" + body
}

// renderBold turns **x** spans into bold text.
func renderBold(s string) string {
	return boldRe.ReplaceAllStringFunc(s, func(span string) string {
		return boldStyle.Render(span[2 : len(span)-2])
	})
}

func snapshot(history []domain.Message) []domain.Message {
	out := make([]domain.Message, len(history))
	copy(out, history)
	return out
}
