// Package tui renders one match conversation in the terminal: the message
// viewport, the outgoing input, and the optional assistant panel. It is a
// pure projection of the session and assist controllers' state; all chat
// semantics live in those packages.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amoralabs/amora-chat/internal/assist"
	"github.com/amoralabs/amora-chat/internal/session"
)

const (
	headerHeight = 1
	statusHeight = 1
	inputHeight  = 1
	requestTime  = 15 * time.Second
)

// RefreshMsg is sent into the program whenever a controller's state
// changes out-of-band (poll tick applied, assistant snapshot arrived).
type RefreshMsg struct{}

type sendResultMsg struct{ err error }
type toggleResultMsg struct{ err error }
type askResultMsg struct{}

// Model is the bubbletea model for one chat session.
type Model struct {
	session *session.Controller
	assist  *assist.Controller // nil when entitlement denied the assistant
	selfID  string

	// assistDenied explains a missing assistant in the status line
	assistDenied string

	input    textinput.Model
	viewport viewport.Model
	spin     spinner.Model

	width, height int
	ready         bool
	status        string
	suggestIdx    int
	askMode       bool
}

// NewModel creates the chat view.
// assistCtl may be nil; deniedReason then explains why in the UI.
func NewModel(sessionCtl *session.Controller, assistCtl *assist.Controller, selfID, deniedReason string) *Model {
	ti := textinput.New()
	ti.Placeholder = "Type a message... (Enter to send)"
	ti.Focus()
	ti.CharLimit = 2000
	ti.Prompt = "> "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent))

	return &Model{
		session:      sessionCtl,
		assist:       assistCtl,
		selfID:       selfID,
		assistDenied: deniedReason,
		input:        ti,
		spin:         sp,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		vpHeight := m.height - headerHeight - statusHeight - inputHeight - m.panelHeight()
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.input.Width = m.width - 4
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case RefreshMsg:
		m.refreshViewport()
		return m, nil

	case sendResultMsg:
		if msg.err != nil {
			// Draft stays put; the user keeps what they typed
			m.status = "send failed: " + msg.err.Error()
		} else {
			m.input.Reset()
			m.status = ""
		}
		return m, nil

	case toggleResultMsg:
		if msg.err != nil {
			m.status = "assistant toggle failed: " + msg.err.Error()
		} else if m.assist != nil && !m.assist.Enabled() {
			m.status = "assistant is off"
		} else {
			m.status = ""
		}
		m.refreshViewport()
		return m, nil

	case askResultMsg:
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.SetDraft(m.input.Value())
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "enter":
		if m.askMode {
			return m, m.askCmd()
		}
		return m, m.sendCmd()

	case "ctrl+a":
		return m, m.toggleAssistCmd()

	case "ctrl+r":
		if m.assist != nil && m.assist.Enabled() {
			a := m.assist
			return m, func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), requestTime)
				defer cancel()
				a.RefreshSnapshots(ctx)
				return askResultMsg{}
			}
		}
		return m, nil

	case "tab":
		// Copy the highlighted suggestion into the draft; never auto-send
		if m.assist != nil && m.assist.Enabled() {
			if suggestions := m.assist.Suggestions(); len(suggestions) > 0 {
				m.input.SetValue(suggestions[m.suggestIdx%len(suggestions)])
				m.input.CursorEnd()
				m.session.SetDraft(m.input.Value())
				m.suggestIdx++
			}
		}
		return m, nil

	case "ctrl+t":
		if m.assist != nil && m.assist.Enabled() {
			m.askMode = !m.askMode
			if m.askMode {
				m.input.Placeholder = "Ask the assistant... (Enter to ask, Ctrl+T to cancel)"
			} else {
				m.input.Placeholder = "Type a message... (Enter to send)"
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.SetDraft(m.input.Value())
	return m, cmd
}

// sendCmd submits the draft through the send gate off the UI goroutine.
func (m *Model) sendCmd() tea.Cmd {
	if strings.TrimSpace(m.input.Value()) == "" {
		return nil
	}
	s := m.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTime)
		defer cancel()
		return sendResultMsg{err: s.Send(ctx)}
	}
}

func (m *Model) toggleAssistCmd() tea.Cmd {
	if m.assist == nil {
		m.status = "assistant unavailable: " + m.assistDenied
		return nil
	}
	a := m.assist
	target := !a.Enabled()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTime)
		defer cancel()
		return toggleResultMsg{err: a.Toggle(ctx, target)}
	}
}

func (m *Model) askCmd() tea.Cmd {
	question := m.input.Value()
	if question == "" || m.assist == nil {
		return nil
	}
	m.input.Reset()
	m.askMode = false
	m.input.Placeholder = "Type a message... (Enter to send)"
	a := m.assist
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTime)
		defer cancel()
		a.Ask(ctx, question)
		return askResultMsg{}
	}
}
