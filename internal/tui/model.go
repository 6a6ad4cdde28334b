// Package tui is a terminal rendition of the portfolio chat widget: a
// toggle in the corner that opens the assistant panel.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"portfolio-backend/internal/assistant"
)

const (
	maxPanelWidth = 64
	toggleOpen    = " Chat "
	toggleClose   = "  X   "
	sendTimeout   = 90 * time.Second
)

// replyMsg is delivered when a send finishes. err is only set when the reply
// was dropped.
type replyMsg struct {
	err error
}

type refreshMsg time.Time

// Model is the Bubble Tea model for the chat widget.
type Model struct {
	ctrl    *assistant.Controller
	session *assistant.Session
	panel   *assistant.Panel

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	width  int
	height int

	// Index into assistant.SuggestedQueries, -1 when no chip is selected.
	chip int
	// Transcript length at the last redraw.
	seen       int
	refreshing bool

	cvURL string
	now   func() time.Time
	send  func(text string) tea.Cmd
}

// New builds the widget around ctrl. cvURL is shown when a reply offers the CV.
func New(ctrl *assistant.Controller, cvURL string) *Model {
	input := textinput.New()
	input.Placeholder = "Type your message..."
	input.CharLimit = 1000
	input.Focus()

	m := &Model{
		ctrl:     ctrl,
		session:  ctrl.Session(),
		input:    input,
		viewport: viewport.New(maxPanelWidth-4, 10),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		chip:     -1,
		cvURL:    cvURL,
		now:      time.Now,
	}
	m.panel = assistant.NewPanel(func() { m.viewport.GotoBottom() })
	m.send = m.sendCmd
	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) sendCmd(text string) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		return replyMsg{err: ctrl.Send(ctx, text)}
	}
}

func refreshCmd() tea.Cmd {
	return tea.Tick(assistant.RefreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.session.Close()
			return m, tea.Quit
		case "ctrl+o":
			m.panel.Toggle()
			return m, nil
		case "esc":
			if m.panel.IsOpen() {
				m.panel.Toggle()
			}
			return m, nil
		}

		if !m.panel.IsOpen() {
			if msg.String() == "q" {
				m.session.Close()
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.String() {
		case "tab":
			if m.session.ShowSuggestions() {
				m.chip = (m.chip + 1) % len(assistant.SuggestedQueries)
				m.refreshViewport()
			}
			return m, nil
		case "enter":
			return m, m.submit()
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.session.SetInput(m.input.Value())
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		switch msg.Type {
		case tea.MouseLeft:
			if m.toggleRegion().Contains(msg.X, msg.Y) {
				m.panel.Toggle()
			} else {
				m.panel.PointerDown(msg.X, msg.Y)
			}
		case tea.MouseWheelUp, tea.MouseWheelDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

	case replyMsg:
		m.syncTranscript()

	case refreshMsg:
		if m.session.ShouldRefresh() {
			m.refreshViewport()
			cmds = append(cmds, refreshCmd())
		} else {
			m.refreshing = false
		}

	case spinner.TickMsg:
		if m.session.Pending() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.syncTranscript()
	if !m.refreshing && m.session.ShouldRefresh() {
		m.refreshing = true
		cmds = append(cmds, refreshCmd())
	}
	return m, tea.Batch(cmds...)
}

// submit sends the input line, or the selected suggestion when the line is
// empty.
func (m *Model) submit() tea.Cmd {
	text := m.input.Value()
	if strings.TrimSpace(text) == "" && m.chip >= 0 && m.session.ShowSuggestions() {
		text = assistant.SuggestedQueries[m.chip]
	}
	if strings.TrimSpace(text) == "" || m.session.Pending() {
		return nil
	}

	m.input.Reset()
	m.session.SetInput("")
	m.chip = -1
	return tea.Batch(m.send(text), m.spinner.Tick)
}

func (m *Model) syncTranscript() {
	if n := m.session.Len(); n != m.seen {
		m.seen = n
		m.refreshViewport()
		m.panel.TranscriptChanged()
	}
}

func (m *Model) panelSize() (w, h int) {
	w = maxPanelWidth
	if m.width > 0 && m.width < w {
		w = m.width
	}
	h = m.height - 1
	if h < 8 {
		h = 8
	}
	return w, h
}

func (m *Model) toggleRegion() assistant.Rect {
	w := lipgloss.Width(toggleOpen)
	return assistant.Rect{X: m.width - w, Y: m.height - 1, W: w, H: 1}
}

func (m *Model) layout() {
	w, h := m.panelSize()
	m.panel.SetBoundary(assistant.Rect{X: m.width - w, Y: 0, W: w, H: h})
	m.panel.SetToggle(m.toggleRegion())

	// Border, padding, title, input and their spacers.
	m.viewport.Width = w - 4
	m.viewport.Height = h - 6
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	m.input.Width = w - 8
	m.refreshViewport()
}

func (m *Model) refreshViewport() {
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.transcript())
	if atBottom {
		m.viewport.GotoBottom()
	}
}

func (m *Model) transcript() string {
	width := m.viewport.Width
	if width < 10 {
		width = 10
	}
	body := lipgloss.NewStyle().Width(width)
	now := m.now()

	var b strings.Builder
	for _, msg := range m.session.Messages() {
		r := assistant.Render(msg)

		label := assistantStyle.Render("Ryan's assistant")
		if msg.Role == assistant.RoleUser {
			label = userStyle.Render("You")
		}
		fmt.Fprintf(&b, "%s %s\n", label, timeStyle.Render(assistant.FormatTime(msg.Timestamp, now)))
		b.WriteString(body.Render(strings.TrimSpace(r.Text)))
		b.WriteString("\n")
		if r.Download {
			b.WriteString(downloadStyle.Render("⬇ Download CV: " + m.cvURL))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.session.ShowSuggestions() {
		b.WriteString(dimStyle.Render("Suggested questions (tab to pick, enter to send):"))
		b.WriteString("\n")
		for i, q := range assistant.SuggestedQueries {
			if i == m.chip {
				b.WriteString(selectedChipStyle.Render("› " + q))
			} else {
				b.WriteString(chipStyle.Render("  " + q))
			}
			b.WriteString("\n")
		}
	}

	if m.session.Pending() {
		b.WriteString(m.spinner.View() + dimStyle.Render(" Thinking..."))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) View() string {
	toggle := toggleOpen
	if m.panel.IsOpen() {
		toggle = toggleClose
	}
	toggleRow := lipgloss.PlaceHorizontal(m.width, lipgloss.Right, toggleStyle.Render(toggle))

	w, h := m.panelSize()
	var main string
	if m.panel.IsOpen() {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Chat with Ryan's AI Assistant"),
			"",
			m.viewport.View(),
			"",
			m.input.View(),
		)
		box := panelStyle.Width(w - 2).Height(h - 2).Render(content)
		main = lipgloss.PlaceHorizontal(m.width, lipgloss.Right, box)
	} else {
		landing := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Ryan Radityatama · AI Engineer"),
			dimStyle.Render("ctrl+o or click Chat to talk to the assistant · q to quit"),
		)
		main = lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, landing)
	}

	return main + "\n" + toggleRow
}
