package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultLogHeight = 12
	maxLogLines      = 500
)

var (
	primaryColor = lipgloss.Color("#7D56F4")
	successColor = lipgloss.Color("#04B575")
	warningColor = lipgloss.Color("#FFB454")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	readyStyle = lipgloss.NewStyle().Foreground(successColor)
	draftStyle = lipgloss.NewStyle().Foreground(warningColor)
	helpStyle  = lipgloss.NewStyle().Faint(true)
)

type sessionKeyMap struct {
	Submit key.Binding
	Prev   key.Binding
	Next   key.Binding
	Quit   key.Binding
}

var sessionKeys = sessionKeyMap{
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
	Prev:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous command")),
	Next:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next command")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
}

// sessionModel is the terminal form around a session. Command output is
// collected into a scrolling log shown above the input line.
type sessionModel struct {
	session *session
	input   textinput.Model
	out     *bytes.Buffer

	log     []string
	history []string
	histPos int
	height  int
}

func newSessionModel(s *session) *sessionModel {
	out := &bytes.Buffer{}
	s.out = out

	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "help"
	input.CharLimit = 256
	input.Width = 72
	input.Focus()

	m := &sessionModel{session: s, input: input, out: out}
	m.appendLog("Type 'help' for commands.")
	return m
}

func (m *sessionModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, sessionKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, sessionKeys.Submit):
			return m.submit()
		case key.Matches(msg, sessionKeys.Prev):
			m.recall(-1)
			return m, nil
		case key.Matches(msg, sessionKeys.Next):
			m.recall(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *sessionModel) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if line == "" {
		return m, nil
	}

	m.history = append(m.history, line)
	m.histPos = len(m.history)
	m.appendLog("> " + line)

	quit := m.session.handle(line)
	m.appendLog(strings.Split(strings.TrimRight(m.out.String(), "\n"), "\n")...)
	m.out.Reset()

	if quit {
		return m, tea.Quit
	}
	return m, nil
}

// recall walks the command history; stepping past the newest entry clears
// the input.
func (m *sessionModel) recall(step int) {
	if len(m.history) == 0 {
		return
	}
	m.histPos += step
	if m.histPos < 0 {
		m.histPos = 0
	}
	if m.histPos >= len(m.history) {
		m.histPos = len(m.history)
		m.input.Reset()
		return
	}
	m.input.SetValue(m.history[m.histPos])
	m.input.CursorEnd()
}

func (m *sessionModel) appendLog(lines ...string) {
	for _, l := range lines {
		if l != "" {
			m.log = append(m.log, l)
		}
	}
	if len(m.log) > maxLogLines {
		m.log = m.log[len(m.log)-maxLogLines:]
	}
}

func (m *sessionModel) logHeight() int {
	// Title, invoice line, totals, input, help and spacing take eight rows.
	if h := m.height - 8; h > 0 {
		return h
	}
	return defaultLogHeight
}

func (m *sessionModel) View() string {
	snap := m.session.form.Snapshot()

	var b strings.Builder
	b.WriteString(titleStyle.Render("NDIS Invoice") + "\n")
	b.WriteString(fmt.Sprintf("  %s | %s | %d day(s)\n\n",
		snap.Meta.InvoiceNumber, snap.Meta.ClientName, len(snap.Days)))

	log := m.log
	if h := m.logHeight(); len(log) > h {
		log = log[len(log)-h:]
	}
	for _, l := range log {
		b.WriteString("  " + l + "\n")
	}
	b.WriteString("\n")

	totals := m.session.svc.FormatTotals(snap.Totals)
	if snap.Ready {
		b.WriteString(readyStyle.Render("  "+totals+" | ready to export") + "\n")
	} else {
		b.WriteString(draftStyle.Render(fmt.Sprintf("  %s | missing: %s", totals, strings.Join(snap.Missing, ", "))) + "\n")
	}

	b.WriteString(m.input.View() + "\n")
	b.WriteString(helpStyle.Render("  enter: run  ↑/↓: history  esc: quit  help: commands"))
	return b.String()
}
