package room

import (
	"errors"

	"github.com/bnema/meetroom-cli/internal/application"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var ErrUnexpectedRoomModel = errors.New("unexpected final bubbletea model type")

// runMsg carries loop work into Update, so timer callbacks and key presses
// share the program goroutine.
type runMsg struct {
	fn func()
}

// Dispatcher adapts a program Send function into a loop dispatch function.
func Dispatcher(send func(tea.Msg)) func(func()) {
	return func(fn func()) {
		send(runMsg{fn: fn})
	}
}

type Model struct {
	room    *application.MeetingRoom
	spinner spinner.Model
	keys    keyMap
	help    help.Model
	styles  styles
	status  string
	closed  bool
}

func NewModel(room *application.MeetingRoom) Model {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return Model{
		room:    room,
		spinner: s,
		keys:    defaultKeyMap(),
		help:    help.New(),
		styles:  newStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runMsg:
		if !m.closed {
			msg.fn()
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.room.Close()
		m.closed = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Join):
		m.room.ToggleJoined()
	case key.Matches(msg, m.keys.Extend):
		if err := m.room.Extend(); err != nil {
			m.status = err.Error()
		}
	case key.Matches(msg, m.keys.Layout):
		m.room.CycleLayout()
	case key.Matches(msg, m.keys.Participants):
		m.room.ToggleParticipants()
	case key.Matches(msg, m.keys.EndCall):
		if err := m.room.EndCall(); err != nil {
			m.status = err.Error()
		}
	case key.Matches(msg, m.keys.Dismiss):
		m.room.DismissToasts()
	}

	return m, nil
}

func (m Model) View() string {
	if m.closed {
		return ""
	}

	parts := []string{renderView(m.room.Snapshot(), m.spinner.View(), m.styles)}
	if m.status != "" {
		parts = append(parts, m.styles.section.Render(m.styles.status.Render(m.status)))
	}
	parts = append(parts, m.styles.section.Render(m.help.View(m.keys)))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) Closed() bool {
	return m.closed
}
