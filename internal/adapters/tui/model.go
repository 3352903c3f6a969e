package tui

import (
	"bytes"
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/plein/internal/core/domain"
	"go.trai.ch/plein/internal/ui/style"
)

const (
	taskListWidthRatio = 0.3
	logPaneBorderWidth = 4
)

// taskNode is a task shown in the list, with the output it produced so far.
type taskNode struct {
	name   string
	status domain.TaskStatus
	logs   bytes.Buffer
}

// Model is the Bubble Tea model of a run.
type Model struct {
	tasks      []*taskNode
	byName     map[string]*taskNode
	active     string
	viewport   viewport.Model
	spinner    spinner.Model
	autoScroll bool
	cancel     context.CancelFunc
	done       bool
}

// NewModel creates a model. cancel is called when the user interrupts the run; it may be nil.
func NewModel(cancel context.CancelFunc) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(style.Iris)

	return &Model{
		byName:     make(map[string]*taskNode),
		viewport:   viewport.New(0, 0),
		spinner:    s,
		autoScroll: true,
		cancel:     cancel,
	}
}

// Init starts the spinner.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles incoming messages and updates the model state.
//
//nolint:cyclop // One case per message type.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// Split screen: 30% for task list, 70% for logs
		listWidth := int(float64(msg.Width) * taskListWidthRatio)
		m.viewport.Width = msg.Width - listWidth - logPaneBorderWidth
		m.viewport.Height = msg.Height - 2
		m.refresh()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case MsgTaskStart:
		node := m.node(msg.Name)
		node.status = domain.StatusRunning
		m.focus(msg.Name)

	case MsgTaskLog:
		node := m.node(msg.Name)
		node.logs.Write(msg.Data)
		if node.name == m.active {
			m.refresh()
		}

	case MsgTaskComplete:
		node := m.node(msg.Name)
		if msg.Err != nil {
			node.status = domain.StatusFailed
			m.focus(msg.Name)
		} else {
			node.status = domain.StatusComplete
		}

	case MsgDone:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if m.cancel != nil {
			m.cancel()
		}
		return m, nil
	case "q":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	m.autoScroll = m.viewport.AtBottom()
	return m, cmd
}

// node returns the task named name, adding it to the list on first sight.
func (m *Model) node(name string) *taskNode {
	if n, ok := m.byName[name]; ok {
		return n
	}
	n := &taskNode{name: name, status: domain.StatusPending}
	m.tasks = append(m.tasks, n)
	m.byName[name] = n
	return n
}

// focus shows the output of the task named name.
func (m *Model) focus(name string) {
	m.active = name
	m.autoScroll = true
	m.refresh()
}

func (m *Model) refresh() {
	node, ok := m.byName[m.active]
	if !ok {
		return
	}
	m.viewport.SetContent(node.logs.String())
	if m.autoScroll {
		m.viewport.GotoBottom()
	}
}
