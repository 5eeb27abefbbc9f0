package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	cadencedto "mcad/internal/modules/cadence/dto"
	rosterdto "mcad/internal/modules/roster/dto"
	"mcad/internal/ui/theme"
	alertsview "mcad/internal/ui/views/alerts"
	rosterview "mcad/internal/ui/views/roster"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface this orchestration layer requires.

type rosterPort interface {
	List(ctx context.Context) (rosterdto.ListOutput, error)
	Refresh(ctx context.Context) (rosterdto.ListOutput, error)
}

type cadencePort interface {
	Toggle(ctx context.Context, input cadencedto.ToggleInput) (rosterdto.MutationOutput, error)
	FinishCycle(ctx context.Context, input cadencedto.FinishInput) (cadencedto.FinishOutput, error)
	Alerts(ctx context.Context) (cadencedto.AlertsOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabRoster tabID = iota
	tabAlerts
	tabCount
)

var tabLabels = [tabCount]string{"Roster", "Alerts"}

// ─── async messages ───────────────────────────────────────────────────────────

type toggleDoneMsg struct {
	out cadencedto.ToggleInput
	res rosterdto.MutationOutput
	err error
}

type finishDoneMsg struct {
	res cadencedto.FinishOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Quit    key.Binding
	Toggle  key.Binding
	Finish  key.Binding
	Refresh key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Toggle:  key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1-3", "toggle checkpoint")),
		Finish:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "finish cycle")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Toggle, k.Finish, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Toggle, k.Finish},
		{k.Refresh, k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing and the status
// line; cadence mutations requested by the roster view run through here so
// both tabs can reload afterwards.
type Model struct {
	cadence cadencePort

	rosterView rosterview.Model
	alertsView alertsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	status    string
	width     int
	height    int
}

func NewModel(roster rosterPort, cadence cadencePort) Model {
	return Model{
		cadence:    cadence,
		rosterView: rosterview.New(roster),
		alertsView: alertsview.New(cadence),
		keys:       defaultKeys(),
		help:       help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.rosterView.Init(), m.alertsView.Init())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		var rCmd, aCmd tea.Cmd
		m.rosterView, rCmd = m.rosterView.Update(msg)
		m.alertsView, aCmd = m.alertsView.Update(msg)
		return m, tea.Batch(rCmd, aCmd)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		}

	case rosterview.ToggleRequestMsg:
		input := cadencedto.ToggleInput{Selector: msg.Selector, Checkpoint: msg.Checkpoint}
		return m, func() tea.Msg {
			res, err := m.cadence.Toggle(context.Background(), input)
			return toggleDoneMsg{out: input, res: res, err: err}
		}

	case rosterview.FinishRequestMsg:
		input := cadencedto.FinishInput{Selector: msg.Selector}
		return m, func() tea.Msg {
			res, err := m.cadence.FinishCycle(context.Background(), input)
			return finishDoneMsg{res: res, err: err}
		}

	case toggleDoneMsg:
		if msg.err != nil {
			m.status = theme.Late.Render("toggle failed: " + msg.err.Error())
			return m, nil
		}
		m.status = fmt.Sprintf("checkpoint %d for %s", msg.out.Checkpoint, msg.res.Mentee.Name)
		if msg.res.SyncWarning != "" {
			m.status = theme.Hot.Render(m.status + " (" + msg.res.SyncWarning + ")")
		}
		return m, m.reloadViews()

	case rosterview.MenteesLoadedMsg:
		var cmd tea.Cmd
		m.rosterView, cmd = m.rosterView.Update(msg)
		return m, cmd

	case alertsview.AlertsLoadedMsg:
		var cmd tea.Cmd
		m.alertsView, cmd = m.alertsView.Update(msg)
		return m, cmd

	case finishDoneMsg:
		if msg.err != nil {
			m.status = theme.Late.Render("finish failed: " + msg.err.Error())
			return m, nil
		}
		m.status = fmt.Sprintf("cycle closed for %s, next session %s",
			msg.res.Mentee.Name, msg.res.Mentee.NextSession.Format("2006-01-02"))
		if msg.res.SyncWarning != "" {
			m.status = theme.Hot.Render(m.status + " (" + msg.res.SyncWarning + ")")
		}
		return m, m.reloadViews()
	}

	switch m.activeTab {
	case tabRoster:
		var cmd tea.Cmd
		m.rosterView, cmd = m.rosterView.Update(msg)
		return m, cmd
	case tabAlerts:
		var cmd tea.Cmd
		m.alertsView, cmd = m.alertsView.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	var body string
	switch m.activeTab {
	case tabRoster:
		body = m.rosterView.View()
	case tabAlerts:
		body = m.alertsView.View()
	}

	footer := m.status
	if m.showHelp {
		footer = m.help.FullHelpView(m.keys.FullHelp())
	} else if footer == "" {
		footer = theme.Muted.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), body, footer))
}

func (m Model) renderTabs() string {
	rendered := make([]string, 0, tabCount)
	for i, label := range tabLabels {
		style := theme.Muted
		if tabID(i) == m.activeTab {
			style = theme.Title
		}
		rendered = append(rendered, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, "  ", rendered[0], "  ", rendered[1])
}

func (m Model) reloadViews() tea.Cmd {
	return tea.Batch(m.rosterView.Init(), m.alertsView.Reload())
}
