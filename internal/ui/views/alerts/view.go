package alerts

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	cadencedto "mcad/internal/modules/cadence/dto"
	"mcad/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type CadencePort interface {
	Alerts(ctx context.Context) (cadencedto.AlertsOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type AlertsLoadedMsg struct {
	Out cadencedto.AlertsOutput
	Err error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     CadencePort
	viewport viewport.Model
	spinner  spinner.Model
	out      cadencedto.AlertsOutput
	err      error
	loading  bool
	width    int
	height   int
}

func New(port CadencePort) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, viewport: vp, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.width - 6
		m.viewport.Height = m.height - 4

	case AlertsLoadedMsg:
		m.loading = false
		m.out = msg.Out
		m.err = msg.Err
		m.viewport.SetContent(m.renderAlerts())

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, tea.Batch(m.loadCmd(), m.spinner.Tick)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	var vCmd tea.Cmd
	m.viewport, vCmd = m.viewport.Update(msg)
	cmds = append(cmds, vCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return theme.Pane.Render(m.spinner.View() + " evaluating cycles")
	}
	return theme.PaneActive.Render(m.viewport.View())
}

// Reload fetches fresh alerts, e.g. after a toggle changed state.
func (m Model) Reload() tea.Cmd {
	return m.loadCmd()
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Alerts(context.Background())
		return AlertsLoadedMsg{Out: out, Err: err}
	}
}

func (m Model) renderAlerts() string {
	if m.err != nil {
		return theme.Late.Render("alerts unavailable: " + m.err.Error())
	}
	var b strings.Builder
	b.WriteString(theme.Title.Render("Alerts for "+m.out.Today.Format("2006-01-02")) + "\n\n")
	if len(m.out.Alerts) == 0 && len(m.out.DueToday) == 0 {
		b.WriteString(theme.Done.Render("all caught up") + "\n")
	}
	for _, alert := range m.out.Alerts {
		b.WriteString(fmt.Sprintf("%s %s: %s\n",
			theme.Late.Render(fmt.Sprintf("P%d", alert.Checkpoint)),
			alert.MenteeName,
			alert.Reason))
	}
	for _, due := range m.out.DueToday {
		b.WriteString(fmt.Sprintf("%s %s: %s\n",
			theme.Due.Render(fmt.Sprintf("P%d", due.Checkpoint)),
			due.MenteeName,
			due.Reason))
	}
	if m.out.Warning != "" {
		b.WriteString("\n" + theme.Hot.Render("! "+m.out.Warning))
	}
	return b.String()
}
