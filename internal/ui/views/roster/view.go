package roster

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	rosterdto "mcad/internal/modules/roster/dto"
	"mcad/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type RosterPort interface {
	List(ctx context.Context) (rosterdto.ListOutput, error)
	Refresh(ctx context.Context) (rosterdto.ListOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type MenteesLoadedMsg struct {
	Mentees []rosterdto.MenteeOutput
	Warning string
	Err     error
}

// ToggleRequestMsg asks the app layer to flip one checkpoint for the
// highlighted mentee.
type ToggleRequestMsg struct {
	Selector   string
	Checkpoint int
}

// FinishRequestMsg asks the app layer to close the highlighted cycle.
type FinishRequestMsg struct {
	Selector string
}

// ─── list item ───────────────────────────────────────────────────────────────

type menteeItem struct {
	mentee rosterdto.MenteeOutput
}

func (i menteeItem) Title() string { return i.mentee.Name }

func (i menteeItem) Description() string {
	if !i.mentee.DatesValid {
		return "dates unreadable"
	}
	return fmt.Sprintf("%s  session %s > %s",
		checkmarks(i.mentee.Checkpoints),
		i.mentee.LastSession.Format("Jan 02"),
		i.mentee.NextSession.Format("Jan 02"))
}

func (i menteeItem) FilterValue() string { return i.mentee.Name }

func checkmarks(checkpoints [3]bool) string {
	var b strings.Builder
	for idx, done := range checkpoints {
		if done {
			b.WriteString(fmt.Sprintf("[%d]", idx+1))
		} else {
			b.WriteString("[ ]")
		}
	}
	return b.String()
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    RosterPort
	list    list.Model
	detail  viewport.Model
	spinner spinner.Model
	warning string
	loading bool
	width   int
	height  int
}

func New(port RosterPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Mentees"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		detail:  vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(false), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case MenteesLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Mentees: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Mentees"
		m.warning = msg.Warning
		items := make([]list.Item, len(msg.Mentees))
		for i, mentee := range msg.Mentees {
			items[i] = menteeItem{mentee: mentee}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case tea.KeyMsg:
		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "1", "2", "3":
				if selected, ok := m.Selected(); ok {
					checkpoint := int(msg.String()[0] - '0')
					return m, func() tea.Msg {
						return ToggleRequestMsg{Selector: selected.ID, Checkpoint: checkpoint}
					}
				}
			case "f":
				if selected, ok := m.Selected(); ok {
					return m, func() tea.Msg {
						return FinishRequestMsg{Selector: selected.ID}
					}
				}
			case "r":
				m.loading = true
				return m, tea.Batch(m.loadCmd(true), m.spinner.Tick)
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		m.detail.SetContent(m.renderDetail())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return theme.Pane.Render(m.spinner.View() + " loading roster")
	}
	left := theme.PaneActive.Width(m.listWidth()).Render(m.list.View())
	right := theme.Pane.Width(m.detailWidth()).Render(m.detail.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	if m.warning != "" {
		return lipgloss.JoinVertical(lipgloss.Left, body, theme.Hot.Render("! "+m.warning))
	}
	return body
}

// Selected returns the highlighted mentee.
func (m Model) Selected() (rosterdto.MenteeOutput, bool) {
	item, ok := m.list.SelectedItem().(menteeItem)
	if !ok {
		return rosterdto.MenteeOutput{}, false
	}
	return item.mentee, true
}

func (m Model) loadCmd(force bool) tea.Cmd {
	return func() tea.Msg {
		var (
			out rosterdto.ListOutput
			err error
		)
		if force {
			out, err = m.port.Refresh(context.Background())
		} else {
			out, err = m.port.List(context.Background())
		}
		return MenteesLoadedMsg{Mentees: out.Mentees, Warning: out.Warning, Err: err}
	}
}

func (m *Model) resize() {
	listHeight := m.height - 4
	if listHeight < 3 {
		listHeight = 3
	}
	m.list.SetSize(m.listWidth(), listHeight)
	m.detail.Width = m.detailWidth()
	m.detail.Height = listHeight
}

func (m Model) listWidth() int {
	w := m.width / 2
	if w < 30 {
		w = 30
	}
	return w
}

func (m Model) detailWidth() int {
	w := m.width - m.listWidth() - 6
	if w < 20 {
		w = 20
	}
	return w
}

var checkpointLabels = [3]string{"encouragement sent", "report received", "pre-work sent"}

func (m Model) renderDetail() string {
	selected, ok := m.Selected()
	if !ok {
		return theme.Muted.Render("no mentee selected")
	}
	var b strings.Builder
	b.WriteString(theme.Title.Render(selected.Name) + "\n\n")
	if selected.ContactLink != "" {
		b.WriteString(theme.Muted.Render(selected.ContactLink) + "\n")
	}
	if selected.DatesValid {
		b.WriteString(fmt.Sprintf("last session  %s\n", selected.LastSession.Format("2006-01-02")))
		b.WriteString(fmt.Sprintf("next session  %s\n", selected.NextSession.Format("2006-01-02")))
	} else {
		b.WriteString(theme.Late.Render("session dates unreadable") + "\n")
	}
	b.WriteString(fmt.Sprintf("report day    %s\n\n", selected.ReportWeekday))
	for i, label := range checkpointLabels {
		mark := theme.Muted.Render("[ ]")
		if selected.Checkpoints[i] {
			mark = theme.Done.Render("[x]")
		}
		b.WriteString(fmt.Sprintf("%s %d %s\n", mark, i+1, label))
	}
	if selected.NotifyEndpoint != "" {
		b.WriteString("\n" + theme.Muted.Render("nudge: "+selected.NotifyEndpoint))
	}
	return b.String()
}
