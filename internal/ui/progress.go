package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"abilink/internal/linkpipeline"
)

type progressModel struct {
	title      string
	events     <-chan linkpipeline.Event
	spinner    spinner.Model
	prog       progress.Model
	items      []inputItem
	index      map[string]int
	stageLabel string
	failed     error
	width      int
	done       bool
}

type inputItem struct {
	path   string
	status string
}

type eventMsg linkpipeline.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders per-input link
// progress. Repeated inputs share one row.
func NewProgressModel(title string, inputs []string, events <-chan linkpipeline.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]inputItem, 0, len(inputs))
	index := make(map[string]int, len(inputs))
	for _, in := range inputs {
		if _, dup := index[in]; dup {
			continue
		}
		index[in] = len(items)
		items = append(items, inputItem{path: in, status: "queued"})
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(linkpipeline.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.stageLabel != "" {
		header = fmt.Sprintf("%s (%s)", header, m.stageLabel)
	}
	switch {
	case m.done && m.failed != nil:
		header = fmt.Sprintf("failed: %s", header)
	case m.done:
		header = fmt.Sprintf("done: %s", header)
	default:
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := max(m.width-statusWidth-4, 20)
	for _, item := range m.items {
		status := styleStatus(item.status).Render(fmt.Sprintf("%12s", item.status))
		fmt.Fprintf(&b, "  %s %s\n", status, truncate(item.path, nameWidth))
	}

	b.WriteString("\n")
	if m.done && m.failed == nil {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev linkpipeline.Event) tea.Cmd {
	if ev.Status == linkpipeline.StatusError {
		m.failed = ev.Err
	}
	label := statusLabel(ev.Stage, ev.Status)
	idx, ok := m.index[ev.File]
	if !ok {
		// run-wide stages: resolve, synthesize, serialize
		if label != "" {
			m.stageLabel = label
		}
		return nil
	}
	if label != "" {
		m.items[idx].status = label
	}
	if len(m.items) == 0 {
		return nil
	}
	total := 0.0
	for _, item := range m.items {
		total += progressFromStatus(item.status)
	}
	return m.prog.SetPercent(total / float64(len(m.items)))
}

func progressFromStatus(status string) float64 {
	switch status {
	case "linked", "error":
		return 1.0
	case "linking":
		return 0.7
	case "parsed":
		return 0.5
	case "parsing":
		return 0.2
	default:
		return 0.0
	}
}

func statusLabel(stage linkpipeline.Stage, status linkpipeline.Status) string {
	switch status {
	case linkpipeline.StatusError:
		return "error"
	case linkpipeline.StatusWorking:
		switch stage {
		case linkpipeline.StageResolve:
			return "resolving"
		case linkpipeline.StageSynthesize:
			return "synthesizing"
		case linkpipeline.StageParse:
			return "parsing"
		case linkpipeline.StageLink:
			return "linking"
		case linkpipeline.StageSerialize:
			return "writing"
		}
	case linkpipeline.StatusDone:
		switch stage {
		case linkpipeline.StageParse:
			return "parsed"
		case linkpipeline.StageLink:
			return "linked"
		case linkpipeline.StageSerialize:
			return "written"
		}
	}
	return ""
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "linked", "written":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "parsing", "parsed", "linking":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
