package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vito/progrock"
)

const (
	statusPending   = "pending"
	statusRunning   = "running"
	statusCompleted = "completed"
	statusCached    = "cached"
	statusFailed    = "failed"
)

// VertexState is the displayed state of one recorded unit of work.
type VertexState struct {
	ID     string
	Name   string
	Status string
	// LastLog is the most recent line logged by the vertex.
	LastLog string
}

// Done reports whether the vertex finished, successfully or not.
func (v VertexState) Done() bool {
	return v.Status == statusCompleted || v.Status == statusCached || v.Status == statusFailed
}

type styles struct {
	running   lipgloss.Style
	completed lipgloss.Style
	cached    lipgloss.Style
	failed    lipgloss.Style
	pending   lipgloss.Style
	log       lipgloss.Style
}

// Model is the Bubble Tea model listing build vertices in recording order.
type Model struct {
	tape     TapeSource
	vertices []VertexState
	index    map[string]int
	width    int
	height   int
	spinner  spinner.Model
	styles   styles
}

// NewModel creates a new TUI model with the given tape source.
func NewModel(tape TapeSource) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))

	return &Model{
		tape:    tape,
		index:   make(map[string]int),
		spinner: s,
		styles: styles{
			running:   lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")),
			completed: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),  // Green
			cached:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),  // Blue
			failed:    lipgloss.NewStyle().Foreground(lipgloss.Color("160")), // Red
			pending:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")), // Gray
			log:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		},
	}
}

// Init initializes the model and starts reading from the tape.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		WaitForTape(m.tape),
		m.spinner.Tick,
	)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case MsgTapeUpdate:
		m.apply(msg.Update)
		return m, WaitForTape(m.tape)
	case MsgTapeEnded:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) apply(update *progrock.StatusUpdate) {
	if update == nil {
		return
	}
	for _, v := range update.Vertexes {
		i, ok := m.index[v.Id]
		if !ok {
			i = len(m.vertices)
			m.index[v.Id] = i
			m.vertices = append(m.vertices, VertexState{ID: v.Id})
		}
		m.vertices[i].Name = v.Name
		m.vertices[i].Status = vertexStatus(v)
	}
	for _, l := range update.Logs {
		i, ok := m.index[l.Vertex]
		if !ok {
			continue
		}
		if line := lastLine(l.Data); line != "" {
			m.vertices[i].LastLog = line
		}
	}
}

func vertexStatus(v *progrock.Vertex) string {
	switch {
	case v.Completed != nil && v.Error != nil:
		return statusFailed
	case v.Cached:
		return statusCached
	case v.Completed != nil:
		return statusCompleted
	case v.Started != nil:
		return statusRunning
	default:
		return statusPending
	}
}

func lastLine(data []byte) string {
	lines := bytes.Split(bytes.TrimRight(data, "\n"), []byte("\n"))
	return strings.TrimSpace(string(lines[len(lines)-1]))
}

// View renders the current state of the model as a string.
func (m *Model) View() string {
	var s strings.Builder

	// Keep the newest vertices when the terminal is too short. One line is
	// reserved for the summary.
	start := 0
	if m.height > 1 && len(m.vertices) > m.height-1 {
		start = len(m.vertices) - (m.height - 1)
	}

	done := 0
	for _, v := range m.vertices {
		if v.Done() {
			done++
		}
	}

	for i := start; i < len(m.vertices); i++ {
		v := m.vertices[i]
		var icon string
		var style lipgloss.Style
		switch v.Status {
		case statusRunning:
			icon = m.spinner.View()
			style = m.styles.running
		case statusCompleted:
			icon = "✓"
			style = m.styles.completed
		case statusCached:
			icon = "="
			style = m.styles.cached
		case statusFailed:
			icon = "✗"
			style = m.styles.failed
		default:
			icon = "•"
			style = m.styles.pending
		}

		line := fmt.Sprintf("%s %s", style.Render(icon), v.Name)
		if v.LastLog != "" && (v.Status == statusRunning || v.Status == statusFailed) {
			line += " " + m.styles.log.Render(m.truncate(v.LastLog, len(v.Name)+3))
		}
		s.WriteString(line + "\n")
	}

	if len(m.vertices) > 0 {
		fmt.Fprintf(&s, "%d/%d done\n", done, len(m.vertices))
	}
	return s.String()
}

// truncate shortens text to the terminal width left after used columns.
func (m *Model) truncate(text string, used int) string {
	if m.width <= 0 {
		return text
	}
	avail := m.width - used
	if avail <= 1 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= avail {
		return text
	}
	return string(runes[:avail-1]) + "…"
}
