package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphwalk/pkg/actions"
	"github.com/matzehuels/graphwalk/pkg/errors"
	"github.com/matzehuels/graphwalk/pkg/render"
)

func (c *CLI) tuiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive terminal UI",
		Long: `Open an interactive view of the graph.

Keys:
  b  run BFS            d  run DFS
  c  greedy coloring    y  check cycle
  k  check clique       x  clear highlights
  l  clear log and highlights
  q  quit

Only one traversal animates at a time; starting another while it runs
shows a notice instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTUI(cmd.Context())
		},
	}
}

func (c *CLI) runTUI(ctx context.Context) error {
	g, err := c.loadGraph(ctx)
	if err != nil {
		return err
	}

	// Logging to the terminal would tear the alt screen; route it to the
	// log pane instead. Info lines repeat the reports, so keep warnings.
	pane := newPaneWriter(256)
	level := c.Logger.GetLevel()
	if level < log.WarnLevel && level != log.DebugLevel {
		level = log.WarnLevel
	}
	logger := newLogger(pane, level)

	queue := render.NewQueue(0)
	defer queue.Close()
	runner := c.newRunner(g, queue, logger)

	m := newTUIModel(ctx, runner, queue, pane.lines)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// =============================================================================
// Messages
// =============================================================================

type frameMsg render.Frame

type logMsg string

// waitFrame blocks on the queue for the next frame. It is re-issued after
// every frame so the program goroutine is the only one touching the view.
func waitFrame(ctx context.Context, q *render.Queue) tea.Cmd {
	return func() tea.Msg {
		f, ok := q.Next(ctx)
		if !ok {
			return nil
		}
		return frameMsg(f)
	}
}

func waitLog(ctx context.Context, lines <-chan string) tea.Cmd {
	return func() tea.Msg {
		select {
		case line := <-lines:
			return logMsg(line)
		case <-ctx.Done():
			return nil
		}
	}
}

// =============================================================================
// paneWriter
// =============================================================================

// paneWriter is an io.Writer that turns log output into lines for the TUI.
// Lines are dropped when the pane falls behind.
type paneWriter struct {
	mu      sync.Mutex
	partial string
	lines   chan string
}

func newPaneWriter(size int) *paneWriter {
	return &paneWriter{lines: make(chan string, size)}
}

func (w *paneWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	text := w.partial + string(p)
	parts := strings.Split(text, "\n")
	w.partial = parts[len(parts)-1]
	for _, line := range parts[:len(parts)-1] {
		if line == "" {
			continue
		}
		select {
		case w.lines <- line:
		default:
		}
	}
	return len(p), nil
}

// =============================================================================
// Model
// =============================================================================

var (
	tuiHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	tuiStateStyle  = lipgloss.NewStyle().Foreground(colorGray)
	tuiRuleStyle   = lipgloss.NewStyle().Foreground(colorDim)
	tuiKeyStyle    = lipgloss.NewStyle().Foreground(colorBlue)
	tuiLogStyle    = lipgloss.NewStyle().Foreground(colorGray)
)

// tuiKeys maps keys to runner actions.
var tuiKeys = map[string]string{
	"b": "bfs",
	"d": "dfs",
	"c": "coloring",
	"y": "cycle",
	"k": "clique",
	"x": "clear",
}

const (
	tuiHeaderHeight = 6
	tuiFooterHeight = 3
)

type tuiModel struct {
	ctx    context.Context
	runner *actions.Runner
	queue  *render.Queue
	logs   <-chan string

	frame  render.Frame
	lines  []string
	status string
	failed bool

	viewport viewport.Model
	ready    bool
	width    int
}

func newTUIModel(ctx context.Context, runner *actions.Runner, q *render.Queue, logs <-chan string) tuiModel {
	return tuiModel{
		ctx:    ctx,
		runner: runner,
		queue:  q,
		logs:   logs,
		frame:  runner.Controller().Snapshot(),
		lines:  []string{runner.Summary()},
	}
}

func (m tuiModel) Init() tea.Cmd {
	return tea.Batch(waitFrame(m.ctx, m.queue), waitLog(m.ctx, m.logs))
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		height := max(msg.Height-tuiHeaderHeight-tuiFooterHeight, 3)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.YPosition = tuiHeaderHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.refreshLog()

	case frameMsg:
		m.frame = render.Frame(msg)
		return m, waitFrame(m.ctx, m.queue)

	case logMsg:
		m.appendLines(tuiLogStyle.Render(string(msg)))
		return m, waitLog(m.ctx, m.logs)

	case tea.KeyMsg:
		key := msg.String()
		if name, ok := tuiKeys[key]; ok {
			m.run(name)
			return m, nil
		}
		switch key {
		case "l":
			m.run("clear")
			m.lines = nil
			m.refreshLog()
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up":
			m.viewport.LineUp(1)
		case "down":
			m.viewport.LineDown(1)
		case "pgup":
			m.viewport.HalfViewUp()
		case "pgdown":
			m.viewport.HalfViewDown()
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// run executes an action on the program goroutine. Frames it draws arrive
// later through the queue.
func (m *tuiModel) run(name string) {
	rep, err := m.runner.Run(m.ctx, name)
	if rep != nil {
		m.appendLines(reportLines(rep.Lines())...)
	}
	switch {
	case err == nil:
		m.status, m.failed = "", false
	case errors.Recoverable(err):
		m.status, m.failed = errors.UserMessage(err), false
	default:
		m.status, m.failed = errors.UserMessage(err), true
	}
}

func (m *tuiModel) appendLines(lines ...string) {
	m.lines = append(m.lines, lines...)
	m.refreshLog()
}

func (m *tuiModel) refreshLog() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

func (m tuiModel) View() string {
	var b strings.Builder

	ctrl := m.runner.Controller()
	b.WriteString(tuiHeaderStyle.Render(appName))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(m.runner.Summary()))
	b.WriteString("  ")
	b.WriteString(tuiStateStyle.Render("[" + ctrl.State().String() + "]"))
	b.WriteString("\n")

	title := m.frame.Title
	if title == "" {
		title = "Graph"
	}
	b.WriteString(StyleValue.Render(title))
	b.WriteString("\n")
	b.WriteString(frameStrip(m.frame))
	b.WriteString("\n")
	b.WriteString(tuiRuleStyle.Render(strings.Repeat("─", max(m.width, 20))))
	b.WriteString("\n")

	if m.ready {
		b.WriteString(m.viewport.View())
	} else {
		b.WriteString(strings.Join(m.lines, "\n"))
	}
	b.WriteString("\n")

	switch {
	case m.status == "":
		b.WriteString("\n")
	case m.failed:
		b.WriteString(styleIconError.Render(iconError) + " " + m.status + "\n")
	default:
		b.WriteString(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(m.status) + "\n")
	}
	b.WriteString(helpLine())
	return b.String()
}

func helpLine() string {
	keys := []struct{ key, label string }{
		{"b", "BFS"}, {"d", "DFS"}, {"c", "coloring"}, {"y", "cycle"},
		{"k", "clique"}, {"x", "clear"}, {"l", "clear all"}, {"q", "quit"},
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s %s", tuiKeyStyle.Render(k.key), StyleDim.Render(k.label))
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}
