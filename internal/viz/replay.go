package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/rootlab/internal/roots"
)

const replayRows = 12

var (
	columnStyle = lipgloss.NewStyle().Padding(0, 2).Width(48)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	rowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type TickMsg time.Time

// Replay steps through two recorded solver traces side by side so the
// linear and quadratic convergence can be watched as it happens.
type Replay struct {
	title     string
	bisection []roots.Iteration
	newton    []roots.Iteration
	step      int
	running   bool
	interval  time.Duration
}

func NewReplay(title string, bisection, newton []roots.Iteration, interval time.Duration) Replay {
	if interval <= 0 {
		interval = 150 * time.Millisecond
	}
	return Replay{
		title:     title,
		bisection: bisection,
		newton:    newton,
		running:   true,
		interval:  interval,
	}
}

func (m Replay) Init() tea.Cmd {
	return m.tick()
}

func (m Replay) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Replay) total() int {
	return max(len(m.bisection), len(m.newton))
}

// Done reports whether every recorded iteration is on screen.
func (m Replay) Done() bool {
	return m.step >= m.total()
}

func (m Replay) Step() int { return m.step }

func (m Replay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.step = 0
			m.running = true
		case "right", "l":
			if !m.Done() {
				m.step++
			}
		case "left", "h":
			if m.step > 0 {
				m.step--
			}
		case "end":
			m.step = m.total()
		}
	case TickMsg:
		if m.running && !m.Done() {
			m.step++
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Replay) View() string {
	left := m.column(roots.MethodBisection, m.bisection)
	right := m.column(roots.MethodNewton, m.newton)

	var b strings.Builder
	b.WriteString(Title.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columnStyle.Render(left), columnStyle.Render(right)))
	b.WriteString("\n")

	status := StatusConverged.Render("running")
	if !m.running {
		status = StatusStalled.Render("paused")
	}
	if m.Done() {
		status = Subtle.Render("finished")
	}
	fmt.Fprintf(&b, "\n%s  step %d/%d\n", status, m.step, m.total())
	b.WriteString(KeyHint.Render("space pause · ←/→ step · r restart · end skip · q quit"))
	return b.String()
}

func (m Replay) column(method string, its []roots.Iteration) string {
	shown := min(m.step, len(its))

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d/%d)", method, shown, len(its))))
	b.WriteString("\n")

	from := max(shown-replayRows, 0)
	for _, it := range its[from:shown] {
		line := fmt.Sprintf("%4d  λ = %.12f  f = %+.3e", it.Index, it.Estimate, it.Value)
		if shown == len(its) {
			b.WriteString(doneStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}

	residuals := make([]float64, shown)
	for i, it := range its[:shown] {
		residuals[i] = it.Value
	}
	b.WriteString("\n")
	b.WriteString(Sparkline(residuals, 40))
	return b.String()
}
