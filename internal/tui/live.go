package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/experiment"
	"github.com/san-kum/pendsim/internal/viz"
)

const (
	minSpeed   = 0.25
	maxSpeed   = 64
	bobCols    = 16
	bobRows    = 6
	sparkWidth = 30
)

type lane struct {
	name   string
	tr     *dynamo.Trajectory
	ratios []float64
}

// Model replays a study, one pendulum per scheme, at a user-controlled
// number of samples per frame.
type Model struct {
	study  *experiment.Study
	lanes  []lane
	theme  int
	pos    float64
	speed  float64
	paused bool

	width  int
	height int
}

func New(study *experiment.Study) Model {
	m := Model{
		study:  study,
		speed:  1,
		width:  80,
		height: 24,
	}

	add := func(name string, tr *dynamo.Trajectory) {
		h := study.Pendulum.EnergySeries(tr)
		ratios := make([]float64, len(h))
		for i, e := range h {
			ratios[i] = e / h[0]
		}
		m.lanes = append(m.lanes, lane{name: name, tr: tr, ratios: ratios})
	}
	for _, r := range study.Runs {
		add(r.Name, r.Trajectory)
	}
	if study.Reference != nil {
		add("analytical", study.Reference)
	}
	return m
}

// WithTheme starts the viewer on the named theme. Unknown names keep the
// current one.
func (m Model) WithTheme(name string) Model {
	for i, t := range viz.Themes {
		if t.Name == name {
			m.theme = i
		}
	}
	return m
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

// Frame is the sample index currently shown.
func (m Model) Frame() int {
	f := int(m.pos)
	if f > m.study.Steps {
		f = m.study.Steps
	}
	return f
}

func (m Model) Paused() bool     { return m.paused }
func (m Model) Speed() float64   { return m.speed }
func (m Model) Theme() viz.Theme { return viz.Themes[m.theme%len(viz.Themes)] }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if !m.paused {
			m.pos += m.speed
			if int(m.pos) >= m.study.Steps {
				m.pos = float64(m.study.Steps)
				m.paused = true
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ", "space", "p":
		if m.paused && m.Frame() >= m.study.Steps {
			m.pos = 0
		}
		m.paused = !m.paused
	case "+", "=":
		m.speed = math.Min(m.speed*2, maxSpeed)
	case "-", "_":
		m.speed = math.Max(m.speed/2, minSpeed)
	case "0":
		m.speed = 1
	case "r":
		m.pos = 0
		m.paused = false
	case "t":
		m.theme = (m.theme + 1) % len(viz.Themes)
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	theme := m.Theme()
	frame := m.Frame()
	period := m.study.Period()
	accent := lipgloss.NewStyle().Foreground(theme.Primary)
	dim := lipgloss.NewStyle().Foreground(theme.Muted)

	b.WriteString(viz.GradientTitle.Render("pendsim live"))
	b.WriteString(dim.Render(fmt.Sprintf("  dt = T0/%.0f", period/m.study.Dt)))
	b.WriteString("\n\n")

	bobs := make([]string, len(m.lanes))
	for i, l := range m.lanes {
		style := theme.SeriesStyle(i)
		body := drawPendulum(l.tr.ThetaAt(frame))
		bobs[i] = lipgloss.JoinVertical(lipgloss.Center, style.Render(body), style.Render(l.name))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, spaced(bobs)...))
	b.WriteString("\n\n")

	for i, l := range m.lanes {
		ratio := l.ratios[frame]
		fmt.Fprintf(&b, "%s %s %s %s %s  %s\n",
			theme.SeriesStyle(i).Render(fmt.Sprintf("%-11s", l.name)),
			viz.MetricLabel.Render("θ"),
			viz.MetricValue.Render(fmt.Sprintf("%+.4f", l.tr.ThetaAt(frame))),
			viz.MetricLabel.Render("H/H0"),
			viz.RatioStyle(ratio).Render(fmt.Sprintf("%.4f", ratio)),
			viz.SparklineChart(l.ratios[:frame+1], sparkWidth),
		)
	}
	b.WriteString("\n")

	status := viz.StatusRunning.Render("running")
	if m.paused {
		status = viz.StatusPaused.Render("paused")
	}
	fmt.Fprintf(&b, "%s  t/T0 %s  speed %s\n",
		status,
		accent.Render(fmt.Sprintf("%.2f", float64(frame)*m.study.Dt/period)),
		accent.Render(fmt.Sprintf("%gx", m.speed)),
	)
	b.WriteString(viz.KeyHint.Render("space pause · +/- speed · r reset · t theme · q quit"))
	b.WriteString("\n")
	return b.String()
}

// drawPendulum sketches a rod from a pivot at the top centre to a bob at
// angle theta from the vertical.
func drawPendulum(theta float64) string {
	c := viz.NewCanvas(bobCols, bobRows)
	w, h := bobCols*2, bobRows*4
	px, py := w/2, 0
	length := float64(h - 3)

	bx := px + int(math.Round(length*math.Sin(theta)))
	by := py + int(math.Round(length*math.Cos(theta)))
	c.DrawLine(px, py, bx, by)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			c.Set(bx+dx, by+dy)
		}
	}
	return strings.TrimSuffix(c.String(), "\n")
}

func spaced(blocks []string) []string {
	out := make([]string, 0, 2*len(blocks))
	for i, blk := range blocks {
		if i > 0 {
			out = append(out, "  ")
		}
		out = append(out, blk)
	}
	return out
}

// RunLive starts the viewer in the alternate screen and blocks until quit.
func RunLive(study *experiment.Study, theme string) error {
	p := tea.NewProgram(New(study).WithTheme(theme), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
