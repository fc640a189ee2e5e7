package viz

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"go.uber.org/zap"

	"github.com/san-kum/wavecurve/internal/metrics"
	"github.com/san-kum/wavecurve/internal/sampler"
	"github.com/san-kum/wavecurve/internal/wave"
)

const (
	fps           = 30
	defaultWidth  = 60
	defaultHeight = 24
	thetaNudge    = 0.1
	taFactor      = 1.1
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model animates a wave while theta eases toward a target set from the
// keyboard.
type Model struct {
	curve   string
	sampler *sampler.Sampler
	cfg     sampler.Config
	result  *sampler.Result
	err     error
	log     *zap.Logger

	theta        spring
	target       float64
	initialTheta float64
	initialTa    float64

	width, height int
	head          int
	running       bool
	showBase      bool
	showHelp      bool
	theme         Theme
}

// NewModel samples path once with cfg and returns a ready model.
func NewModel(curve string, path wave.Path, cfg sampler.Config, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	smp := sampler.New(path, log)
	for _, mt := range metrics.DefaultMetrics() {
		smp.AddMetric(mt)
	}
	m := Model{
		curve:        curve,
		sampler:      smp,
		cfg:          cfg,
		log:          log.Named("live"),
		theta:        newSpring(fps, 4.0, 0.6, cfg.Theta),
		target:       cfg.Theta,
		initialTheta: cfg.Theta,
		initialTa:    cfg.Ta,
		width:        defaultWidth,
		height:       defaultHeight,
		running:      true,
		showBase:     true,
		theme:        ThemeCyberpunk,
	}
	m.resample()
	return m
}

// WithTheme returns a copy of m using the named theme.
func (m Model) WithTheme(name string) Model {
	m.theme = GetTheme(name)
	return m
}

func (m Model) Theta() float64  { return m.theta.pos }
func (m Model) Target() float64 { return m.target }
func (m Model) Ta() float64     { return m.cfg.Ta }
func (m Model) Err() error      { return m.err }

// Result returns the most recent sampling, or nil if it failed.
func (m Model) Result() *sampler.Result { return m.result }

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "left", "h":
			m.target -= thetaNudge
		case "right", "l":
			m.target += thetaNudge
		case "up", "k":
			m.cfg.Ta *= taFactor
			m.resample()
		case "down", "j":
			m.cfg.Ta /= taFactor
			m.resample()
		case "b":
			m.showBase = !m.showBase
		case "t":
			m.theme = NextTheme(m.theme.Name)
		case "r":
			m.target = m.initialTheta
			m.theta.jump(m.initialTheta)
			m.cfg.Ta = m.initialTa
			m.head = 0
			m.resample()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.width = max(msg.Width-int(statsStyle.GetWidth())-8, 20)
		m.height = max(msg.Height-4, 8)
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

// advance moves the tracer and eases theta one frame toward the target,
// resampling when theta moved.
func (m *Model) advance() {
	if m.result != nil && len(m.result.Samples) > 0 {
		m.head = (m.head + 1) % len(m.result.Samples)
	}

	prev := m.theta.pos
	if m.theta.settled(m.target, 1e-4) {
		m.theta.jump(m.target)
	} else {
		m.theta.step(m.target)
	}
	if m.theta.pos != prev {
		m.resample()
	}
}

func (m *Model) resample() {
	m.cfg.Theta = m.theta.pos
	res, err := m.sampler.Run(context.Background(), m.cfg)
	if err != nil {
		m.log.Warn("resample failed", zap.Error(err), zap.Float64("theta", m.cfg.Theta), zap.Float64("ta", m.cfg.Ta))
		m.err = err
		m.result = nil
		return
	}
	m.err = nil
	m.result = res
	if m.head >= len(res.Samples) {
		m.head = 0
	}
}

func (m Model) View() string {
	var samples []wave.Sample
	if m.result != nil {
		samples = m.result.Samples
	}

	c, vp := RenderWave(samples, m.width, m.height, m.showBase)
	if m.head < len(samples) {
		c.DrawDot(samples[m.head].Point, vp)
	}
	waveStyle := canvasStyle.Foreground(m.theme.Wave)
	canvasView := waveStyle.Render(c.String())

	var s strings.Builder
	s.WriteString(GradientText(strings.ToUpper(m.curve), m.theme.Wave, m.theme.Accent) + "\n\n")

	if m.running {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	s.WriteString(labelStyle.Render("theta") + MetricValue.Render(fmt.Sprintf("%.3f", m.theta.pos)) +
		Subtle.Render(fmt.Sprintf(" -> %.3f", m.target)) + "\n")
	s.WriteString(labelStyle.Render("ta") + MetricValue.Render(fmt.Sprintf("%.4f", m.cfg.Ta)) + "\n")
	s.WriteString(labelStyle.Render("samples") + MetricValue.Render(fmt.Sprintf("%d", m.cfg.Samples)) + "\n")

	if m.err != nil {
		s.WriteString("\n" + StatusPaused.Render(m.err.Error()) + "\n")
	}

	if m.result != nil {
		if m.head < len(samples) {
			h := samples[m.head]
			s.WriteString(labelStyle.Render("t") + MetricValue.Render(fmt.Sprintf("%.3f", h.T)) + "\n")
			s.WriteString(labelStyle.Render("s") + MetricValue.Render(fmt.Sprintf("%.3f", h.ArcLength)) + "\n")
		}

		s.WriteString("\n" + Separator(36) + "\n")
		keys := make([]string, 0, len(m.result.Metrics))
		for k := range m.result.Metrics {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			s.WriteString(MetricLabel.Render(fmt.Sprintf("%-18s", k)) + MetricValue.Render(fmt.Sprintf("%.4g", m.result.Metrics[k])) + "\n")
		}

		offsets := m.result.Offsets()
		if len(offsets) > 1 && finiteAll(offsets) {
			chart := asciigraph.Plot(offsets, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("normal offset"))
			s.WriteString(graphStyle.Render(chart) + "\n")
		}
		amps := make([]float64, len(samples))
		for i, smp := range samples {
			amps[i] = smp.Amplitude
		}
		s.WriteString(MetricLabel.Render("amplitude ") + Sparkline(amps, 26) + "\n")
	}

	s.WriteString(helpStyle.Render("SP:Pause ←→:Theta ↑↓:Ta\nB:Base T:Theme R:Reset Q:Quit ?:Help"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
  Space    pause / resume
  Left/H   theta - 0.1
  Right/L  theta + 0.1
  Up/K     ta x 1.1
  Down/J   ta / 1.1
  B        toggle base curve
  T        cycle themes
  R        reset theta and ta
  Q        quit
` + "\n" + mainView
	}
	return mainView
}

func finiteAll(vs []float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Run starts the live view in the alternate screen and blocks until quit.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
