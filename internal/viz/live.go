// Package viz renders a live terminal view of a playing effect: the device
// is polled on every frame tick and the actuator intensities are graphed.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/senna-k/ffbsim/internal/actuator"
	"github.com/senna-k/ffbsim/internal/device"
	"github.com/senna-k/ffbsim/internal/direction"
	"github.com/senna-k/ffbsim/internal/effect"
)

const historyCapacity = 240

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model owns the simulated poll clock and the per-slot intensity histories.
type Model struct {
	dev        *device.Device
	mapper     *actuator.Mapper
	eff        *effect.Effect
	iterations int
	gain       uint16
	interval   uint32 // simulated ms per frame
	fps        int

	now       uint32
	vec       direction.Ordered
	out       actuator.Output
	histories [actuator.NumSlots][]float64
	err       error
}

// NewModel loads eff onto dev and starts it at simulated time zero.
func NewModel(dev *device.Device, mapper *actuator.Mapper, eff *effect.Effect, iterations int, gain uint16, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	m := Model{
		dev:        dev,
		mapper:     mapper,
		eff:        eff,
		iterations: iterations,
		gain:       gain,
		interval:   uint32(1000 / fps),
		fps:        fps,
	}
	if err := dev.AddOrUpdate(eff); err != nil {
		m.err = err
		return m
	}
	m.err = dev.Start(eff.ID(), iterations, 0)
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.dev.SetPaused(!m.dev.Paused())
		case "m":
			m.dev.SetMuted(!m.dev.Muted())
		case "r":
			m.restart()
		}
	case TickMsg:
		m.step()
		return m, tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	m.now += m.interval
	m.vec = m.dev.Play(m.now)
	m.out = m.mapper.Map(m.vec, m.gain)
	for i, v := range m.out {
		m.histories[i] = append(m.histories[i], float64(v))
		if len(m.histories[i]) > historyCapacity {
			m.histories[i] = m.histories[i][1:]
		}
	}
}

func (m *Model) restart() {
	m.dev.StopAll()
	m.err = m.dev.Start(m.eff.ID(), m.iterations, m.now)
	for i := range m.histories {
		m.histories[i] = m.histories[i][:0]
	}
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.eff.Kind().String())) + "\n")

	status := "PLAYING"
	if m.dev.Paused() {
		status = "PAUSED"
	} else if !m.dev.IsPlaying(m.eff.ID()) {
		status = "IDLE"
	}
	if m.dev.Muted() {
		status += " (MUTED)"
	}
	s.WriteString(status + "\n")

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", float64(m.now)/1000)) + "\n")
	if m.err != nil {
		s.WriteString(labelStyle.Render("Error") + valueStyle.Render(m.err.Error()) + "\n")
	}
	for i, v := range m.out {
		s.WriteString(labelStyle.Render(actuator.SlotName(i)) + valueStyle.Render(fmt.Sprintf("%d", v)) + "\n")
	}

	for i, hist := range m.histories {
		if len(hist) < 2 {
			continue
		}
		chart := asciigraph.Plot(hist, asciigraph.Height(4), asciigraph.Width(60), asciigraph.Caption(actuator.SlotName(i)))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render("SP:Pause M:Mute R:Restart Q:Quit"))
	return s.String()
}

// Run starts the live view and blocks until the user quits.
func Run(dev *device.Device, mapper *actuator.Mapper, eff *effect.Effect, iterations int, gain uint16, fps int) error {
	p := tea.NewProgram(NewModel(dev, mapper, eff, iterations, gain, fps))
	_, err := p.Run()
	return err
}
