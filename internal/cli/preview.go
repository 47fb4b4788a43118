package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/chartkit/chartkit/pkg/chart"
	"github.com/chartkit/chartkit/pkg/chart/axis"
	"github.com/chartkit/chartkit/pkg/chart/scale"
	"github.com/chartkit/chartkit/pkg/chart/ticks"
	"github.com/chartkit/chartkit/pkg/config"
)

// Tick count bounds for the interactive +/- keys.
const (
	previewMinTicks = 2
	previewMaxTicks = 12
)

var (
	previewTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	previewBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorCyan)
	previewAxisStyle  = lipgloss.NewStyle().Foreground(colorGray)
	previewLabelStyle = lipgloss.NewStyle().Foreground(colorWhite)
	previewHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)

	// previewPalette cycles across series in definition order.
	previewPalette = []lipgloss.Color{
		lipgloss.Color("36"), lipgloss.Color("208"),
		lipgloss.Color("35"), lipgloss.Color("167"), lipgloss.Color("75"),
	}
)

// newPreviewCmd creates the preview command plotting series in the terminal.
func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [definition.toml]",
		Short: "Plot a chart definition's series in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := config.Load(args[0])
			if err != nil {
				return err
			}
			if len(def.Series) == 0 {
				return fmt.Errorf("chart %q has no series to preview", def.ID)
			}

			p := tea.NewProgram(newPreviewModel(def), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}

// previewModel is the bubbletea model for the preview TUI. The primary axis
// (the first one by identifier) drives the interactive controls: arrow keys
// move it between the sides, +/- change the tick count.
type previewModel struct {
	def      *chart.Definition
	axisID   string
	settings chart.AxisSettings

	position  axis.Position
	tickCount int

	chart         timeserieslinechart.Model
	width, height int
	ready         bool
}

func newPreviewModel(def *chart.Definition) *previewModel {
	m := &previewModel{
		def:       def,
		position:  axis.Left,
		tickCount: ticks.DefaultCount,
	}

	ids := make([]string, 0, len(def.Axes))
	for id := range def.Axes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if len(ids) > 0 {
		m.axisID = ids[0]
		m.settings = def.Axes[m.axisID]
		if pos, err := axis.ParsePosition(m.settings.Position); err == nil {
			m.position = pos
		}
		if m.settings.TickNumber > 0 {
			m.tickCount = m.settings.TickNumber
		}
	}
	return m
}

// Init implements tea.Model.
func (m *previewModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. The chart is rebuilt on every terminal
// resize and on every control change, since the canvas dimensions and
// axis ranges are fixed at construction.
func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width-8, msg.Height-6
		m.rebuild()
		m.ready = true
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "left":
			if m.position != axis.Left {
				m.position = axis.Left
				m.rebuild()
			}
		case "right":
			if m.position != axis.Right {
				m.position = axis.Right
				m.rebuild()
			}
		case "+", "=":
			if m.tickCount < previewMaxTicks {
				m.tickCount++
				m.rebuild()
			}
		case "-", "_":
			if m.tickCount > previewMinTicks {
				m.tickCount--
				m.rebuild()
			}
		}
	}
	return m, nil
}

// rebuild constructs the terminal chart and replays every series into it.
// Series X values are mapped onto a synthetic time axis, one second per
// unit, since the terminal chart plots time series.
func (m *previewModel) rebuild() {
	if m.width < 10 || m.height < 4 {
		return
	}

	m.chart = timeserieslinechart.New(m.width, m.height,
		timeserieslinechart.WithAxesStyles(previewAxisStyle, previewLabelStyle),
		timeserieslinechart.WithLineStyle(runes.ThinLineStyle),
	)

	lo, hi := m.yRange()
	m.chart.SetYRange(lo, hi)
	m.chart.SetViewYRange(lo, hi)

	base := time.Unix(0, 0).UTC()
	for i, s := range m.def.Series {
		style := lipgloss.NewStyle().Foreground(previewPalette[i%len(previewPalette)])
		m.chart.SetDataSetStyle(s.Name, style)
		for _, p := range s.Points {
			m.chart.PushDataSet(s.Name, timeserieslinechart.TimePoint{
				Time:  base.Add(time.Duration(p.X * float64(time.Second))),
				Value: p.Y,
			})
		}
	}

	m.chart.DrawXYAxisAndLabel()
	m.chart.DrawAll()
}

// yRange widens the primary axis domain outward to round boundaries sized
// for the current tick count, so +/- visibly reshapes the value axis.
func (m *previewModel) yRange() (lo, hi float64) {
	s := scale.NewLinear(m.settings.Scale.Min, m.settings.Scale.Max, 0, 1)
	return s.Nice(m.tickCount).Domain()
}

// axisTitle is the label shown alongside the chart for the primary axis.
func (m *previewModel) axisTitle() string {
	if m.settings.Label != "" {
		return m.settings.Label
	}
	return m.axisID
}

// verticalText stacks the runes of s one per line, the terminal stand-in
// for a rotated axis title.
func verticalText(s string) string {
	parts := make([]string, 0, len(s))
	for _, r := range s {
		parts = append(parts, string(r))
	}
	return strings.Join(parts, "\n")
}

// View implements tea.Model.
func (m *previewModel) View() string {
	if !m.ready {
		return "loading..."
	}

	title := m.def.Title
	if title == "" {
		title = m.def.ID
	}

	body := previewBorderStyle.Render(m.chart.View())
	label := previewAxisStyle.Render(verticalText(m.axisTitle()))
	if m.position == axis.Right {
		body = lipgloss.JoinHorizontal(lipgloss.Center, body, " ", label)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Center, label, " ", body)
	}

	status := previewHelpStyle.Render(fmt.Sprintf("axis: %s   ticks: %d", m.position, m.tickCount))
	help := previewHelpStyle.Render("←/→: axis side   +/-: ticks   q: quit")

	return previewTitleStyle.Render(title) + "\n" +
		body + "\n" +
		status + "\n" +
		help
}
