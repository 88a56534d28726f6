package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/BogdanLi/productivity-timer/internal/store"
	"github.com/BogdanLi/productivity-timer/internal/timer"
)

const historyLimit = 10

type statsViewModel struct {
	sessions *store.SessionLog
	engine   *timer.Engine
	width    int
	height   int

	filter  store.RangeFilter
	stats   store.TimerStatistics
	history []store.TimerSession
	chart   barchart.Model

	formActive bool
	form       *huh.Form
	formStart  *string
	formEnd    *string
}

func newStatsViewModel(sl *store.SessionLog, e *timer.Engine) statsViewModel {
	start, end := "", ""
	return statsViewModel{
		sessions:  sl,
		engine:    e,
		chart:     barchart.New(40, 10),
		formStart: &start,
		formEnd:   &end,
	}
}

func (s *statsViewModel) setSize(w, h int) {
	s.width = w
	s.height = h
	s.recompute()
}

// recompute derives statistics for the active preset from the in-memory
// session log under the current date filter.
func (s *statsViewModel) recompute() {
	filtered := store.FilterByRange(s.sessions.Sessions(), s.filter, time.Now())
	presetID := s.engine.ActivePreset().ID
	s.stats = store.Aggregate(filtered, presetID)
	s.history = store.SortSessionsDesc(store.FilterByPreset(filtered, presetID))
	s.buildChart()
}

func (s *statsViewModel) buildChart() {
	chartWidth := s.width - 10
	if chartWidth < 20 {
		chartWidth = 20
	}
	if chartWidth > 50 {
		chartWidth = 50
	}

	s.chart = barchart.New(chartWidth, 8)

	modeStyles := map[store.TimerMode]lipgloss.Style{
		store.ModeFocus:     accentStyle,
		store.ModeBreak:     successStyle,
		store.ModeLongBreak: highlightStyle,
	}

	var bars []barchart.BarData
	for _, m := range store.Modes {
		bars = append(bars, barchart.BarData{
			Label: m.Label(),
			Values: []barchart.BarValue{{
				Name:  m.Label(),
				Value: float64(s.stats.MinutesPerMode[m]),
				Style: modeStyles[m],
			}},
		})
	}

	s.chart.PushAll(bars)
	s.chart.Draw()
}

func (s statsViewModel) update(msg tea.Msg) (statsViewModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Filter):
			return s.cycleFilter()
		}
	}
	return s, nil
}

func (s statsViewModel) cycleFilter() (statsViewModel, tea.Cmd) {
	switch s.filter.Kind {
	case store.RangeAll:
		s.filter.Kind = store.RangeToday
	case store.RangeToday:
		s.filter.Kind = store.RangeLast7Days
	case store.RangeLast7Days:
		return s.showRangeForm()
	default:
		s.filter = store.RangeFilter{Kind: store.RangeAll}
	}
	s.recompute()
	return s, nil
}

func validateDate(v string) error {
	if _, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(v), time.Local); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func (s statsViewModel) showRangeForm() (statsViewModel, tea.Cmd) {
	*s.formStart = time.Now().AddDate(0, 0, -7).Format("2006-01-02")
	*s.formEnd = time.Now().Format("2006-01-02")

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Start date (YYYY-MM-DD)").Value(s.formStart).Validate(validateDate),
			huh.NewInput().Title("End date (YYYY-MM-DD)").Value(s.formEnd).Validate(validateDate),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s statsViewModel) updateForm(msg tea.Msg) (statsViewModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		start, _ := time.ParseInLocation("2006-01-02", strings.TrimSpace(*s.formStart), time.Local)
		end, _ := time.ParseInLocation("2006-01-02", strings.TrimSpace(*s.formEnd), time.Local)
		s.filter = store.RangeFilter{Kind: store.RangeCustom, Start: start, End: end}
		s.recompute()
		return s, nil
	}

	return s, cmd
}

func (s statsViewModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Custom Range")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	preset := s.engine.ActivePreset()
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Statistics"), "  ",
		highlightStyle.Render(preset.Name), "  ",
		mutedStyle.Render(s.filterLabel()),
	)

	summary := s.renderSummary()
	chartView := s.chart.View()
	history := s.renderHistory(w)
	nav := mutedStyle.Render("  f: cycle date filter")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", summary, "", chartView, "", history, "", nav,
		),
	)
}

func (s statsViewModel) filterLabel() string {
	if s.filter.Kind == store.RangeCustom {
		return fmt.Sprintf("%s — %s",
			s.filter.Start.Format("Jan 02"), s.filter.End.Format("Jan 02, 2006"))
	}
	return s.filter.Kind.Label()
}

func (s statsViewModel) renderSummary() string {
	var rows []string
	rows = append(rows, fmt.Sprintf("  %s %d sessions, %d minutes",
		titleStyle.Render("Total:"), s.stats.TotalSessions, s.stats.TotalMinutes))
	for _, m := range store.Modes {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %3d sessions %5d min",
			m.Label(), s.stats.SessionsPerMode[m], s.stats.MinutesPerMode[m])))
	}
	return strings.Join(rows, "\n")
}

func (s statsViewModel) renderHistory(w int) string {
	if len(s.history) == 0 {
		return mutedStyle.Render("  No sessions for this period")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-22s %-12s %8s", "Completed", "Mode", "Duration")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 44))))

	shown := s.history
	if len(shown) > historyLimit {
		shown = shown[:historyLimit]
	}
	for _, session := range shown {
		rows = append(rows, fmt.Sprintf("  %-22s %-12s %5d min  %s",
			formatDateTime(session.CompletedAt),
			session.Mode.Label(),
			session.Duration,
			mutedStyle.Render("("+formatRelativeTime(session.CompletedAt)+")"),
		))
	}
	if len(s.history) > historyLimit {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  … and %d more", len(s.history)-historyLimit)))
	}

	return strings.Join(rows, "\n")
}
