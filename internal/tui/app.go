package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/BogdanLi/productivity-timer/internal/export"
	"github.com/BogdanLi/productivity-timer/internal/notify"
	"github.com/BogdanLi/productivity-timer/internal/store"
	"github.com/BogdanLi/productivity-timer/internal/timer"
)

// App is the root Bubble Tea model.
type App struct {
	store      *store.Store
	presets    *store.PresetStore
	sessions   *store.SessionLog
	engine     *timer.Engine
	dispatcher notify.Dispatcher

	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	timerView    timerViewModel
	presetsView  presetsViewModel
	statsView    statsViewModel
	settingsView settingsViewModel

	help        help.Model
	status      string
	statusError bool
}

func NewApp(s *store.Store, presets *store.PresetStore, sessions *store.SessionLog, engine *timer.Engine, dispatcher notify.Dispatcher) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:        s,
		presets:      presets,
		sessions:     sessions,
		engine:       engine,
		dispatcher:   dispatcher,
		activeView:   viewTimer,
		timerView:    newTimerViewModel(engine),
		presetsView:  newPresetsViewModel(presets, engine),
		statsView:    newStatsViewModel(sessions, engine),
		settingsView: newSettingsViewModel(s),
		help:         h,
	}
}

func (a App) Init() tea.Cmd {
	return nil
}

// tickCmd schedules one second of countdown under the given generation. The
// schedule is re-armed from the tick handler only while the engine is still
// running, so leaving Running stops the cadence.
func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.timerView.setSize(a.width, contentHeight)
		a.presetsView.setSize(a.width, contentHeight)
		a.statsView.setSize(a.width, contentHeight)
		a.settingsView.setSize(a.width, contentHeight)
		return a, nil

	case tickMsg:
		// A stale generation means the schedule was superseded by a pause,
		// reset or restart; applying it would double-tick.
		if msg.gen != a.engine.Generation() {
			return a, nil
		}
		finished, completed := a.engine.Tick()
		if completed {
			a.setStatus(fmt.Sprintf("%s complete!", finished.Label()), false)
			a.statsView.recompute()
			return a, nil
		}
		if a.engine.State().IsRunning {
			return a, tickCmd(msg.gen)
		}
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewTimer
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewPresets
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewStats
			a.statsView.recompute()
			return a, nil
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSettings
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 4
			if a.activeView == viewStats {
				a.statsView.recompute()
			}
			return a, nil
		}

	case statusMsg:
		a.setStatus(msg.text, msg.isError)
		return a, nil

	case presetsChangedMsg:
		a.setStatus("Presets saved", false)
		a.statsView.recompute()
		return a, nil

	case configSavedMsg:
		cfg := a.store.LoadConfig()
		a.engine.SetLongBreakInterval(cfg.LongBreakInterval)
		if d, ok := a.dispatcher.(interface{ SetSoundEnabled(bool) }); ok {
			d.SetSoundEnabled(cfg.SoundEnabled)
		}
		a.setStatus("Settings saved", false)
		return a, nil

	case exportDoneMsg:
		a.setStatus("Exported to "+msg.path, false)
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a *App) setStatus(text string, isError bool) {
	a.status = text
	a.statusError = isError
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTimer:
		a.timerView, cmd = a.timerView.update(msg)
	case viewPresets:
		a.presetsView, cmd = a.presetsView.update(msg)
	case viewStats:
		a.statsView, cmd = a.statsView.update(msg)
	case viewSettings:
		a.settingsView, cmd = a.settingsView.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewPresets:
		return a.presetsView.formActive
	case viewStats:
		return a.statsView.formActive
	case viewSettings:
		return a.settingsView.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTimer:
		content = a.timerView.view()
	case viewPresets:
		content = a.presetsView.view()
	case viewStats:
		content = a.statsView.view()
	case viewSettings:
		content = a.settingsView.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("pomo")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusError {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	// Countdown indicator in footer
	timerInfo := ""
	if state := a.engine.State(); state.IsRunning {
		timerInfo = successStyle.Render(" ● " + formatCountdown(state.Minutes, state.Seconds))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Sessions")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	sessions := store.SortSessionsDesc(a.sessions.Sessions())

	// Build preset lookup
	presets := make(map[string]store.TimerPreset)
	for _, p := range a.presets.Presets() {
		presets[p.ID] = p
	}

	return func() tea.Msg {
		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("pomo-export-%s.csv", dateStr))
			if err := export.ToCSV(sessions, presets, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("pomo-export-%s.json", dateStr))
			if err := export.ToJSON(sessions, presets, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
