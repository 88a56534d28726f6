package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/BogdanLi/productivity-timer/internal/store"
	"github.com/BogdanLi/productivity-timer/internal/timer"
)

type timerViewModel struct {
	engine *timer.Engine
	width  int
	height int

	bar progress.Model
}

func newTimerViewModel(e *timer.Engine) timerViewModel {
	bar := progress.New(progress.WithDefaultGradient())
	bar.ShowPercentage = false
	return timerViewModel{engine: e, bar: bar}
}

func (t *timerViewModel) setSize(w, h int) {
	t.width = w
	t.height = h
	barWidth := w - 16
	if barWidth < 10 {
		barWidth = 10
	}
	if barWidth > 60 {
		barWidth = 60
	}
	t.bar.Width = barWidth
}

func (t timerViewModel) update(msg tea.Msg) (timerViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			if t.engine.Start() {
				return t, tickCmd(t.engine.Generation())
			}
		case key.Matches(msg, keys.Pause):
			if t.engine.State().IsRunning {
				t.engine.Pause()
				return t, nil
			}
			if t.engine.Start() {
				return t, tickCmd(t.engine.Generation())
			}
		case key.Matches(msg, keys.Reset):
			t.engine.Reset()
		case key.Matches(msg, keys.Mode):
			t.engine.SwitchMode(nextMode(t.engine.ActiveMode()))
		case key.Matches(msg, keys.Plus):
			t.engine.AdjustTime(1)
		case key.Matches(msg, keys.Minus):
			t.engine.AdjustTime(-1)
		case key.Matches(msg, keys.Left):
			t.engine.SwitchPreset(t.engine.ActivePresetIndex() - 1)
		case key.Matches(msg, keys.Right):
			t.engine.SwitchPreset(t.engine.ActivePresetIndex() + 1)
		}
	}
	return t, nil
}

func nextMode(m store.TimerMode) store.TimerMode {
	switch m {
	case store.ModeFocus:
		return store.ModeBreak
	case store.ModeBreak:
		return store.ModeLongBreak
	default:
		return store.ModeFocus
	}
}

func (t timerViewModel) view() string {
	w := t.width - 4
	state := t.engine.State()
	preset := t.engine.ActivePreset()

	presetRow := mutedStyle.Render("‹ ") +
		titleStyle.Render(preset.Name) +
		mutedStyle.Render(" ›")

	var modeTabs []string
	for _, m := range store.Modes {
		if m == t.engine.ActiveMode() {
			modeTabs = append(modeTabs, activeTabStyle.Render(m.Label()))
		} else {
			modeTabs = append(modeTabs, inactiveTabStyle.Render(m.Label()))
		}
	}
	modeRow := lipgloss.JoinHorizontal(lipgloss.Bottom, modeTabs...)

	countdown := timerStyle.Width(w - 6).Render(formatCountdown(state.Minutes, state.Seconds))
	if state.IsRunning {
		countdown = successStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).
			Render(formatCountdown(state.Minutes, state.Seconds))
	}

	var stateLabel string
	if state.IsRunning {
		stateLabel = successStyle.Bold(true).Render("● RUNNING")
	} else {
		stateLabel = warningStyle.Render("⏸ PAUSED")
	}

	bar := t.bar.ViewAs(t.engine.Progress())
	info := mutedStyle.Render(fmt.Sprintf("%d min session", t.engine.InitialMinutes()))

	var controls string
	if state.IsRunning {
		controls = mutedStyle.Render("space: pause  q: quit")
	} else {
		controls = mutedStyle.Render("s: start  r: reset  m: mode  ←/→: preset  +/-: adjust")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		presetRow,
		modeRow,
		"",
		countdown,
		stateLabel,
		"",
		bar,
		info,
		"",
		controls,
	)

	return panelStyle.Width(w).Render(content)
}
