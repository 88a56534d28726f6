package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/BogdanLi/productivity-timer/internal/store"
	"github.com/BogdanLi/productivity-timer/internal/timer"
)

type presetsViewModel struct {
	presets *store.PresetStore
	engine  *timer.Engine
	width   int
	height  int

	cursor int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formName      *string
	formFocus     *string
	formBreak     *string
	formLongBreak *string
}

func newPresetsViewModel(ps *store.PresetStore, e *timer.Engine) presetsViewModel {
	name, focus, brk, long := "", "", "", ""
	return presetsViewModel{
		presets:       ps,
		engine:        e,
		formName:      &name,
		formFocus:     &focus,
		formBreak:     &brk,
		formLongBreak: &long,
	}
}

func (p *presetsViewModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p presetsViewModel) update(msg tea.Msg) (presetsViewModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		list := p.presets.Presets()
		switch {
		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, keys.Down):
			if p.cursor < len(list)-1 {
				p.cursor++
			}
		case key.Matches(msg, keys.Enter):
			if len(list) == 0 {
				return p, nil
			}
			if p.engine.State().IsRunning {
				return p, func() tea.Msg {
					return statusMsg{text: "Pause the timer to switch presets", isError: true}
				}
			}
			p.engine.SwitchPreset(p.cursor)
			return p, func() tea.Msg {
				return statusMsg{text: "Activated " + list[p.cursor].Name}
			}
		case key.Matches(msg, keys.New):
			return p.showNewPresetForm()
		case key.Matches(msg, keys.Delete):
			if len(list) > 0 {
				return p.deletePreset(list[p.cursor].ID)
			}
		}
	}
	return p, nil
}

func (p presetsViewModel) deletePreset(id string) (presetsViewModel, tea.Cmd) {
	if err := p.presets.Delete(id); err != nil {
		return p, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}
	// Deleting the active preset must not leave the engine pointing past the
	// list end.
	p.engine.RevalidatePreset()
	if p.cursor >= len(p.presets.Presets()) {
		p.cursor = max(0, len(p.presets.Presets())-1)
	}
	return p, func() tea.Msg { return presetsChangedMsg{} }
}

// validateMinutes enforces the 1..60 minute bound at the input boundary.
func validateMinutes(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a number of minutes")
	}
	if n < store.MinMinutes || n > store.MaxMinutes {
		return fmt.Errorf("minutes must be between %d and %d", store.MinMinutes, store.MaxMinutes)
	}
	return nil
}

func (p presetsViewModel) showNewPresetForm() (presetsViewModel, tea.Cmd) {
	*p.formName = ""
	*p.formFocus = strconv.Itoa(store.DefaultFocusMinutes)
	*p.formBreak = strconv.Itoa(store.DefaultBreakMinutes)
	*p.formLongBreak = strconv.Itoa(store.DefaultLongBreakMinutes)

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Preset Name").Value(p.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name must not be empty")
					}
					return nil
				}),
			huh.NewInput().Title("Focus (min)").Value(p.formFocus).Validate(validateMinutes),
			huh.NewInput().Title("Break (min)").Value(p.formBreak).Validate(validateMinutes),
			huh.NewInput().Title("Long break (min)").Value(p.formLongBreak).Validate(validateMinutes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p presetsViewModel) updateForm(msg tea.Msg) (presetsViewModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		focus, _ := strconv.Atoi(strings.TrimSpace(*p.formFocus))
		brk, _ := strconv.Atoi(strings.TrimSpace(*p.formBreak))
		long, _ := strconv.Atoi(strings.TrimSpace(*p.formLongBreak))

		preset := store.TimerPreset{
			ID:   uuid.NewString(),
			Name: strings.TrimSpace(*p.formName),
			Times: store.TimerPresetTimes{
				FocusTime:     focus,
				BreakTime:     brk,
				LongBreakTime: long,
			},
		}
		if err := p.presets.Add(preset); err != nil {
			return p, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
		}
		p.engine.RevalidatePreset()
		return p, func() tea.Msg { return presetsChangedMsg{} }
	}

	return p, cmd
}

func (p presetsViewModel) view() string {
	w := p.width - 4

	if p.formActive && p.form != nil {
		title := titleStyle.Render("New Preset")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Presets")
	list := p.presets.Presets()

	if len(list) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No presets yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-3s %-24s %8s %8s %12s", "", "Name", "Focus", "Break", "Long Break"))
	rows = append(rows, header)

	activeIdx := p.engine.ActivePresetIndex()
	for i, preset := range list {
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		active := " "
		if i == activeIdx {
			active = successStyle.Render("●")
		}
		row := style.Render(fmt.Sprintf("%s%s %-24s %6dm %6dm %10dm",
			cursor, active, preset.Name,
			preset.Times.FocusTime, preset.Times.BreakTime, preset.Times.LongBreakTime,
		))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: activate  n: new  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
