package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/BogdanLi/productivity-timer/internal/store"
)

type settingsViewModel struct {
	store  *store.Store
	width  int
	height int

	cfg store.Config

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	interval *string
	sound    *bool
}

func newSettingsViewModel(s *store.Store) settingsViewModel {
	interval := ""
	sound := true
	return settingsViewModel{
		store:    s,
		cfg:      s.LoadConfig(),
		interval: &interval,
		sound:    &sound,
	}
}

func (s *settingsViewModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsViewModel) update(msg tea.Msg) (settingsViewModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsViewModel) showForm() (settingsViewModel, tea.Cmd) {
	*s.interval = strconv.Itoa(s.cfg.LongBreakInterval)
	*s.sound = s.cfg.SoundEnabled

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Focus sessions before long break (0 = never)").
				Value(s.interval).
				Validate(func(v string) error {
					n, err := strconv.Atoi(strings.TrimSpace(v))
					if err != nil || n < 0 {
						return fmt.Errorf("enter a non-negative number")
					}
					return nil
				}),
			huh.NewConfirm().Title("Play completion sound").Value(s.sound),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsViewModel) updateForm(msg tea.Msg) (settingsViewModel, tea.Cmd) {
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
		interval, _ := strconv.Atoi(strings.TrimSpace(*s.interval))
		s.cfg = store.Config{
			LongBreakInterval: interval,
			SoundEnabled:      *s.sound,
		}
		if err := s.store.SaveConfig(s.cfg); err != nil {
			return s, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
		}
		return s, func() tea.Msg { return configSavedMsg{} }
	}

	return s, cmd
}

func (s settingsViewModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	title := titleStyle.Render("Settings")

	interval := "never"
	if s.cfg.LongBreakInterval >= 2 {
		interval = fmt.Sprintf("every %d focus sessions", s.cfg.LongBreakInterval)
	}
	sound := "off"
	if s.cfg.SoundEnabled {
		sound = "on"
	}

	rows := []string{
		title,
		"",
		fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(24).Render("Long break"), highlightStyle.Render(interval)),
		fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(24).Render("Completion sound"), highlightStyle.Render(sound)),
		"",
		mutedStyle.Render("Press enter to edit settings"),
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
