package store

import (
	"sort"
	"time"
)

// RangeKind selects which date window FilterByRange applies.
type RangeKind int

const (
	RangeAll RangeKind = iota
	RangeToday
	RangeLast7Days
	RangeCustom
)

func (k RangeKind) Label() string {
	switch k {
	case RangeToday:
		return "Today"
	case RangeLast7Days:
		return "Last 7 Days"
	case RangeCustom:
		return "Custom"
	}
	return "All Time"
}

// RangeFilter describes a completion-time window. Start and End are only
// consulted for RangeCustom and are interpreted as local dates: the window is
// closed on both ends, start-of-day(Start) <= completedAt <= end-of-day(End).
type RangeFilter struct {
	Kind  RangeKind
	Start time.Time
	End   time.Time
}

// startOfDay returns local midnight of t's day.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay returns the last instant of t's day.
func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// FilterByRange returns the sessions whose completion time falls inside the
// filter window. Today means at or after local midnight; Last7Days is a
// rolling now-7d window, not calendar-aligned.
func FilterByRange(sessions []TimerSession, filter RangeFilter, now time.Time) []TimerSession {
	var cutoff, until time.Time
	switch filter.Kind {
	case RangeToday:
		cutoff = startOfDay(now)
	case RangeLast7Days:
		cutoff = now.AddDate(0, 0, -7)
	case RangeCustom:
		cutoff = startOfDay(filter.Start)
		until = endOfDay(filter.End)
	default:
		return sessions
	}

	var out []TimerSession
	for _, s := range sessions {
		if s.CompletedAt.Before(cutoff) {
			continue
		}
		if !until.IsZero() && s.CompletedAt.After(until) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Aggregate computes per-mode session counts and minutes for one preset.
// Zero matching sessions yields all-zero statistics.
func Aggregate(sessions []TimerSession, presetID string) TimerStatistics {
	stats := TimerStatistics{
		SessionsPerMode: map[TimerMode]int{ModeFocus: 0, ModeBreak: 0, ModeLongBreak: 0},
		MinutesPerMode:  map[TimerMode]int{ModeFocus: 0, ModeBreak: 0, ModeLongBreak: 0},
	}
	for _, s := range sessions {
		if s.PresetID != presetID {
			continue
		}
		stats.TotalSessions++
		stats.TotalMinutes += s.Duration
		stats.SessionsPerMode[s.Mode]++
		stats.MinutesPerMode[s.Mode] += s.Duration
	}
	return stats
}

// SortSessionsDesc returns a copy sorted most recent completion first, the
// display order for session history.
func SortSessionsDesc(sessions []TimerSession) []TimerSession {
	out := make([]TimerSession, len(sessions))
	copy(out, sessions)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CompletedAt.After(out[j].CompletedAt)
	})
	return out
}

// FilterByPreset returns the sessions recorded against one preset, in log
// order.
func FilterByPreset(sessions []TimerSession, presetID string) []TimerSession {
	var out []TimerSession
	for _, s := range sessions {
		if s.PresetID == presetID {
			out = append(out, s)
		}
	}
	return out
}
