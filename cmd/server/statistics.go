package main

import (
	"context"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pomotrack/pomotrack"
)

const (
	averageWindowDays = 30
	streakWindowDays  = 365
)

// StatsEngine derives a productivity snapshot from session and task state.
// Pure read: it never mutates and never caches across calls.
type StatsEngine struct {
	sessions pomotrack.SessionRepo
	tasks    pomotrack.TaskRepo
	l        log.Logger
}

func NewStatsEngine(sessions pomotrack.SessionRepo, tasks pomotrack.TaskRepo, logger log.Logger) *StatsEngine {
	return &StatsEngine{
		sessions: sessions,
		tasks:    tasks,
		l:        logger,
	}
}

func (e *StatsEngine) Compute(ctx context.Context, now time.Time) (pomotrack.Statistics, error) {
	totals, err := e.sessions.GetSessionTotals(ctx)
	if err != nil {
		return pomotrack.Statistics{}, err
	}
	completedTasks, err := e.tasks.CountCompletedTasks(ctx)
	if err != nil {
		return pomotrack.Statistics{}, err
	}
	recent, err := e.sessions.GetSessionsCompletedSince(ctx, now.AddDate(0, 0, -streakWindowDays))
	if err != nil {
		return pomotrack.Statistics{}, err
	}

	stats := pomotrack.Statistics{
		TotalSessions:         totals.Sessions,
		TotalWorkSessions:     totals.WorkSessions,
		TotalBreakSessions:    totals.BreakSessions,
		TotalMinutes:          totals.Minutes,
		CompletedTasks:        completedTasks,
		AverageSessionsPerDay: averageSessionsPerDay(recent, now),
		StreakDays:            streakDays(recent, now),
	}
	e.l.Debug("computed statistics", "totalSessions", stats.TotalSessions, "averagePerDay", stats.AverageSessionsPerDay, "streakDays", stats.StreakDays)
	return stats, nil
}

// averageSessionsPerDay is the mean over calendar days that had at least one
// session in the trailing 30-day window; empty days are excluded from the
// denominator. Rounded half-up to one decimal.
func averageSessionsPerDay(sessions []pomotrack.ExistingSessionRecord, now time.Time) float64 {
	cutoff := now.AddDate(0, 0, -averageWindowDays)
	perDay := make(map[string]int)
	for _, s := range sessions {
		if s.CompletedAt.Before(cutoff) || s.CompletedAt.After(now) {
			continue
		}
		perDay[dayKey(s.CompletedAt, now.Location())]++
	}
	if len(perDay) == 0 {
		return 0
	}

	var total int
	for _, n := range perDay {
		total += n
	}
	mean := float64(total) / float64(len(perDay))
	return math.Floor(mean*10+0.5) / 10
}

// streakDays walks backward from the day containing now, counting
// consecutive calendar days with at least one session. The walk stops at the
// first empty day, so a day without sessions so far today means zero.
func streakDays(sessions []pomotrack.ExistingSessionRecord, now time.Time) int {
	days := make(map[string]struct{})
	cutoff := now.AddDate(0, 0, -streakWindowDays)
	for _, s := range sessions {
		if s.CompletedAt.Before(cutoff) || s.CompletedAt.After(now) {
			continue
		}
		days[dayKey(s.CompletedAt, now.Location())] = struct{}{}
	}

	var streak int
	for day := now; ; day = day.AddDate(0, 0, -1) {
		if _, ok := days[dayKey(day, now.Location())]; !ok {
			break
		}
		streak++
	}
	return streak
}

func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(time.DateOnly)
}
