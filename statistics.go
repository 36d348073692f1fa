package pomotrack

// Statistics is a point-in-time snapshot derived from sessions and tasks.
// Never stored; recomputed on every request.
type Statistics struct {
	TotalSessions      int
	TotalWorkSessions  int
	TotalBreakSessions int
	TotalMinutes       int
	CompletedTasks     int

	// AverageSessionsPerDay is the mean over calendar days with at least one
	// session in the trailing 30-day window, rounded to one decimal.
	AverageSessionsPerDay float64

	// StreakDays counts consecutive calendar days with at least one session,
	// ending today. A day without sessions breaks the streak; no session
	// today means zero.
	StreakDays int
}
