package main

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Thiht/transactor"
	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/pomotrack/pomotrack"
	"github.com/pomotrack/pomotrack/sqlite"
)

type integrationFixture struct {
	db       *sql.DB
	tx       transactor.Transactor
	dbGetter txStdLib.DBGetter
}

// newIntegrationFixture runs the real migrations against an in-memory
// database.
func newIntegrationFixture(t *testing.T) *integrationFixture {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)
	require.NoError(t, runMigrations(db))

	tx, dbGetter := txStdLib.NewTransactor(db, txStdLib.NestedTransactionsSavepoints)
	return &integrationFixture{db: db, tx: tx, dbGetter: dbGetter}
}

func (f *integrationFixture) countSessions(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, f.db.QueryRow("SELECT COUNT(*) FROM pomodoro_sessions").Scan(&n))
	return n
}

func TestRecordSessionAtomicity(t *testing.T) {
	ctx := context.Background()
	f := newIntegrationFixture(t)

	sessionRepo := sqlite.NewSessionRepo(f.dbGetter, *log.Default())
	taskRepo := sqlite.NewTaskRepo(f.dbGetter, *log.Default())
	recorder := NewSessionRecorder(sessionRepo, taskRepo, f.tx, *log.Default())

	t.Run("failed task increment leaves no session behind", func(t *testing.T) {
		missing := int64(9999)
		_, err := recorder.Record(ctx, recordSessionRequest{
			taskID:          &missing,
			sessionType:     "work",
			durationMinutes: 25,
		})
		require.ErrorIs(t, err, pomotrack.ErrNotFound)
		assert.Zero(t, f.countSessions(t), "rolled-back session must not persist")
	})

	t.Run("work sessions advance the task and persist together", func(t *testing.T) {
		task, err := taskRepo.InsertTask(ctx, pomotrack.TaskRecord{Title: "deep work", EstimatedPomodoros: 4})
		require.NoError(t, err)

		for range 2 {
			_, err := recorder.Record(ctx, recordSessionRequest{
				taskID:          &task.ID,
				sessionType:     "work",
				durationMinutes: 25,
			})
			require.NoError(t, err)
		}
		_, err = recorder.Record(ctx, recordSessionRequest{
			taskID:          &task.ID,
			sessionType:     "short_break",
			durationMinutes: 5,
		})
		require.NoError(t, err)

		got, err := taskRepo.GetTask(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.CompletedPomodoros, "breaks must not advance the task")
		assert.Equal(t, 3, f.countSessions(t))
	})
}

func TestStatisticsOverRealStore(t *testing.T) {
	ctx := context.Background()
	f := newIntegrationFixture(t)

	sessionRepo := sqlite.NewSessionRepo(f.dbGetter, *log.Default())
	taskRepo := sqlite.NewTaskRepo(f.dbGetter, *log.Default())
	recorder := NewSessionRecorder(sessionRepo, taskRepo, f.tx, *log.Default())
	engine := NewStatsEngine(sessionRepo, taskRepo, *log.Default())

	_, err := recorder.Record(ctx, recordSessionRequest{sessionType: "work", durationMinutes: 25})
	require.NoError(t, err)
	_, err = recorder.Record(ctx, recordSessionRequest{sessionType: "work", durationMinutes: 25})
	require.NoError(t, err)
	_, err = recorder.Record(ctx, recordSessionRequest{sessionType: "long_break", durationMinutes: 15})
	require.NoError(t, err)

	stats, err := engine.Compute(ctx, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalSessions)
	assert.Equal(t, 2, stats.TotalWorkSessions)
	assert.Equal(t, 1, stats.TotalBreakSessions)
	assert.Equal(t, 65, stats.TotalMinutes)
	assert.Equal(t, 1, stats.StreakDays)
	assert.InDelta(t, 3.0, stats.AverageSessionsPerDay, 0.0001)
}

func TestSettingsSeededOnce(t *testing.T) {
	ctx := context.Background()
	f := newIntegrationFixture(t)

	provider := newSettingsProvider(sqlite.NewSettingsRepo(f.dbGetter, *log.Default()), f.tx)

	first, err := provider.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, pomotrack.DefaultSettings(), first.SettingsRecord)

	second, err := provider.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.SettingsRecord, second.SettingsRecord)

	var rows int
	require.NoError(t, f.db.QueryRow("SELECT COUNT(*) FROM user_settings").Scan(&rows))
	assert.Equal(t, 1, rows)
}
