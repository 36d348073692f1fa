package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Thiht/transactor"
	"github.com/charmbracelet/log"

	"github.com/pomotrack/pomotrack"
)

type recordSessionRequest struct {
	taskID          *int64
	sessionType     string
	durationMinutes int
}

// SessionRecorder durably records finished sessions. It is the only writer
// of a task's completed pomodoro count: a work session bound to a task
// advances the count by exactly one, in the same transaction as the session
// insert. Break sessions never touch task state.
type SessionRecorder struct {
	sessions pomotrack.SessionRepo
	tasks    pomotrack.TaskRepo
	tx       transactor.Transactor
	now      func() time.Time
	l        log.Logger
}

func NewSessionRecorder(sessions pomotrack.SessionRepo, tasks pomotrack.TaskRepo, tx transactor.Transactor, logger log.Logger) *SessionRecorder {
	return &SessionRecorder{
		sessions: sessions,
		tasks:    tasks,
		tx:       tx,
		now:      time.Now,
		l:        logger,
	}
}

// Record validates the request, then inserts the session and conditionally
// increments the referenced task as a single atomic unit. The task is
// resolved before the session insert so recording against a task that no
// longer exists fails with ErrNotFound and rolls back; nothing persists.
// Record is not idempotent - calling it twice records two sessions.
func (r *SessionRecorder) Record(ctx context.Context, req recordSessionRequest) (pomotrack.ExistingSessionRecord, error) {
	sessionType, err := pomotrack.ParseSessionType(req.sessionType)
	if err != nil {
		return pomotrack.ExistingSessionRecord{}, err
	}
	if req.durationMinutes <= 0 {
		return pomotrack.ExistingSessionRecord{}, &pomotrack.ValidationError{
			Field:  "durationMinutes",
			Reason: "must be a positive integer",
		}
	}

	record := pomotrack.SessionRecord{
		TaskID:          req.taskID,
		Type:            sessionType,
		DurationMinutes: req.durationMinutes,
		CompletedAt:     r.now(),
	}

	var created pomotrack.ExistingSessionRecord
	err = r.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if record.TaskID != nil {
			if sessionType == pomotrack.WorkSession {
				if err := r.tasks.IncrementCompletedPomodoros(ctx, *record.TaskID); err != nil {
					return fmt.Errorf("failed to advance task %d: %w", *record.TaskID, err)
				}
			} else if _, err := r.tasks.GetTask(ctx, *record.TaskID); err != nil {
				return fmt.Errorf("failed to resolve task %d: %w", *record.TaskID, err)
			}
		}

		inserted, err := r.sessions.InsertSession(ctx, record)
		if err != nil {
			return fmt.Errorf("failed to insert session: %w", err)
		}

		created = inserted
		return nil
	})
	if err != nil {
		if errors.Is(err, pomotrack.ErrNotFound) {
			return pomotrack.ExistingSessionRecord{}, err
		}
		return pomotrack.ExistingSessionRecord{}, &pomotrack.TransactionError{Op: "record session", Err: err}
	}

	r.l.Debug("recorded session", "id", created.ID, "type", created.Type, "taskID", req.taskID)
	return created, nil
}
