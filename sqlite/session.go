// Package sqlite implements repo interfaces
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"

	"github.com/pomotrack/pomotrack"
)

const SelectAllSessions = "SELECT id, task_id, session_type, duration_minutes, completed_at FROM pomodoro_sessions"

type sessionEntity struct {
	ID              int64
	TaskID          sql.NullInt64
	SessionType     string
	DurationMinutes int
	CompletedAt     int64
}

type sessionRepo struct {
	dbGetter txStdLib.DBGetter
	l        log.Logger
}

func NewSessionRepo(dbGetter txStdLib.DBGetter, logger log.Logger) *sessionRepo {
	return &sessionRepo{
		dbGetter: dbGetter,
		l:        logger,
	}
}

func (r *sessionRepo) InsertSession(ctx context.Context, session pomotrack.SessionRecord) (pomotrack.ExistingSessionRecord, error) {
	db := r.dbGetter(ctx)
	e := mapToSessionEntity(pomotrack.ExistingSessionRecord{SessionRecord: session})

	args := []any{
		e.TaskID,
		e.SessionType,
		e.DurationMinutes,
		e.CompletedAt,
	}
	query := "INSERT INTO pomodoro_sessions (task_id, session_type, duration_minutes, completed_at) VALUES " + GenerateParameters(len(args))
	r.l.Debug("creating session", "query", query, "args", args)
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return pomotrack.ExistingSessionRecord{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return pomotrack.ExistingSessionRecord{}, err
	}

	return pomotrack.ExistingSessionRecord{
		ID:            id,
		SessionRecord: session,
	}, nil
}

func (r *sessionRepo) GetSessionsCompletedSince(ctx context.Context, since time.Time) ([]pomotrack.ExistingSessionRecord, error) {
	db := r.dbGetter(ctx)
	query := SelectAllSessions + " WHERE completed_at >= ? ORDER BY completed_at"
	r.l.Debug("getting sessions", "query", query, "since", since)
	rows, err := db.QueryContext(ctx, query, since.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint

	var sessions []pomotrack.ExistingSessionRecord
	for rows.Next() {
		session, err := extractSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepo) GetSessionTotals(ctx context.Context) (pomotrack.SessionTotals, error) {
	db := r.dbGetter(ctx)
	query := "SELECT COUNT(*), COALESCE(SUM(CASE WHEN session_type = ? THEN 1 ELSE 0 END), 0), COALESCE(SUM(duration_minutes), 0) FROM pomodoro_sessions"
	r.l.Debug("getting session totals", "query", query)

	var totals pomotrack.SessionTotals
	row := db.QueryRowContext(ctx, query, string(pomotrack.WorkSession))
	if err := row.Scan(&totals.Sessions, &totals.WorkSessions, &totals.Minutes); err != nil {
		return pomotrack.SessionTotals{}, err
	}
	totals.BreakSessions = totals.Sessions - totals.WorkSessions
	return totals, nil
}

func extractSession(s Scannable) (pomotrack.ExistingSessionRecord, error) {
	var e sessionEntity
	if err := s.Scan(&e.ID, &e.TaskID, &e.SessionType, &e.DurationMinutes, &e.CompletedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pomotrack.ExistingSessionRecord{}, pomotrack.ErrNotFound
		}
		return pomotrack.ExistingSessionRecord{}, err
	}

	return mapToExistingSessionRecord(e), nil
}

func mapToSessionEntity(session pomotrack.ExistingSessionRecord) sessionEntity {
	var taskID sql.NullInt64
	if session.TaskID != nil {
		taskID = sql.NullInt64{Int64: *session.TaskID, Valid: true}
	}
	return sessionEntity{
		ID:              session.ID,
		TaskID:          taskID,
		SessionType:     string(session.Type),
		DurationMinutes: session.DurationMinutes,
		CompletedAt:     session.CompletedAt.Unix(),
	}
}

func mapToExistingSessionRecord(e sessionEntity) pomotrack.ExistingSessionRecord {
	var taskID *int64
	if e.TaskID.Valid {
		id := e.TaskID.Int64
		taskID = &id
	}
	return pomotrack.ExistingSessionRecord{
		ID: e.ID,
		SessionRecord: pomotrack.SessionRecord{
			TaskID:          taskID,
			Type:            pomotrack.SessionType(e.SessionType),
			DurationMinutes: e.DurationMinutes,
			CompletedAt:     time.Unix(e.CompletedAt, 0),
		},
	}
}
