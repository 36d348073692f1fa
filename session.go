package pomotrack

import (
	"context"
	"fmt"
	"time"
)

type SessionType string

const (
	WorkSession       SessionType = "work"
	ShortBreakSession SessionType = "short_break"
	LongBreakSession  SessionType = "long_break"
)

func ParseSessionType(s string) (SessionType, error) {
	switch t := SessionType(s); t {
	case WorkSession, ShortBreakSession, LongBreakSession:
		return t, nil
	default:
		return "", &ValidationError{Field: "sessionType", Reason: fmt.Sprintf("unknown session type %q", s)}
	}
}

func (t SessionType) IsBreak() bool {
	return t == ShortBreakSession || t == LongBreakSession
}

// SessionRecord is a completed work or break interval. Rows are immutable
// once inserted; CompletedAt is assigned by the server, not the client.
type SessionRecord struct {
	TaskID *int64
	Type   SessionType

	//
	DurationMinutes int
	CompletedAt     time.Time
}

type ExistingSessionRecord struct {
	ID int64
	SessionRecord
}

// SessionTotals are all-time aggregate counts over the sessions table.
type SessionTotals struct {
	Sessions      int
	WorkSessions  int
	BreakSessions int
	Minutes       int
}

type SessionRepo interface {
	InsertSession(context.Context, SessionRecord) (ExistingSessionRecord, error)
	GetSessionsCompletedSince(ctx context.Context, since time.Time) ([]ExistingSessionRecord, error)
	GetSessionTotals(context.Context) (SessionTotals, error)
}
