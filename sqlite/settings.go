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

// settingsRowID pins the singleton row to a fixed well-known key.
const settingsRowID = 1

const SelectSettings = "SELECT id, work_duration, short_break_duration, long_break_duration, sessions_until_long_break, created_at, updated_at FROM user_settings WHERE id = ?"

type settingsEntity struct {
	ID                     int64
	WorkDuration           int
	ShortBreakDuration     int
	LongBreakDuration      int
	SessionsUntilLongBreak int
	CreatedAt              int64
	UpdatedAt              int64
}

type settingsRepo struct {
	dbGetter txStdLib.DBGetter
	l        log.Logger
}

func NewSettingsRepo(dbGetter txStdLib.DBGetter, logger log.Logger) *settingsRepo {
	return &settingsRepo{
		dbGetter: dbGetter,
		l:        logger,
	}
}

func (r *settingsRepo) GetSettings(ctx context.Context) (pomotrack.ExistingSettingsRecord, error) {
	db := r.dbGetter(ctx)
	row := db.QueryRowContext(ctx, SelectSettings, settingsRowID)

	return extractSettings(row)
}

func (r *settingsRepo) InsertSettings(ctx context.Context, settings pomotrack.SettingsRecord) (pomotrack.ExistingSettingsRecord, error) {
	db := r.dbGetter(ctx)
	existingRecord := pomotrack.ExistingSettingsRecord{
		SettingsRecord: settings,
		DBRow:          pomotrack.NewDBRow(settingsRowID),
	}
	e := mapToSettingsEntity(existingRecord)

	args := []any{
		e.ID,
		e.WorkDuration,
		e.ShortBreakDuration,
		e.LongBreakDuration,
		e.SessionsUntilLongBreak,
		e.CreatedAt,
		e.UpdatedAt,
	}
	query := "INSERT INTO user_settings (id, work_duration, short_break_duration, long_break_duration, sessions_until_long_break, created_at, updated_at) VALUES " + GenerateParameters(len(args))
	r.l.Debug("creating settings", "query", query, "args", args)
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return pomotrack.ExistingSettingsRecord{}, err
	}

	return existingRecord, nil
}

func (r *settingsRepo) UpdateSettings(ctx context.Context, settings pomotrack.SettingsRecord) (pomotrack.ExistingSettingsRecord, error) {
	existing, err := r.GetSettings(ctx)
	if err != nil {
		return existing, err
	}

	existing.SettingsRecord = settings
	existing.UpdatedAt = time.Now()
	e := mapToSettingsEntity(existing)

	query := "UPDATE user_settings SET work_duration = ?, short_break_duration = ?, long_break_duration = ?, sessions_until_long_break = ?, updated_at = ? WHERE id = ?"
	args := []any{
		e.WorkDuration,
		e.ShortBreakDuration,
		e.LongBreakDuration,
		e.SessionsUntilLongBreak,
		e.UpdatedAt,
		e.ID,
	}
	r.l.Debug("updating settings", "query", query, "args", args)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, args...); err != nil {
		return pomotrack.ExistingSettingsRecord{}, err
	}

	return existing, nil
}

func extractSettings(s Scannable) (pomotrack.ExistingSettingsRecord, error) {
	var e settingsEntity
	if err := s.Scan(&e.ID, &e.WorkDuration, &e.ShortBreakDuration, &e.LongBreakDuration, &e.SessionsUntilLongBreak, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pomotrack.ExistingSettingsRecord{}, pomotrack.ErrNotFound
		}
		return pomotrack.ExistingSettingsRecord{}, err
	}

	return mapToExistingSettingsRecord(e), nil
}

func mapToSettingsEntity(settings pomotrack.ExistingSettingsRecord) settingsEntity {
	return settingsEntity{
		ID:                     settings.ID,
		WorkDuration:           settings.WorkDuration,
		ShortBreakDuration:     settings.ShortBreakDuration,
		LongBreakDuration:      settings.LongBreakDuration,
		SessionsUntilLongBreak: settings.SessionsUntilLongBreak,
		CreatedAt:              settings.CreatedAt.Unix(),
		UpdatedAt:              settings.UpdatedAt.Unix(),
	}
}

func mapToExistingSettingsRecord(e settingsEntity) pomotrack.ExistingSettingsRecord {
	return pomotrack.ExistingSettingsRecord{
		DBRow: pomotrack.DBRow{
			ID:        e.ID,
			CreatedAt: time.Unix(e.CreatedAt, 0),
			UpdatedAt: time.Unix(e.UpdatedAt, 0),
		},
		SettingsRecord: pomotrack.SettingsRecord{
			WorkDuration:           e.WorkDuration,
			ShortBreakDuration:     e.ShortBreakDuration,
			LongBreakDuration:      e.LongBreakDuration,
			SessionsUntilLongBreak: e.SessionsUntilLongBreak,
		},
	}
}
