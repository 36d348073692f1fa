package pomotrack

import "context"

// SettingsRecord is the single row of user timer preferences. Durations are
// minutes.
type SettingsRecord struct {
	WorkDuration           int
	ShortBreakDuration     int
	LongBreakDuration      int
	SessionsUntilLongBreak int
}

func DefaultSettings() SettingsRecord {
	return SettingsRecord{
		WorkDuration:           25,
		ShortBreakDuration:     5,
		LongBreakDuration:      15,
		SessionsUntilLongBreak: 4,
	}
}

type ExistingSettingsRecord struct {
	DBRow
	SettingsRecord
}

// SettingsRepo reads and writes the singleton settings row. GetSettings
// returns ErrNotFound before the row is seeded; callers get-or-create inside
// a transaction.
type SettingsRepo interface {
	GetSettings(context.Context) (ExistingSettingsRecord, error)
	InsertSettings(context.Context, SettingsRecord) (ExistingSettingsRecord, error)
	UpdateSettings(context.Context, SettingsRecord) (ExistingSettingsRecord, error)
}
