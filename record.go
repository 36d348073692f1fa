package pomotrack

import "time"

// DBRow carries the columns every mutable table shares.
type DBRow struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewDBRow(id int64) DBRow {
	now := time.Now()
	return DBRow{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
