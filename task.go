package pomotrack

import "context"

type TaskRecord struct {
	Title       string
	Description string

	//
	EstimatedPomodoros int
	CompletedPomodoros int
	IsCompleted        bool
}

type ExistingTaskRecord struct {
	DBRow
	TaskRecord
}

// TaskPatch is a partial update; nil fields are left untouched.
// CompletedPomodoros is deliberately absent - only the session recorder
// advances it, and only by increments.
type TaskPatch struct {
	Title              *string
	Description        *string
	EstimatedPomodoros *int
	IsCompleted        *bool
}

func (p TaskPatch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.EstimatedPomodoros == nil && p.IsCompleted == nil
}

type TaskRepo interface {
	InsertTask(context.Context, TaskRecord) (ExistingTaskRecord, error)
	GetTask(ctx context.Context, id int64) (ExistingTaskRecord, error)
	GetAllTasks(context.Context) ([]ExistingTaskRecord, error)
	UpdateTask(ctx context.Context, id int64, patch TaskPatch) (ExistingTaskRecord, error)
	DeleteTask(ctx context.Context, id int64) (ExistingTaskRecord, error)
	// IncrementCompletedPomodoros applies a relative +1 so concurrent
	// recorders serialize at the row instead of losing updates.
	IncrementCompletedPomodoros(ctx context.Context, id int64) error
	CountCompletedTasks(context.Context) (int, error)
}
