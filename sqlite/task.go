package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"

	"github.com/pomotrack/pomotrack"
)

const (
	SelectAllTasks = "SELECT id, title, description, estimated_pomodoros, completed_pomodoros, is_completed, created_at, updated_at FROM tasks"
	UpdateTask     = "UPDATE tasks SET title = ?, description = ?, estimated_pomodoros = ?, is_completed = ?, updated_at = ? WHERE id = ?"
)

type taskEntity struct {
	ID                 int64
	Title              string
	Description        string
	EstimatedPomodoros int
	CompletedPomodoros int
	IsCompleted        bool
	CreatedAt          int64
	UpdatedAt          int64
}

type taskRepo struct {
	dbGetter txStdLib.DBGetter
	l        log.Logger
}

func NewTaskRepo(dbGetter txStdLib.DBGetter, logger log.Logger) *taskRepo {
	return &taskRepo{
		dbGetter: dbGetter,
		l:        logger,
	}
}

func (r *taskRepo) InsertTask(ctx context.Context, task pomotrack.TaskRecord) (pomotrack.ExistingTaskRecord, error) {
	if task.Title == "" {
		return pomotrack.ExistingTaskRecord{}, fmt.Errorf("provide required field 'Title'")
	}

	db := r.dbGetter(ctx)
	existingRecord := pomotrack.ExistingTaskRecord{
		TaskRecord: task,
		DBRow:      pomotrack.NewDBRow(0),
	}
	e := mapToTaskEntity(existingRecord)

	args := []any{
		e.Title,
		e.Description,
		e.EstimatedPomodoros,
		e.CompletedPomodoros,
		e.IsCompleted,
		e.CreatedAt,
		e.UpdatedAt,
	}
	query := "INSERT INTO tasks (title, description, estimated_pomodoros, completed_pomodoros, is_completed, created_at, updated_at) VALUES " + GenerateParameters(len(args))
	r.l.Debug("creating task", "query", query, "args", args)
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return pomotrack.ExistingTaskRecord{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return pomotrack.ExistingTaskRecord{}, err
	}
	existingRecord.ID = id

	return existingRecord, nil
}

func (r *taskRepo) GetTask(ctx context.Context, id int64) (pomotrack.ExistingTaskRecord, error) {
	db := r.dbGetter(ctx)
	row := db.QueryRowContext(
		ctx,
		fmt.Sprintf("%s WHERE id=?", SelectAllTasks), id,
	)

	return extractTask(row)
}

func (r *taskRepo) GetAllTasks(ctx context.Context) ([]pomotrack.ExistingTaskRecord, error) {
	db := r.dbGetter(ctx)
	query := SelectAllTasks + " ORDER BY created_at DESC"
	r.l.Debug("getting all tasks", "query", query)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint

	var tasks []pomotrack.ExistingTaskRecord
	for rows.Next() {
		task, err := extractTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepo) UpdateTask(ctx context.Context, id int64, patch pomotrack.TaskPatch) (pomotrack.ExistingTaskRecord, error) {
	existing, err := r.GetTask(ctx, id)
	if err != nil {
		return existing, err
	}

	if patch.Title != nil {
		existing.Title = *patch.Title
	}
	if patch.Description != nil {
		existing.Description = *patch.Description
	}
	if patch.EstimatedPomodoros != nil {
		existing.EstimatedPomodoros = *patch.EstimatedPomodoros
	}
	if patch.IsCompleted != nil {
		existing.IsCompleted = *patch.IsCompleted
	}
	existing.UpdatedAt = time.Now()
	e := mapToTaskEntity(existing)

	args := []any{
		e.Title,
		e.Description,
		e.EstimatedPomodoros,
		e.IsCompleted,
		e.UpdatedAt,
		e.ID,
	}
	r.l.Debug("updating task", "query", UpdateTask, "args", args)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, UpdateTask, args...); err != nil {
		return pomotrack.ExistingTaskRecord{}, err
	}

	return existing, nil
}

func (r *taskRepo) DeleteTask(ctx context.Context, id int64) (pomotrack.ExistingTaskRecord, error) {
	existing, err := r.GetTask(ctx, id)
	if err != nil {
		return pomotrack.ExistingTaskRecord{}, err
	}

	db := r.dbGetter(ctx)
	query := "DELETE FROM tasks WHERE id = ?"
	r.l.Debug("deleting task", "query", query, "id", id)
	if _, err := db.ExecContext(ctx, query, id); err != nil {
		return pomotrack.ExistingTaskRecord{}, err
	}

	return existing, nil
}

func (r *taskRepo) IncrementCompletedPomodoros(ctx context.Context, id int64) error {
	db := r.dbGetter(ctx)
	query := "UPDATE tasks SET completed_pomodoros = completed_pomodoros + 1, updated_at = ? WHERE id = ?"
	r.l.Debug("incrementing completed pomodoros", "query", query, "id", id)
	res, err := db.ExecContext(ctx, query, time.Now().Unix(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return pomotrack.ErrNotFound
	}
	return nil
}

func (r *taskRepo) CountCompletedTasks(ctx context.Context) (int, error) {
	db := r.dbGetter(ctx)
	query := "SELECT COUNT(*) FROM tasks WHERE is_completed = 1"
	var count int
	if err := db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func extractTask(s Scannable) (pomotrack.ExistingTaskRecord, error) {
	var e taskEntity
	if err := s.Scan(&e.ID, &e.Title, &e.Description, &e.EstimatedPomodoros, &e.CompletedPomodoros, &e.IsCompleted, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pomotrack.ExistingTaskRecord{}, pomotrack.ErrNotFound
		}
		return pomotrack.ExistingTaskRecord{}, err
	}

	return mapToExistingTaskRecord(e), nil
}

func mapToTaskEntity(task pomotrack.ExistingTaskRecord) taskEntity {
	return taskEntity{
		ID:                 task.ID,
		Title:              task.Title,
		Description:        task.Description,
		EstimatedPomodoros: task.EstimatedPomodoros,
		CompletedPomodoros: task.CompletedPomodoros,
		IsCompleted:        task.IsCompleted,
		CreatedAt:          task.CreatedAt.Unix(),
		UpdatedAt:          task.UpdatedAt.Unix(),
	}
}

func mapToExistingTaskRecord(e taskEntity) pomotrack.ExistingTaskRecord {
	return pomotrack.ExistingTaskRecord{
		DBRow: pomotrack.DBRow{
			ID:        e.ID,
			CreatedAt: time.Unix(e.CreatedAt, 0),
			UpdatedAt: time.Unix(e.UpdatedAt, 0),
		},
		TaskRecord: pomotrack.TaskRecord{
			Title:              e.Title,
			Description:        e.Description,
			EstimatedPomodoros: e.EstimatedPomodoros,
			CompletedPomodoros: e.CompletedPomodoros,
			IsCompleted:        e.IsCompleted,
		},
	}
}
