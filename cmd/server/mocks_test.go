package main

import (
	"context"
	"time"

	"github.com/Thiht/transactor"

	"github.com/pomotrack/pomotrack"
)

// mockSessionRepo is a mock implementation of pomotrack.SessionRepo
type mockSessionRepo struct {
	insertSessionFunc func(context.Context, pomotrack.SessionRecord) (pomotrack.ExistingSessionRecord, error)
	sessionsSinceFunc func(context.Context, time.Time) ([]pomotrack.ExistingSessionRecord, error)
	totalsFunc        func(context.Context) (pomotrack.SessionTotals, error)
}

func (m *mockSessionRepo) InsertSession(ctx context.Context, sr pomotrack.SessionRecord) (pomotrack.ExistingSessionRecord, error) {
	if m.insertSessionFunc != nil {
		return m.insertSessionFunc(ctx, sr)
	}
	return pomotrack.ExistingSessionRecord{ID: 1, SessionRecord: sr}, nil
}

func (m *mockSessionRepo) GetSessionsCompletedSince(ctx context.Context, since time.Time) ([]pomotrack.ExistingSessionRecord, error) {
	if m.sessionsSinceFunc != nil {
		return m.sessionsSinceFunc(ctx, since)
	}
	return nil, nil
}

func (m *mockSessionRepo) GetSessionTotals(ctx context.Context) (pomotrack.SessionTotals, error) {
	if m.totalsFunc != nil {
		return m.totalsFunc(ctx)
	}
	return pomotrack.SessionTotals{}, nil
}

// mockTaskRepo is a mock implementation of pomotrack.TaskRepo
type mockTaskRepo struct {
	insertTaskFunc     func(context.Context, pomotrack.TaskRecord) (pomotrack.ExistingTaskRecord, error)
	getTaskFunc        func(context.Context, int64) (pomotrack.ExistingTaskRecord, error)
	getAllTasksFunc    func(context.Context) ([]pomotrack.ExistingTaskRecord, error)
	updateTaskFunc     func(context.Context, int64, pomotrack.TaskPatch) (pomotrack.ExistingTaskRecord, error)
	deleteTaskFunc     func(context.Context, int64) (pomotrack.ExistingTaskRecord, error)
	incrementFunc      func(context.Context, int64) error
	countCompletedFunc func(context.Context) (int, error)
}

func (m *mockTaskRepo) InsertTask(ctx context.Context, tr pomotrack.TaskRecord) (pomotrack.ExistingTaskRecord, error) {
	if m.insertTaskFunc != nil {
		return m.insertTaskFunc(ctx, tr)
	}
	return pomotrack.ExistingTaskRecord{DBRow: pomotrack.NewDBRow(1), TaskRecord: tr}, nil
}

func (m *mockTaskRepo) GetTask(ctx context.Context, id int64) (pomotrack.ExistingTaskRecord, error) {
	if m.getTaskFunc != nil {
		return m.getTaskFunc(ctx, id)
	}
	return pomotrack.ExistingTaskRecord{DBRow: pomotrack.NewDBRow(id)}, nil
}

func (m *mockTaskRepo) GetAllTasks(ctx context.Context) ([]pomotrack.ExistingTaskRecord, error) {
	if m.getAllTasksFunc != nil {
		return m.getAllTasksFunc(ctx)
	}
	return nil, nil
}

func (m *mockTaskRepo) UpdateTask(ctx context.Context, id int64, patch pomotrack.TaskPatch) (pomotrack.ExistingTaskRecord, error) {
	if m.updateTaskFunc != nil {
		return m.updateTaskFunc(ctx, id, patch)
	}
	return pomotrack.ExistingTaskRecord{DBRow: pomotrack.NewDBRow(id)}, nil
}

func (m *mockTaskRepo) DeleteTask(ctx context.Context, id int64) (pomotrack.ExistingTaskRecord, error) {
	if m.deleteTaskFunc != nil {
		return m.deleteTaskFunc(ctx, id)
	}
	return pomotrack.ExistingTaskRecord{DBRow: pomotrack.NewDBRow(id)}, nil
}

func (m *mockTaskRepo) IncrementCompletedPomodoros(ctx context.Context, id int64) error {
	if m.incrementFunc != nil {
		return m.incrementFunc(ctx, id)
	}
	return nil
}

func (m *mockTaskRepo) CountCompletedTasks(ctx context.Context) (int, error) {
	if m.countCompletedFunc != nil {
		return m.countCompletedFunc(ctx)
	}
	return 0, nil
}

// mockSettingsRepo is a mock implementation of pomotrack.SettingsRepo
type mockSettingsRepo struct {
	getSettingsFunc    func(context.Context) (pomotrack.ExistingSettingsRecord, error)
	insertSettingsFunc func(context.Context, pomotrack.SettingsRecord) (pomotrack.ExistingSettingsRecord, error)
	updateSettingsFunc func(context.Context, pomotrack.SettingsRecord) (pomotrack.ExistingSettingsRecord, error)
}

func (m *mockSettingsRepo) GetSettings(ctx context.Context) (pomotrack.ExistingSettingsRecord, error) {
	if m.getSettingsFunc != nil {
		return m.getSettingsFunc(ctx)
	}
	return pomotrack.ExistingSettingsRecord{}, pomotrack.ErrNotFound
}

func (m *mockSettingsRepo) InsertSettings(ctx context.Context, sr pomotrack.SettingsRecord) (pomotrack.ExistingSettingsRecord, error) {
	if m.insertSettingsFunc != nil {
		return m.insertSettingsFunc(ctx, sr)
	}
	return pomotrack.ExistingSettingsRecord{DBRow: pomotrack.NewDBRow(1), SettingsRecord: sr}, nil
}

func (m *mockSettingsRepo) UpdateSettings(ctx context.Context, sr pomotrack.SettingsRecord) (pomotrack.ExistingSettingsRecord, error) {
	if m.updateSettingsFunc != nil {
		return m.updateSettingsFunc(ctx, sr)
	}
	return pomotrack.ExistingSettingsRecord{DBRow: pomotrack.NewDBRow(1), SettingsRecord: sr}, nil
}

// mockNoteRepo is a mock implementation of pomotrack.NoteRepo
type mockNoteRepo struct {
	insertNoteFunc  func(context.Context, pomotrack.NoteRecord) (pomotrack.ExistingNoteRecord, error)
	getNoteFunc     func(context.Context, int64) (pomotrack.ExistingNoteRecord, error)
	getAllNotesFunc func(context.Context) ([]pomotrack.ExistingNoteRecord, error)
	updateNoteFunc  func(context.Context, int64, pomotrack.NotePatch) (pomotrack.ExistingNoteRecord, error)
	deleteNoteFunc  func(context.Context, int64) (pomotrack.ExistingNoteRecord, error)
}

func (m *mockNoteRepo) InsertNote(ctx context.Context, nr pomotrack.NoteRecord) (pomotrack.ExistingNoteRecord, error) {
	if m.insertNoteFunc != nil {
		return m.insertNoteFunc(ctx, nr)
	}
	return pomotrack.ExistingNoteRecord{DBRow: pomotrack.NewDBRow(1), NoteRecord: nr}, nil
}

func (m *mockNoteRepo) GetNote(ctx context.Context, id int64) (pomotrack.ExistingNoteRecord, error) {
	if m.getNoteFunc != nil {
		return m.getNoteFunc(ctx, id)
	}
	return pomotrack.ExistingNoteRecord{DBRow: pomotrack.NewDBRow(id)}, nil
}

func (m *mockNoteRepo) GetAllNotes(ctx context.Context) ([]pomotrack.ExistingNoteRecord, error) {
	if m.getAllNotesFunc != nil {
		return m.getAllNotesFunc(ctx)
	}
	return nil, nil
}

func (m *mockNoteRepo) UpdateNote(ctx context.Context, id int64, patch pomotrack.NotePatch) (pomotrack.ExistingNoteRecord, error) {
	if m.updateNoteFunc != nil {
		return m.updateNoteFunc(ctx, id, patch)
	}
	return pomotrack.ExistingNoteRecord{DBRow: pomotrack.NewDBRow(id)}, nil
}

func (m *mockNoteRepo) DeleteNote(ctx context.Context, id int64) (pomotrack.ExistingNoteRecord, error) {
	if m.deleteNoteFunc != nil {
		return m.deleteNoteFunc(ctx, id)
	}
	return pomotrack.ExistingNoteRecord{DBRow: pomotrack.NewDBRow(id)}, nil
}

// mockTransactor is a mock implementation of transactor.Transactor
type mockTransactor struct {
	withinTransactionFunc func(context.Context, func(context.Context) error) error
}

func (m *mockTransactor) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	if m.withinTransactionFunc != nil {
		return m.withinTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

var _ transactor.Transactor = (*mockTransactor)(nil)

var _ pomotrack.SessionRepo = (*mockSessionRepo)(nil)
var _ pomotrack.TaskRepo = (*mockTaskRepo)(nil)
var _ pomotrack.SettingsRepo = (*mockSettingsRepo)(nil)
var _ pomotrack.NoteRepo = (*mockNoteRepo)(nil)
