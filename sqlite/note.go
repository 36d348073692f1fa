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
	SelectAllNotes = "SELECT id, title, content, note_type, created_at, updated_at FROM notes"
	UpdateNote     = "UPDATE notes SET title = ?, content = ?, note_type = ?, updated_at = ? WHERE id = ?"
)

type noteEntity struct {
	ID        int64
	Title     string
	Content   string
	NoteType  string
	CreatedAt int64
	UpdatedAt int64
}

type noteRepo struct {
	dbGetter txStdLib.DBGetter
	l        log.Logger
}

func NewNoteRepo(dbGetter txStdLib.DBGetter, logger log.Logger) *noteRepo {
	return &noteRepo{
		dbGetter: dbGetter,
		l:        logger,
	}
}

func (r *noteRepo) InsertNote(ctx context.Context, note pomotrack.NoteRecord) (pomotrack.ExistingNoteRecord, error) {
	if note.Title == "" || note.Type == "" {
		return pomotrack.ExistingNoteRecord{}, fmt.Errorf("provide required fields 'Title' and 'Type'")
	}

	db := r.dbGetter(ctx)
	existingRecord := pomotrack.ExistingNoteRecord{
		NoteRecord: note,
		DBRow:      pomotrack.NewDBRow(0),
	}
	e := mapToNoteEntity(existingRecord)

	args := []any{
		e.Title,
		e.Content,
		e.NoteType,
		e.CreatedAt,
		e.UpdatedAt,
	}
	query := "INSERT INTO notes (title, content, note_type, created_at, updated_at) VALUES " + GenerateParameters(len(args))
	r.l.Debug("creating note", "query", query, "args", args)
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return pomotrack.ExistingNoteRecord{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return pomotrack.ExistingNoteRecord{}, err
	}
	existingRecord.ID = id

	return existingRecord, nil
}

func (r *noteRepo) GetNote(ctx context.Context, id int64) (pomotrack.ExistingNoteRecord, error) {
	db := r.dbGetter(ctx)
	row := db.QueryRowContext(
		ctx,
		fmt.Sprintf("%s WHERE id=?", SelectAllNotes), id,
	)

	return extractNote(row)
}

func (r *noteRepo) GetAllNotes(ctx context.Context) ([]pomotrack.ExistingNoteRecord, error) {
	db := r.dbGetter(ctx)
	query := SelectAllNotes + " ORDER BY created_at DESC"
	r.l.Debug("getting all notes", "query", query)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint

	var notes []pomotrack.ExistingNoteRecord
	for rows.Next() {
		note, err := extractNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepo) UpdateNote(ctx context.Context, id int64, patch pomotrack.NotePatch) (pomotrack.ExistingNoteRecord, error) {
	existing, err := r.GetNote(ctx, id)
	if err != nil {
		return existing, err
	}

	if patch.Title != nil {
		existing.Title = *patch.Title
	}
	if patch.Content != nil {
		existing.Content = *patch.Content
	}
	if patch.Type != nil {
		existing.Type = *patch.Type
	}
	existing.UpdatedAt = time.Now()
	e := mapToNoteEntity(existing)

	args := []any{
		e.Title,
		e.Content,
		e.NoteType,
		e.UpdatedAt,
		e.ID,
	}
	r.l.Debug("updating note", "query", UpdateNote, "args", args)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, UpdateNote, args...); err != nil {
		return pomotrack.ExistingNoteRecord{}, err
	}

	return existing, nil
}

func (r *noteRepo) DeleteNote(ctx context.Context, id int64) (pomotrack.ExistingNoteRecord, error) {
	existing, err := r.GetNote(ctx, id)
	if err != nil {
		return pomotrack.ExistingNoteRecord{}, err
	}

	db := r.dbGetter(ctx)
	query := "DELETE FROM notes WHERE id = ?"
	r.l.Debug("deleting note", "query", query, "id", id)
	if _, err := db.ExecContext(ctx, query, id); err != nil {
		return pomotrack.ExistingNoteRecord{}, err
	}

	return existing, nil
}

func extractNote(s Scannable) (pomotrack.ExistingNoteRecord, error) {
	var e noteEntity
	if err := s.Scan(&e.ID, &e.Title, &e.Content, &e.NoteType, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pomotrack.ExistingNoteRecord{}, pomotrack.ErrNotFound
		}
		return pomotrack.ExistingNoteRecord{}, err
	}

	return mapToExistingNoteRecord(e), nil
}

func mapToNoteEntity(note pomotrack.ExistingNoteRecord) noteEntity {
	return noteEntity{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		NoteType:  string(note.Type),
		CreatedAt: note.CreatedAt.Unix(),
		UpdatedAt: note.UpdatedAt.Unix(),
	}
}

func mapToExistingNoteRecord(e noteEntity) pomotrack.ExistingNoteRecord {
	return pomotrack.ExistingNoteRecord{
		DBRow: pomotrack.DBRow{
			ID:        e.ID,
			CreatedAt: time.Unix(e.CreatedAt, 0),
			UpdatedAt: time.Unix(e.UpdatedAt, 0),
		},
		NoteRecord: pomotrack.NoteRecord{
			Title:   e.Title,
			Content: e.Content,
			Type:    pomotrack.NoteType(e.NoteType),
		},
	}
}
