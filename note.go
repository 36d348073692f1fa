package pomotrack

import (
	"context"
	"fmt"
)

type NoteType string

const (
	TextNote    NoteType = "text"
	DrawingNote NoteType = "drawing"
)

func ParseNoteType(s string) (NoteType, error) {
	switch t := NoteType(s); t {
	case TextNote, DrawingNote:
		return t, nil
	default:
		return "", &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown note type %q", s)}
	}
}

// NoteRecord holds free-form text or an encoded drawing payload. Notes are
// independent of tasks and sessions.
type NoteRecord struct {
	Title   string
	Content string
	Type    NoteType
}

type ExistingNoteRecord struct {
	DBRow
	NoteRecord
}

type NotePatch struct {
	Title   *string
	Content *string
	Type    *NoteType
}

func (p NotePatch) IsZero() bool {
	return p.Title == nil && p.Content == nil && p.Type == nil
}

type NoteRepo interface {
	InsertNote(context.Context, NoteRecord) (ExistingNoteRecord, error)
	GetNote(ctx context.Context, id int64) (ExistingNoteRecord, error)
	GetAllNotes(context.Context) ([]ExistingNoteRecord, error)
	UpdateNote(ctx context.Context, id int64, patch NotePatch) (ExistingNoteRecord, error)
	DeleteNote(ctx context.Context, id int64) (ExistingNoteRecord, error)
}
