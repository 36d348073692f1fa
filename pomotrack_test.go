package pomotrack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSessionType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    SessionType
		wantErr bool
	}{
		{"work", WorkSession, false},
		{"short_break", ShortBreakSession, false},
		{"long_break", LongBreakSession, false},
		{"", "", true},
		{"WORK", "", true},
		{"nap", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSessionType(tt.in)
			if tt.wantErr {
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSessionTypeIsBreak(t *testing.T) {
	t.Parallel()

	assert.False(t, WorkSession.IsBreak())
	assert.True(t, ShortBreakSession.IsBreak())
	assert.True(t, LongBreakSession.IsBreak())
}

func TestParseNoteType(t *testing.T) {
	t.Parallel()

	got, err := ParseNoteType("drawing")
	require.NoError(t, err)
	assert.Equal(t, DrawingNote, got)

	_, err = ParseNoteType("audio")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestPatchIsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, TaskPatch{}.IsZero())
	title := "t"
	assert.False(t, TaskPatch{Title: &title}.IsZero())

	assert.True(t, NotePatch{}.IsZero())
	content := "c"
	assert.False(t, NotePatch{Content: &content}.IsZero())
}
