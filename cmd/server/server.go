package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pomotrack/pomotrack"
)

type Server struct {
	recorder *SessionRecorder
	stats    *StatsEngine
	settings *settingsProvider
	tasks    pomotrack.TaskRepo
	notes    pomotrack.NoteRepo
	l        log.Logger
}

func NewServer(
	recorder *SessionRecorder,
	stats *StatsEngine,
	settings *settingsProvider,
	tasks pomotrack.TaskRepo,
	notes pomotrack.NoteRepo,
	logger log.Logger,
) http.Handler {
	s := &Server{
		recorder: recorder,
		stats:    stats,
		settings: settings,
		tasks:    tasks,
		notes:    notes,
		l:        logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/sessions", s.handleSessions)
	mux.HandleFunc("/statistics", s.handleStatistics)
	mux.HandleFunc("/tasks", s.handleTasks)
	mux.HandleFunc("/tasks/", s.handleTaskWithID)
	mux.HandleFunc("/settings", s.handleSettings)
	mux.HandleFunc("/notes", s.handleNotes)
	mux.HandleFunc("/notes/", s.handleNoteWithID)

	return chainMiddlewares(mux, withCORS, withRequestLogging(logger))
}

// DTOs (request/response)

type createSessionRequest struct {
	TaskID          *int64 `json:"taskId"`
	SessionType     string `json:"sessionType"`
	DurationMinutes int    `json:"durationMinutes"`
}

type sessionResponse struct {
	ID              int64     `json:"id"`
	TaskID          *int64    `json:"taskId,omitempty"`
	SessionType     string    `json:"sessionType"`
	DurationMinutes int       `json:"durationMinutes"`
	CompletedAt     time.Time `json:"completedAt"`
}

type statisticsResponse struct {
	TotalSessions         int     `json:"totalSessions"`
	TotalWorkSessions     int     `json:"totalWorkSessions"`
	TotalBreakSessions    int     `json:"totalBreakSessions"`
	TotalMinutes          int     `json:"totalMinutes"`
	CompletedTasks        int     `json:"completedTasks"`
	AverageSessionsPerDay float64 `json:"averageSessionsPerDay"`
	StreakDays            int     `json:"streakDays"`
}

type createTaskRequest struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	EstimatedPomodoros int    `json:"estimatedPomodoros"`
}

type updateTaskRequest struct {
	Title              *string `json:"title"`
	Description        *string `json:"description"`
	EstimatedPomodoros *int    `json:"estimatedPomodoros"`
	IsCompleted        *bool   `json:"isCompleted"`
}

type taskResponse struct {
	ID                 int64     `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	EstimatedPomodoros int       `json:"estimatedPomodoros"`
	CompletedPomodoros int       `json:"completedPomodoros"`
	IsCompleted        bool      `json:"isCompleted"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type settingsPayload struct {
	WorkDuration           int `json:"workDuration"`
	ShortBreakDuration     int `json:"shortBreakDuration"`
	LongBreakDuration      int `json:"longBreakDuration"`
	SessionsUntilLongBreak int `json:"sessionsUntilLongBreak"`
}

type createNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Type    string `json:"type"`
}

type updateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Type    *string `json:"type"`
}

type noteResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Sessions

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleRecordSession(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleRecordSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "malformed JSON body")
		return
	}

	created, err := s.recorder.Record(r.Context(), recordSessionRequest{
		taskID:          req.TaskID,
		sessionType:     req.SessionType,
		durationMinutes: req.DurationMinutes,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mapToSessionResponse(created))
}

// Statistics

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	stats, err := s.stats.Compute(r.Context(), time.Now())
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, statisticsResponse{
		TotalSessions:         stats.TotalSessions,
		TotalWorkSessions:     stats.TotalWorkSessions,
		TotalBreakSessions:    stats.TotalBreakSessions,
		TotalMinutes:          stats.TotalMinutes,
		CompletedTasks:        stats.CompletedTasks,
		AverageSessionsPerDay: stats.AverageSessionsPerDay,
		StreakDays:            stats.StreakDays,
	})
}

// Tasks

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		tasks, err := s.tasks.GetAllTasks(r.Context())
		if err != nil {
			s.writeError(w, err)
			return
		}
		out := make([]taskResponse, 0, len(tasks))
		for _, t := range tasks {
			out = append(out, mapToTaskResponse(t))
		}
		writeJSON(w, http.StatusOK, out)
	case http.MethodPost:
		s.handleCreateTask(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "malformed JSON body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		s.writeError(w, &pomotrack.ValidationError{Field: "title", Reason: "must not be empty"})
		return
	}
	if req.EstimatedPomodoros == 0 {
		req.EstimatedPomodoros = 1
	}
	if req.EstimatedPomodoros < 1 {
		s.writeError(w, &pomotrack.ValidationError{Field: "estimatedPomodoros", Reason: "must be at least 1"})
		return
	}

	created, err := s.tasks.InsertTask(r.Context(), pomotrack.TaskRecord{
		Title:              req.Title,
		Description:        req.Description,
		EstimatedPomodoros: req.EstimatedPomodoros,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mapToTaskResponse(created))
}

func (s *Server) handleTaskWithID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "/tasks/")
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		task, err := s.tasks.GetTask(r.Context(), id)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, mapToTaskResponse(task))
	case http.MethodPut:
		s.handleUpdateTask(w, r, id)
	case http.MethodDelete:
		deleted, err := s.tasks.DeleteTask(r.Context(), id)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, mapToTaskResponse(deleted))
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request, id int64) {
	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "malformed JSON body")
		return
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		s.writeError(w, &pomotrack.ValidationError{Field: "title", Reason: "must not be empty"})
		return
	}
	if req.EstimatedPomodoros != nil && *req.EstimatedPomodoros < 1 {
		s.writeError(w, &pomotrack.ValidationError{Field: "estimatedPomodoros", Reason: "must be at least 1"})
		return
	}

	patch := pomotrack.TaskPatch{
		Title:              req.Title,
		Description:        req.Description,
		EstimatedPomodoros: req.EstimatedPomodoros,
		IsCompleted:        req.IsCompleted,
	}
	if patch.IsZero() {
		s.writeError(w, &pomotrack.ValidationError{Field: "body", Reason: "no fields to update"})
		return
	}

	updated, err := s.tasks.UpdateTask(r.Context(), id, patch)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mapToTaskResponse(updated))
}

// Settings

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		settings, err := s.settings.Get(r.Context())
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, mapToSettingsPayload(settings))
	case http.MethodPut:
		var req settingsPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "malformed JSON body")
			return
		}
		updated, err := s.settings.Update(r.Context(), pomotrack.SettingsRecord{
			WorkDuration:           req.WorkDuration,
			ShortBreakDuration:     req.ShortBreakDuration,
			LongBreakDuration:      req.LongBreakDuration,
			SessionsUntilLongBreak: req.SessionsUntilLongBreak,
		})
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, mapToSettingsPayload(updated))
	default:
		methodNotAllowed(w)
	}
}

// Notes

func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		notes, err := s.notes.GetAllNotes(r.Context())
		if err != nil {
			s.writeError(w, err)
			return
		}
		out := make([]noteResponse, 0, len(notes))
		for _, n := range notes {
			out = append(out, mapToNoteResponse(n))
		}
		writeJSON(w, http.StatusOK, out)
	case http.MethodPost:
		s.handleCreateNote(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "malformed JSON body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		s.writeError(w, &pomotrack.ValidationError{Field: "title", Reason: "must not be empty"})
		return
	}
	noteType, err := pomotrack.ParseNoteType(req.Type)
	if err != nil {
		s.writeError(w, err)
		return
	}

	created, err := s.notes.InsertNote(r.Context(), pomotrack.NoteRecord{
		Title:   req.Title,
		Content: req.Content,
		Type:    noteType,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mapToNoteResponse(created))
}

func (s *Server) handleNoteWithID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "/notes/")
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		note, err := s.notes.GetNote(r.Context(), id)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, mapToNoteResponse(note))
	case http.MethodPut:
		s.handleUpdateNote(w, r, id)
	case http.MethodDelete:
		deleted, err := s.notes.DeleteNote(r.Context(), id)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, mapToNoteResponse(deleted))
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request, id int64) {
	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "malformed JSON body")
		return
	}

	patch := pomotrack.NotePatch{
		Title:   req.Title,
		Content: req.Content,
	}
	if req.Type != nil {
		noteType, err := pomotrack.ParseNoteType(*req.Type)
		if err != nil {
			s.writeError(w, err)
			return
		}
		patch.Type = &noteType
	}
	if patch.IsZero() {
		s.writeError(w, &pomotrack.ValidationError{Field: "body", Reason: "no fields to update"})
		return
	}

	updated, err := s.notes.UpdateNote(r.Context(), id, patch)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mapToNoteResponse(updated))
}

// Helpers

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var vErr *pomotrack.ValidationError
	var status int
	switch {
	case errors.As(err, &vErr):
		status = http.StatusBadRequest
	case errors.Is(err, pomotrack.ErrNotFound):
		status = http.StatusNotFound
	default:
		status = http.StatusInternalServerError
		s.l.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func parseID(w http.ResponseWriter, r *http.Request, prefix string) (int64, bool) {
	raw := strings.TrimPrefix(r.URL.Path, prefix)
	if raw == "" || strings.Contains(raw, "/") {
		http.NotFound(w, r)
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		badRequest(w, "id must be an integer")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}

func mapToSessionResponse(s pomotrack.ExistingSessionRecord) sessionResponse {
	return sessionResponse{
		ID:              s.ID,
		TaskID:          s.TaskID,
		SessionType:     string(s.Type),
		DurationMinutes: s.DurationMinutes,
		CompletedAt:     s.CompletedAt,
	}
}

func mapToTaskResponse(t pomotrack.ExistingTaskRecord) taskResponse {
	return taskResponse{
		ID:                 t.ID,
		Title:              t.Title,
		Description:        t.Description,
		EstimatedPomodoros: t.EstimatedPomodoros,
		CompletedPomodoros: t.CompletedPomodoros,
		IsCompleted:        t.IsCompleted,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

func mapToSettingsPayload(s pomotrack.ExistingSettingsRecord) settingsPayload {
	return settingsPayload{
		WorkDuration:           s.WorkDuration,
		ShortBreakDuration:     s.ShortBreakDuration,
		LongBreakDuration:      s.LongBreakDuration,
		SessionsUntilLongBreak: s.SessionsUntilLongBreak,
	}
}

func mapToNoteResponse(n pomotrack.ExistingNoteRecord) noteResponse {
	return noteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Type:      string(n.Type),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
