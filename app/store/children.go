package store

import (
	"encoding/json"
	"time"

	"synth/app/model"

	"github.com/samber/oops"
)

func (s *Service) AppendTurn(projectID string, t model.Turn) error {
	suggestions := ""
	if len(t.Suggestions) > 0 {
		data, err := json.Marshal(t.Suggestions)
		if err != nil {
			return oops.Errorf("failed to marshal suggestions: %w", err)
		}
		suggestions = string(data)
	}

	return s.exec(
		`INSERT INTO turns(id, project_id, author, text, mode, degraded, suggestions_json, created_at)
		 VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, projectID, t.Author, t.Text, string(t.Mode), boolToInt(t.Degraded), suggestions, t.CreatedAt.Unix(),
	)
}

func (s *Service) ClearTurns(projectID string) error {
	return s.exec(`DELETE FROM turns WHERE project_id = ?`, projectID)
}

func (s *Service) loadTurns(projectID string) ([]model.Turn, error) {
	rows, err := s.db.Query(
		`SELECT id, author, text, mode, degraded, suggestions_json, created_at
		 FROM turns WHERE project_id = ? ORDER BY rowid ASC`, projectID)
	if err != nil {
		return nil, oops.Errorf("failed to load turns: %w", err)
	}
	defer rows.Close()

	var turns []model.Turn
	for rows.Next() {
		var (
			t           model.Turn
			mode        string
			degraded    int
			suggestions string
			created     int64
		)
		if err = rows.Scan(&t.ID, &t.Author, &t.Text, &mode, &degraded, &suggestions, &created); err != nil {
			return nil, oops.Errorf("failed to scan turn: %w", err)
		}

		t.Mode = model.Mode(mode)
		t.Degraded = degraded != 0
		t.CreatedAt = time.Unix(created, 0)
		if suggestions != "" {
			_ = json.Unmarshal([]byte(suggestions), &t.Suggestions)
		}

		turns = append(turns, t)
	}

	return turns, rows.Err()
}

func (s *Service) AddTask(projectID string, t model.Task) error {
	return s.exec(
		`INSERT INTO tasks(id, project_id, text, completed, origin_suggested, created_at) VALUES(?, ?, ?, ?, ?, ?)`,
		t.ID, projectID, t.Text, boolToInt(t.Completed), boolToInt(t.OriginSuggested), t.CreatedAt.Unix(),
	)
}

func (s *Service) UpdateTaskText(taskID, text string) error {
	return s.update(`UPDATE tasks SET text = ? WHERE id = ?`, text, taskID)
}

func (s *Service) SetTaskCompleted(taskID string, completed bool) error {
	return s.update(`UPDATE tasks SET completed = ? WHERE id = ?`, boolToInt(completed), taskID)
}

func (s *Service) DeleteTask(taskID string) error {
	return s.update(`DELETE FROM tasks WHERE id = ?`, taskID)
}

func (s *Service) loadTasks(projectID string) ([]model.Task, error) {
	rows, err := s.db.Query(
		`SELECT id, text, completed, origin_suggested, created_at
		 FROM tasks WHERE project_id = ? ORDER BY rowid ASC`, projectID)
	if err != nil {
		return nil, oops.Errorf("failed to load tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var (
			t                    model.Task
			completed, suggested int
			created              int64
		)
		if err = rows.Scan(&t.ID, &t.Text, &completed, &suggested, &created); err != nil {
			return nil, oops.Errorf("failed to scan task: %w", err)
		}

		t.Completed = completed != 0
		t.OriginSuggested = suggested != 0
		t.CreatedAt = time.Unix(created, 0)
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

func (s *Service) AddNote(projectID string, n model.Note) error {
	return s.exec(
		`INSERT INTO notes(id, project_id, title, content, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?)`,
		n.ID, projectID, n.Title, n.Content, n.CreatedAt.Unix(), n.UpdatedAt.Unix(),
	)
}

func (s *Service) UpdateNote(noteID, title, content string, at time.Time) error {
	return s.update(`UPDATE notes SET title = ?, content = ?, updated_at = ? WHERE id = ?`,
		title, content, at.Unix(), noteID)
}

func (s *Service) DeleteNote(noteID string) error {
	return s.update(`DELETE FROM notes WHERE id = ?`, noteID)
}

func (s *Service) loadNotes(projectID string) ([]model.Note, error) {
	rows, err := s.db.Query(
		`SELECT id, title, content, created_at, updated_at
		 FROM notes WHERE project_id = ? ORDER BY rowid ASC`, projectID)
	if err != nil {
		return nil, oops.Errorf("failed to load notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		var (
			n                model.Note
			created, updated int64
		)
		if err = rows.Scan(&n.ID, &n.Title, &n.Content, &created, &updated); err != nil {
			return nil, oops.Errorf("failed to scan note: %w", err)
		}

		n.CreatedAt = time.Unix(created, 0)
		n.UpdatedAt = time.Unix(updated, 0)
		notes = append(notes, n)
	}

	return notes, rows.Err()
}

// update is exec that reports ErrNotFound when nothing matched.
func (s *Service) update(query string, args ...any) error {
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return oops.Errorf("failed to execute statement: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}
