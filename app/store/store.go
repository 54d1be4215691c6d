// Package store persists project aggregates in a local sqlite database.
// Single-process access, last-writer-wins; every mutation is written through
// synchronously.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"synth/app/config"
	"synth/app/model"

	"github.com/samber/do"
	"github.com/samber/oops"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("not found")

var _ do.Shutdownable = (*Service)(nil)

type Service struct {
	db *sql.DB
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return Open(cfg.DB.Path)
}

func Open(path string) (*Service, error) {
	if dir := filepath.Dir(path); dir != "." {
		_ = os.MkdirAll(dir, 0755)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, oops.Errorf("failed to open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, oops.Errorf("failed to ping database: %w", err)
	}

	for _, stmt := range schema {
		if _, err = db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, oops.Errorf("failed to apply schema: %w", err)
		}
	}

	return &Service{db: db}, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		mode TEXT NOT NULL,
		summary_json TEXT NOT NULL DEFAULT '',
		summary_text TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS turns (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		author TEXT NOT NULL,
		text TEXT NOT NULL,
		mode TEXT NOT NULL DEFAULT '',
		degraded INTEGER NOT NULL DEFAULT 0,
		suggestions_json TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		text TEXT NOT NULL,
		completed INTEGER NOT NULL DEFAULT 0,
		origin_suggested INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_turns_project ON turns(project_id);`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);`,
	`CREATE INDEX IF NOT EXISTS idx_notes_project ON notes(project_id);`,
}

func (s *Service) Shutdown() error {
	return s.db.Close()
}

func (s *Service) CreateProject(p *model.Project) error {
	_, err := s.db.Exec(
		`INSERT INTO projects(id, name, description, mode, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, string(p.Mode), p.CreatedAt.Unix(), p.UpdatedAt.Unix(),
	)
	if err != nil {
		return oops.Errorf("failed to insert project: %w", err)
	}

	return nil
}

// GetProject loads the full aggregate: turns, tasks and notes in insertion
// order.
func (s *Service) GetProject(id string) (*model.Project, error) {
	var (
		p                         model.Project
		mode                      string
		summaryJSON, summaryText  string
		createdUnix, updatedUnix  int64
	)

	err := s.db.QueryRow(
		`SELECT id, name, description, mode, summary_json, summary_text, created_at, updated_at
		 FROM projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Description, &mode, &summaryJSON, &summaryText, &createdUnix, &updatedUnix)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, oops.Errorf("failed to load project: %w", err)
	}

	p.Mode = model.Mode(mode)
	p.SummaryText = summaryText
	p.CreatedAt = time.Unix(createdUnix, 0)
	p.UpdatedAt = time.Unix(updatedUnix, 0)

	if summaryJSON != "" {
		var summary model.MemorySummary
		if err = json.Unmarshal([]byte(summaryJSON), &summary); err == nil {
			p.Summary = &summary
		}
	}

	if p.Turns, err = s.loadTurns(id); err != nil {
		return nil, err
	}
	if p.Tasks, err = s.loadTasks(id); err != nil {
		return nil, err
	}
	if p.Notes, err = s.loadNotes(id); err != nil {
		return nil, err
	}

	return &p, nil
}

// ListProjects returns project headers (no turns/tasks/notes), newest first.
func (s *Service) ListProjects() ([]model.Project, error) {
	rows, err := s.db.Query(
		`SELECT id, name, description, mode, created_at, updated_at
		 FROM projects ORDER BY updated_at DESC`)
	if err != nil {
		return nil, oops.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var (
			p            model.Project
			mode         string
			created, updated int64
		)
		if err = rows.Scan(&p.ID, &p.Name, &p.Description, &mode, &created, &updated); err != nil {
			return nil, oops.Errorf("failed to scan project: %w", err)
		}

		p.Mode = model.Mode(mode)
		p.CreatedAt = time.Unix(created, 0)
		p.UpdatedAt = time.Unix(updated, 0)
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

func (s *Service) DeleteProject(id string) error {
	res, err := s.db.Exec(`DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return oops.Errorf("failed to delete project: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	for _, table := range []string{"turns", "tasks", "notes"} {
		if _, err = s.db.Exec(`DELETE FROM `+table+` WHERE project_id = ?`, id); err != nil {
			return oops.Errorf("failed to delete project %s: %w", table, err)
		}
	}

	return nil
}

func (s *Service) UpdateProjectName(id, name string, at time.Time) error {
	return s.exec(`UPDATE projects SET name = ?, updated_at = ? WHERE id = ?`, name, at.Unix(), id)
}

func (s *Service) UpdateProjectMode(id string, mode model.Mode, at time.Time) error {
	return s.exec(`UPDATE projects SET mode = ?, updated_at = ? WHERE id = ?`, string(mode), at.Unix(), id)
}

func (s *Service) UpdateProjectSummary(id string, summary *model.MemorySummary, text string, at time.Time) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return oops.Errorf("failed to marshal summary: %w", err)
	}

	return s.exec(
		`UPDATE projects SET summary_json = ?, summary_text = ?, updated_at = ? WHERE id = ?`,
		string(data), text, at.Unix(), id,
	)
}

func (s *Service) Touch(id string, at time.Time) error {
	return s.exec(`UPDATE projects SET updated_at = ? WHERE id = ?`, at.Unix(), id)
}

func (s *Service) exec(query string, args ...any) error {
	if _, err := s.db.Exec(query, args...); err != nil {
		return oops.Errorf("failed to execute statement: %w", err)
	}

	return nil
}
