package model

import (
	"time"

	"github.com/google/uuid"
)

// Mode is one of the four conversational personas a project can run in.
type Mode string

const (
	ModeBrainstormer Mode = "brainstormer"
	ModePlanner      Mode = "planner"
	ModeEditor       Mode = "editor"
	ModeChallenger   Mode = "challenger"
)

func Modes() []Mode {
	return []Mode{ModeBrainstormer, ModePlanner, ModeEditor, ModeChallenger}
}

func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeBrainstormer, ModePlanner, ModeEditor, ModeChallenger:
		return Mode(s), true
	}

	return "", false
}

const (
	AuthorUser      = "user"
	AuthorAssistant = "assistant"
)

// Suggestion is a quick action attached to an assistant turn.
type Suggestion struct {
	Label  string `json:"label"`
	Action string `json:"action"`
	Value  string `json:"value,omitempty"`
}

// Turn is one immutable entry in a project's conversation. Edits are modeled
// as new turns, never as mutations.
type Turn struct {
	ID          string       `json:"id"`
	Author      string       `json:"author"`
	Text        string       `json:"text"`
	Mode        Mode         `json:"mode,omitempty"`
	Degraded    bool         `json:"degraded,omitempty"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

type Task struct {
	ID              string    `json:"id"`
	Text            string    `json:"text"`
	Completed       bool      `json:"completed"`
	OriginSuggested bool      `json:"origin_suggested"`
	CreatedAt       time.Time `json:"created_at"`
}

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MemorySummary is a derived digest of project activity. It is always
// recomputable from the turn/task/note lists and is cached only for reuse as
// provider context.
type MemorySummary struct {
	ThemeTerms          []string  `json:"theme_terms"`
	MessageCount        int       `json:"message_count"`
	TaskCount           int       `json:"task_count"`
	CompletedTasks      int       `json:"completed_tasks"`
	NoteCount           int       `json:"note_count"`
	TaskCompletionRatio float64   `json:"task_completion_ratio"`
	ModesUsed           []Mode    `json:"modes_used"`
	GeneratedAt         time.Time `json:"generated_at"`
}

// Project is the aggregate root owning its conversation, notes and tasks.
type Project struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Mode        Mode           `json:"mode"`
	Turns       []Turn         `json:"turns"`
	Notes       []Note         `json:"notes"`
	Tasks       []Task         `json:"tasks"`
	Summary     *MemorySummary `json:"summary,omitempty"`
	SummaryText string         `json:"summary_text,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// LastAssistantTurn returns the most recent assistant turn, or nil.
func (p *Project) LastAssistantTurn() *Turn {
	for i := len(p.Turns) - 1; i >= 0; i-- {
		if p.Turns[i].Author == AuthorAssistant {
			return &p.Turns[i]
		}
	}

	return nil
}

func NewID() string {
	return uuid.NewString()
}
