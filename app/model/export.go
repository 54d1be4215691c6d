package model

import "time"

// Export is the flat downloadable document for a project.
type Export struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	ExportedAt  time.Time       `json:"exported_at"`
	Messages    []ExportMessage `json:"messages"`
	Notes       []Note          `json:"notes"`
	Tasks       []Task          `json:"tasks"`
}

type ExportMessage struct {
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Mode      Mode      `json:"mode,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// BuildExport flattens a project into its export document.
func BuildExport(p *Project, now time.Time) *Export {
	messages := make([]ExportMessage, 0, len(p.Turns))
	for _, t := range p.Turns {
		messages = append(messages, ExportMessage{
			Author:    t.Author,
			Text:      t.Text,
			Mode:      t.Mode,
			Timestamp: t.CreatedAt,
		})
	}

	return &Export{
		Name:        p.Name,
		Description: p.Description,
		ExportedAt:  now,
		Messages:    messages,
		Notes:       p.Notes,
		Tasks:       p.Tasks,
	}
}
