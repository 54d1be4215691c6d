package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	for _, mode := range Modes() {
		got, ok := ParseMode(string(mode))
		assert.True(t, ok)
		assert.Equal(t, mode, got)
	}

	_, ok := ParseMode("wizard")
	assert.False(t, ok)
	_, ok = ParseMode("")
	assert.False(t, ok)
}

func TestLastAssistantTurn(t *testing.T) {
	p := &Project{}
	assert.Nil(t, p.LastAssistantTurn())

	p.Turns = []Turn{
		{Author: AuthorAssistant, Text: "greeting"},
		{Author: AuthorUser, Text: "question"},
		{Author: AuthorAssistant, Text: "answer"},
		{Author: AuthorUser, Text: "trailing"},
	}

	last := p.LastAssistantTurn()
	require.NotNil(t, last)
	assert.Equal(t, "answer", last.Text)
}

func TestBuildExport(t *testing.T) {
	now := time.Now()
	p := &Project{
		Name:        "Exported",
		Description: "desc",
		Turns: []Turn{
			{Author: AuthorAssistant, Text: "hi", Mode: ModeBrainstormer, CreatedAt: now},
			{Author: AuthorUser, Text: "hello", CreatedAt: now},
		},
		Tasks: []Task{{Text: "a task"}},
		Notes: []Note{{Title: "a note"}},
	}

	doc := BuildExport(p, now)

	assert.Equal(t, "Exported", doc.Name)
	assert.Equal(t, now, doc.ExportedAt)
	require.Len(t, doc.Messages, 2)
	assert.Equal(t, "hi", doc.Messages[0].Text)
	assert.Equal(t, ModeBrainstormer, doc.Messages[0].Mode)
	assert.Len(t, doc.Tasks, 1)
	assert.Len(t, doc.Notes, 1)
}

func TestNewIDUnique(t *testing.T) {
	assert.NotEqual(t, NewID(), NewID())
	assert.NotEmpty(t, NewID())
}
