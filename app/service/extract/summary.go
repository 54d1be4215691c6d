package extract

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"synth/app/model"
)

const (
	maxThemeTerms = 5
	minTermLen    = 5
)

var stopwords = map[string]bool{
	"about": true, "would": true, "could": true, "should": true,
	"think": true, "want": true, "need": true, "have": true,
	"this": true, "that": true, "with": true, "from": true,
	"what": true, "when": true, "where": true, "which": true,
}

// Summarize computes the recomputable memory digest for a project: counts,
// completion ratio, modes used on assistant turns and the top theme terms
// across user-authored turns. The rendered text doubles as provider context
// for future live calls.
func Summarize(p *model.Project, now time.Time) (model.MemorySummary, string) {
	summary := model.MemorySummary{
		ThemeTerms:   themeTerms(p),
		MessageCount: len(p.Turns),
		TaskCount:    len(p.Tasks),
		NoteCount:    len(p.Notes),
		ModesUsed:    modesUsed(p),
		GeneratedAt:  now,
	}

	for _, t := range p.Tasks {
		if t.Completed {
			summary.CompletedTasks++
		}
	}
	if summary.TaskCount > 0 {
		summary.TaskCompletionRatio = float64(summary.CompletedTasks) / float64(summary.TaskCount)
	}

	return summary, render(p, summary)
}

// themeTerms ranks tokens from user turns by descending frequency, ties
// broken by first occurrence. Tokens must be longer than four characters and
// not on the stopword list.
func themeTerms(p *model.Project) []string {
	var userTexts []string
	for _, t := range p.Turns {
		if t.Author == model.AuthorUser {
			userTexts = append(userTexts, t.Text)
		}
	}

	type term struct {
		word      string
		count     int
		firstSeen int
	}

	byWord := make(map[string]*term)
	var order []*term

	for i, word := range strings.Fields(strings.ToLower(strings.Join(userTexts, " "))) {
		if len(word) < minTermLen || stopwords[word] {
			continue
		}

		if t, ok := byWord[word]; ok {
			t.count++
			continue
		}

		t := &term{word: word, count: 1, firstSeen: i}
		byWord[word] = t
		order = append(order, t)
	}

	sort.SliceStable(order, func(a, b int) bool {
		if order[a].count != order[b].count {
			return order[a].count > order[b].count
		}

		return order[a].firstSeen < order[b].firstSeen
	})

	if len(order) > maxThemeTerms {
		order = order[:maxThemeTerms]
	}

	terms := make([]string, 0, len(order))
	for _, t := range order {
		terms = append(terms, t.word)
	}

	return terms
}

func modesUsed(p *model.Project) []model.Mode {
	seen := make(map[model.Mode]bool)
	var modes []model.Mode

	for _, t := range p.Turns {
		if t.Author != model.AuthorAssistant || t.Mode == "" || seen[t.Mode] {
			continue
		}

		seen[t.Mode] = true
		modes = append(modes, t.Mode)
	}

	return modes
}

func render(p *model.Project, s model.MemorySummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**Project Memory: %s**\n\n", p.Name)
	fmt.Fprintf(&b, "**Started:** %s\n", p.CreatedAt.Format("Jan 2, 2006"))
	fmt.Fprintf(&b, "**Conversations:** %d messages\n", s.MessageCount)
	fmt.Fprintf(&b, "**Tasks:** %d/%d completed\n", s.CompletedTasks, s.TaskCount)
	fmt.Fprintf(&b, "**Notes:** %d\n\n", s.NoteCount)

	if len(s.ThemeTerms) > 0 {
		fmt.Fprintf(&b, "**Key themes:** %s\n\n", strings.Join(s.ThemeTerms, ", "))
	}

	if len(s.ModesUsed) > 0 {
		names := make([]string, 0, len(s.ModesUsed))
		for _, m := range s.ModesUsed {
			names = append(names, string(m))
		}
		fmt.Fprintf(&b, "**Modes used:** %s\n\n", strings.Join(names, ", "))
	}

	if p.Description != "" {
		fmt.Fprintf(&b, "**Original goal:** %q\n\n", p.Description)
	}

	subject := "your project"
	if len(s.ThemeTerms) > 0 {
		subject = s.ThemeTerms[0]
	}
	fmt.Fprintf(&b, "**What I remember:** We've been working on %s together.", subject)

	if s.TaskCount > 0 {
		fmt.Fprintf(&b, " You have %d tasks remaining.", s.TaskCount-s.CompletedTasks)
	} else {
		b.WriteString(" No tasks created yet.")
	}

	if s.NoteCount > 0 {
		fmt.Fprintf(&b, " %d notes captured.", s.NoteCount)
	}

	return b.String()
}
