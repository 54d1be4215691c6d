// Package project orchestrates the aggregate: conversation turns, tasks,
// notes, extraction and summaries, persisting every mutation through the
// store.
package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"synth/app/client/gateway"
	"synth/app/model"
	"synth/app/service/extract"
	"synth/app/service/fallback"
	"synth/app/service/resolver"
	"synth/app/service/session"
	"synth/app/service/templates"
	"synth/app/store"

	"github.com/samber/do"
)

var (
	// ErrBusy rejects a send while another resolution for the same project
	// is still in flight, preserving turn ordering.
	ErrBusy = errors.New("a reply is already being generated for this project")

	ErrEmptyMessage = errors.New("message is empty")
)

const (
	untitledName       = "Untitled Project"
	followUpTaskChance = 0.3
)

var greetingSuggestions = []model.Suggestion{
	{Label: "Share my idea", Action: "prompt", Value: "Here's what I'm thinking about..."},
	{Label: "Ask for help", Action: "prompt", Value: "I need help with..."},
}

var generalSuggestions = []model.Suggestion{
	{Label: "Extract tasks", Action: "extractTasks"},
	{Label: "Save as note", Action: "extractNote"},
	{Label: "Dig deeper", Action: "prompt", Value: "Can you elaborate on that?"},
}

type Service struct {
	store    *store.Service
	resolver *resolver.Service
	gen      *fallback.Generator
	state    *session.State
	now      func() time.Time

	mu       sync.Mutex
	inFlight map[string]bool
}

func New(di *do.Injector) (*Service, error) {
	return NewService(
		do.MustInvoke[*store.Service](di),
		do.MustInvoke[*resolver.Service](di),
		do.MustInvoke[*fallback.Generator](di),
		do.MustInvoke[*session.State](di),
	), nil
}

func NewService(st *store.Service, res *resolver.Service, gen *fallback.Generator, state *session.State) *Service {
	return &Service{
		store:    st,
		resolver: res,
		gen:      gen,
		state:    state,
		now:      time.Now,
		inFlight: make(map[string]bool),
	}
}

// SendResult carries the turns appended by one accepted input. Slash
// commands produce only a notice turn.
type SendResult struct {
	UserTurn      *model.Turn `json:"user_turn,omitempty"`
	AssistantTurn *model.Turn `json:"assistant_turn,omitempty"`
}

// Create builds a new project and appends its greeting turn. The greeting is
// always generated locally, never via a live call.
func (s *Service) Create(name, description string) (*model.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = untitledName
	}

	now := s.now()
	p := &model.Project{
		ID:          model.NewID(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Mode:        model.ModeBrainstormer,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateProject(p); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	greeting := model.Turn{
		ID:          model.NewID(),
		Author:      model.AuthorAssistant,
		Text:        templates.Greeting(p.Mode, p.Name, p.Description),
		Mode:        p.Mode,
		Suggestions: greetingSuggestions,
		CreatedAt:   now,
	}
	if err := s.store.AppendTurn(p.ID, greeting); err != nil {
		return nil, fmt.Errorf("failed to append greeting: %w", err)
	}

	p.Turns = append(p.Turns, greeting)

	return p, nil
}

func (s *Service) Get(id string) (*model.Project, error) {
	return s.store.GetProject(id)
}

func (s *Service) List() ([]model.Project, error) {
	return s.store.ListProjects()
}

// Delete removes a project irreversibly; the caller is responsible for user
// confirmation.
func (s *Service) Delete(id string) error {
	return s.store.DeleteProject(id)
}

func (s *Service) Rename(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		name = untitledName
	}

	return s.store.UpdateProjectName(id, name, s.now())
}

// Send processes one user input: slash commands and empty messages are
// handled at this boundary and never reach the resolver. Exactly one user
// turn and one assistant turn are appended per accepted message, the
// assistant turn only after resolution completes.
func (s *Service) Send(ctx context.Context, projectID, text string) (*SendResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	if strings.HasPrefix(text, "/") {
		return s.runCommand(ctx, projectID, text)
	}

	if !s.beginSend(projectID) {
		return nil, ErrBusy
	}
	defer s.endSend(projectID)

	p, err := s.store.GetProject(projectID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	userTurn := model.Turn{
		ID:        model.NewID(),
		Author:    model.AuthorUser,
		Text:      text,
		CreatedAt: now,
	}
	if err = s.store.AppendTurn(p.ID, userTurn); err != nil {
		return nil, fmt.Errorf("failed to append user turn: %w", err)
	}

	pc := &gateway.ProjectContext{
		Name:          p.Name,
		Description:   p.Description,
		MemorySummary: p.SummaryText,
	}

	replyText, degraded := s.resolver.Resolve(ctx, p.Mode, text, pc)

	assistantTurn := model.Turn{
		ID:          model.NewID(),
		Author:      model.AuthorAssistant,
		Text:        replyText,
		Mode:        p.Mode,
		Degraded:    degraded,
		Suggestions: generalSuggestions,
		CreatedAt:   s.now(),
	}
	if err = s.store.AppendTurn(p.ID, assistantTurn); err != nil {
		return nil, fmt.Errorf("failed to append assistant turn: %w", err)
	}

	s.maybeSuggestTask(p, text)

	if err = s.store.Touch(p.ID, s.now()); err != nil {
		return nil, err
	}

	return &SendResult{
		UserTurn:      &userTurn,
		AssistantTurn: &assistantTurn,
	}, nil
}

// maybeSuggestTask occasionally drops a follow-up task in planner mode,
// mirroring the assistant nudging the user toward execution.
func (s *Service) maybeSuggestTask(p *model.Project, text string) {
	if p.Mode != model.ModePlanner || !s.gen.Chance(followUpTaskChance) {
		return
	}

	task := model.Task{
		ID:              model.NewID(),
		Text:            "Follow up on: " + truncate(text, 30) + "...",
		OriginSuggested: true,
		CreatedAt:       s.now(),
	}
	if err := s.store.AddTask(p.ID, task); err != nil {
		slog.Warn("Failed to persist suggested task",
			"project", p.ID,
			"error", err,
		)
	}
}

// Retry re-probes the live path and records the outcome as a turn.
func (s *Service) Retry(ctx context.Context, projectID string) (*SendResult, error) {
	p, err := s.store.GetProject(projectID)
	if err != nil {
		return nil, err
	}

	text, degraded := s.resolver.Probe(ctx, p.Mode)

	return s.appendNotice(p, text, degraded)
}

// SwitchMode updates the project mode and announces it. The project's mode
// always matches the mode recorded on assistant turns from here on.
func (s *Service) SwitchMode(projectID string, mode model.Mode) (*SendResult, error) {
	p, err := s.store.GetProject(projectID)
	if err != nil {
		return nil, err
	}

	if err = s.store.UpdateProjectMode(p.ID, mode, s.now()); err != nil {
		return nil, err
	}
	p.Mode = mode

	title := strings.ToUpper(string(mode)[:1]) + string(mode)[1:]
	text := fmt.Sprintf("Switched to **%s** mode. %s", title, templates.Description(mode))

	return s.appendNotice(p, text, false)
}

// ExtractTasks mines the latest assistant turn for task candidates and
// records each as a suggested task.
func (s *Service) ExtractTasks(projectID string) (*SendResult, error) {
	p, err := s.store.GetProject(projectID)
	if err != nil {
		return nil, err
	}

	last := p.LastAssistantTurn()
	if last == nil {
		return s.appendNotice(p, "No messages to extract from yet. Start a conversation first!", false)
	}

	candidates := extract.Tasks(last.Text)
	for _, text := range candidates {
		task := model.Task{
			ID:              model.NewID(),
			Text:            text,
			OriginSuggested: true,
			CreatedAt:       s.now(),
		}
		if err = s.store.AddTask(p.ID, task); err != nil {
			return nil, err
		}
	}

	text := fmt.Sprintf("Extracted **%d tasks** from our conversation. Check them out in the Tasks tab!", len(candidates))

	return s.appendNotice(p, text, false)
}

// CaptureNote saves the latest assistant turn as a note.
func (s *Service) CaptureNote(projectID string) (*SendResult, error) {
	p, err := s.store.GetProject(projectID)
	if err != nil {
		return nil, err
	}

	last := p.LastAssistantTurn()
	if last == nil {
		return s.appendNotice(p, "No messages to extract from yet. Start a conversation first!", false)
	}

	now := s.now()
	note := model.Note{
		ID:        model.NewID(),
		Title:     "Insight from " + now.Format("Jan 2, 2006"),
		Content:   strings.ReplaceAll(strings.ReplaceAll(last.Text, "**", ""), "\n\n", "\n"),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = s.store.AddNote(p.ID, note); err != nil {
		return nil, err
	}

	return s.appendNotice(p, "Saved that insight as a note! You can find it in the Notes tab.", false)
}

// Summarize recomputes the memory digest, caches it on the project and
// appends it as a turn.
func (s *Service) Summarize(projectID string) (*SendResult, error) {
	p, err := s.store.GetProject(projectID)
	if err != nil {
		return nil, err
	}

	summary, text := extract.Summarize(p, s.now())
	if err = s.store.UpdateProjectSummary(p.ID, &summary, text, s.now()); err != nil {
		return nil, err
	}

	return s.appendNotice(p, text, false)
}

// ClearChat wipes the conversation; notes and tasks survive.
func (s *Service) ClearChat(projectID string) (*SendResult, error) {
	p, err := s.store.GetProject(projectID)
	if err != nil {
		return nil, err
	}

	if err = s.store.ClearTurns(p.ID); err != nil {
		return nil, err
	}

	text := fmt.Sprintf("Chat cleared. Fresh start! Your %d notes and %d tasks are still here.",
		len(p.Notes), len(p.Tasks))

	return s.appendNotice(p, text, false)
}

func (s *Service) Export(projectID string) (*model.Export, error) {
	p, err := s.store.GetProject(projectID)
	if err != nil {
		return nil, err
	}

	return model.BuildExport(p, s.now()), nil
}

func (s *Service) appendNotice(p *model.Project, text string, degraded bool) (*SendResult, error) {
	turn := model.Turn{
		ID:        model.NewID(),
		Author:    model.AuthorAssistant,
		Text:      text,
		Mode:      p.Mode,
		Degraded:  degraded,
		CreatedAt: s.now(),
	}
	if err := s.store.AppendTurn(p.ID, turn); err != nil {
		return nil, fmt.Errorf("failed to append notice turn: %w", err)
	}

	if err := s.store.Touch(p.ID, s.now()); err != nil {
		return nil, err
	}

	return &SendResult{AssistantTurn: &turn}, nil
}

func (s *Service) beginSend(projectID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight[projectID] {
		return false
	}
	s.inFlight[projectID] = true

	return true
}

func (s *Service) endSend(projectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.inFlight, projectID)
}

func truncate(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[:n])
}
