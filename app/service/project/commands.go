package project

import (
	"context"
	"fmt"
	"strings"

	"synth/app/model"
)

type command struct {
	name        string
	description string
	run         func(ctx context.Context, s *Service, projectID string) (*SendResult, error)
}

// Server-side slash commands. Tab switching and file download are UI
// concerns and stay client-side.
var commands []command

// assigned in init to break the commands -> showHelp -> commands
// initialization cycle
func init() {
	commands = []command{
		{"/brainstorm", "Switch to Brainstormer mode", switchModeCommand(model.ModeBrainstormer)},
		{"/plan", "Switch to Planner mode", switchModeCommand(model.ModePlanner)},
		{"/edit", "Switch to Editor mode", switchModeCommand(model.ModeEditor)},
		{"/challenge", "Switch to Challenger mode", switchModeCommand(model.ModeChallenger)},
		{"/focus", "Toggle Daily Focus mode", func(_ context.Context, s *Service, id string) (*SendResult, error) {
			return s.toggleDailyFocus(id)
		}},
		{"/extract", "Extract tasks from last AI message", func(_ context.Context, s *Service, id string) (*SendResult, error) {
			return s.ExtractTasks(id)
		}},
		{"/note", "Save last AI message as a note", func(_ context.Context, s *Service, id string) (*SendResult, error) {
			return s.CaptureNote(id)
		}},
		{"/summary", "Generate project memory summary", func(_ context.Context, s *Service, id string) (*SendResult, error) {
			return s.Summarize(id)
		}},
		{"/retry", "Retry the live connection", func(ctx context.Context, s *Service, id string) (*SendResult, error) {
			return s.Retry(ctx, id)
		}},
		{"/clear", "Clear chat history", func(_ context.Context, s *Service, id string) (*SendResult, error) {
			return s.ClearChat(id)
		}},
		{"/help", "Show all commands", func(_ context.Context, s *Service, id string) (*SendResult, error) {
			return s.showHelp(id)
		}},
	}
}

func switchModeCommand(mode model.Mode) func(context.Context, *Service, string) (*SendResult, error) {
	return func(_ context.Context, s *Service, id string) (*SendResult, error) {
		return s.SwitchMode(id, mode)
	}
}

func (s *Service) runCommand(ctx context.Context, projectID, input string) (*SendResult, error) {
	trimmed := strings.ToLower(strings.TrimSpace(input))

	for _, cmd := range commands {
		if trimmed == cmd.name || strings.HasPrefix(trimmed, cmd.name+" ") {
			return cmd.run(ctx, s, projectID)
		}
	}

	return s.unknownCommand(projectID, trimmed)
}

// unknownCommand answers with partial-match suggestions when a few commands
// share the typed prefix, otherwise with a pointer to /help.
func (s *Service) unknownCommand(projectID, trimmed string) (*SendResult, error) {
	p, err := s.store.GetProject(projectID)
	if err != nil {
		return nil, err
	}

	var matches []string
	for _, cmd := range commands {
		if strings.HasPrefix(cmd.name, trimmed) {
			matches = append(matches, cmd.name)
		}
	}

	if len(matches) > 0 && len(matches) <= 3 {
		text := fmt.Sprintf("Did you mean: %s?\n\nType **/help** to see all commands.", strings.Join(matches, ", "))
		return s.appendNotice(p, text, false)
	}

	text := fmt.Sprintf("Unknown command: **%s**\n\nType **/help** to see available commands.", trimmed)

	return s.appendNotice(p, text, false)
}

func (s *Service) showHelp(projectID string) (*SendResult, error) {
	p, err := s.store.GetProject(projectID)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("**Available Commands:**\n\n")
	for _, cmd := range commands {
		fmt.Fprintf(&b, "**%s** - %s\n", cmd.name, cmd.description)
	}
	b.WriteString("\n*Type any command to use it. Example: /focus*")

	return s.appendNotice(p, b.String(), false)
}

func (s *Service) toggleDailyFocus(projectID string) (*SendResult, error) {
	p, err := s.store.GetProject(projectID)
	if err != nil {
		return nil, err
	}

	enabled := s.state.ToggleDailyFocus()

	status := "OFF"
	detail := "Back to normal responses. Good for exploration and planning."
	if enabled {
		status = "ON"
		detail = `Responses will be shorter and end with "Do this now." Perfect for execution days.`
	}

	return s.appendNotice(p, fmt.Sprintf("**Daily Focus mode: %s**\n\n%s", status, detail), false)
}
