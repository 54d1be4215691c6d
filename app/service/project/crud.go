package project

import (
	"strings"

	"synth/app/model"
)

func (s *Service) AddTask(projectID, text string, suggested bool) (*model.Task, error) {
	if _, err := s.store.GetProject(projectID); err != nil {
		return nil, err
	}

	task := model.Task{
		ID:              model.NewID(),
		Text:            strings.TrimSpace(text),
		OriginSuggested: suggested,
		CreatedAt:       s.now(),
	}
	if err := s.store.AddTask(projectID, task); err != nil {
		return nil, err
	}

	if err := s.store.Touch(projectID, s.now()); err != nil {
		return nil, err
	}

	return &task, nil
}

func (s *Service) UpdateTask(taskID, text string) error {
	return s.store.UpdateTaskText(taskID, strings.TrimSpace(text))
}

func (s *Service) SetTaskCompleted(taskID string, completed bool) error {
	return s.store.SetTaskCompleted(taskID, completed)
}

func (s *Service) DeleteTask(taskID string) error {
	return s.store.DeleteTask(taskID)
}

func (s *Service) AddNote(projectID, title, content string) (*model.Note, error) {
	if _, err := s.store.GetProject(projectID); err != nil {
		return nil, err
	}

	now := s.now()
	note := model.Note{
		ID:        model.NewID(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.AddNote(projectID, note); err != nil {
		return nil, err
	}

	if err := s.store.Touch(projectID, now); err != nil {
		return nil, err
	}

	return &note, nil
}

func (s *Service) UpdateNote(noteID, title, content string) error {
	return s.store.UpdateNote(noteID, title, content, s.now())
}

func (s *Service) DeleteNote(noteID string) error {
	return s.store.DeleteNote(noteID)
}
