package server

import (
	"synth/app/model"

	"github.com/gofiber/fiber/v2"
)

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleCreateProject(c *fiber.Ctx) error {
	var req createProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	p, err := s.projects.Create(req.Name, req.Description)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(p)
}

func (s *Server) handleListProjects(c *fiber.Ctx) error {
	projects, err := s.projects.List()
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"projects": projects})
}

func (s *Server) handleGetProject(c *fiber.Ctx) error {
	p, err := s.projects.Get(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(p)
}

type updateProjectRequest struct {
	Name string `json:"name"`
	Mode string `json:"mode"`
}

func (s *Server) handleUpdateProject(c *fiber.Ctx) error {
	var req updateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	id := c.Params("id")

	if req.Name != "" {
		if err := s.projects.Rename(id, req.Name); err != nil {
			return serviceError(c, err)
		}
	}

	if req.Mode != "" {
		mode, ok := model.ParseMode(req.Mode)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown mode"})
		}

		result, err := s.projects.SwitchMode(id, mode)
		if err != nil {
			return serviceError(c, err)
		}

		return c.JSON(result)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleDeleteProject(c *fiber.Ctx) error {
	if err := s.projects.Delete(c.Params("id")); err != nil {
		return serviceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleSendMessage(c *fiber.Ctx) error {
	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, err := s.projects.Send(c.Context(), c.Params("id"), req.Text)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(result)
}

func (s *Server) handleRetry(c *fiber.Ctx) error {
	result, err := s.projects.Retry(c.Context(), c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(result)
}

func (s *Server) handleExtract(c *fiber.Ctx) error {
	result, err := s.projects.ExtractTasks(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(result)
}

func (s *Server) handleCaptureNote(c *fiber.Ctx) error {
	result, err := s.projects.CaptureNote(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(result)
}

func (s *Server) handleSummary(c *fiber.Ctx) error {
	result, err := s.projects.Summarize(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(result)
}

func (s *Server) handleExport(c *fiber.Ctx) error {
	doc, err := s.projects.Export(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(doc)
}

type taskRequest struct {
	Text      string `json:"text"`
	Completed *bool  `json:"completed"`
}

func (s *Server) handleAddTask(c *fiber.Ctx) error {
	var req taskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	task, err := s.projects.AddTask(c.Params("id"), req.Text, false)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

func (s *Server) handleUpdateTask(c *fiber.Ctx) error {
	var req taskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	taskID := c.Params("taskID")

	if req.Text != "" {
		if err := s.projects.UpdateTask(taskID, req.Text); err != nil {
			return serviceError(c, err)
		}
	}

	if req.Completed != nil {
		if err := s.projects.SetTaskCompleted(taskID, *req.Completed); err != nil {
			return serviceError(c, err)
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleDeleteTask(c *fiber.Ctx) error {
	if err := s.projects.DeleteTask(c.Params("taskID")); err != nil {
		return serviceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (s *Server) handleAddNote(c *fiber.Ctx) error {
	var req noteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	note, err := s.projects.AddNote(c.Params("id"), req.Title, req.Content)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(note)
}

func (s *Server) handleUpdateNote(c *fiber.Ctx) error {
	var req noteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := s.projects.UpdateNote(c.Params("noteID"), req.Title, req.Content); err != nil {
		return serviceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleDeleteNote(c *fiber.Ctx) error {
	if err := s.projects.DeleteNote(c.Params("noteID")); err != nil {
		return serviceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
