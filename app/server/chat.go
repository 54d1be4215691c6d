package server

import (
	"log/slog"
	"strings"

	"synth/app/client/gateway"
	"synth/app/model"
	"synth/app/service/templates"

	"github.com/gofiber/fiber/v2"
)

type chatRequest struct {
	Message        string                  `json:"message"`
	Mode           string                  `json:"mode"`
	Provider       string                  `json:"provider"`
	ProjectContext *gateway.ProjectContext `json:"projectContext"`
}

// handleChat is the provider shim: it forwards one message to exactly one
// upstream and normalizes the reply. Upstream failures come back as
// fallback=true so the caller degrades to templates instead of erroring.
func (s *Server) handleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if strings.TrimSpace(req.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Message is required"})
	}

	mode, ok := model.ParseMode(req.Mode)
	if !ok {
		mode = model.ModeBrainstormer
	}

	name := strings.ToLower(req.Provider)
	if name == "" {
		name = s.cfg.Gateway.Provider
	}

	message := contextPrefix(req.ProjectContext) + req.Message

	text, err := s.providers.Get(name).Complete(c.Context(), templates.SystemPrompt(mode), message)
	if err != nil {
		slog.Error("Upstream provider call failed",
			"provider", name,
			"mode", mode,
			"error", err,
		)

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":    "AI service unavailable",
			"fallback": true,
		})
	}

	return c.JSON(fiber.Map{
		"response": text,
		"provider": name,
		"mode":     string(mode),
	})
}

func contextPrefix(pc *gateway.ProjectContext) string {
	if pc == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("Project: \"" + pc.Name + "\"\n")
	if pc.Description != "" {
		b.WriteString("Goal: " + pc.Description + "\n")
	}
	if pc.MemorySummary != "" {
		b.WriteString("Context: " + pc.MemorySummary + "\n")
	}
	b.WriteString("\n")

	return b.String()
}
