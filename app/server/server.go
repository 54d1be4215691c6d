// Package server exposes the HTTP surface: the provider chat shim consumed
// by the resolver and the project API consumed by the UI.
package server

import (
	"context"
	"errors"

	"synth/app/config"
	"synth/app/provider"
	"synth/app/service/project"
	"synth/app/service/session"
	"synth/app/store"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	cfg       *config.Config
	providers *provider.Registry
	projects  *project.Service
	state     *session.State
	app       *fiber.App
}

func New(di *do.Injector) (*Server, error) {
	return NewServer(
		do.MustInvoke[*config.Config](di),
		do.MustInvoke[*provider.Registry](di),
		do.MustInvoke[*project.Service](di),
		do.MustInvoke[*session.State](di),
	), nil
}

func NewServer(cfg *config.Config, providers *provider.Registry, projects *project.Service, state *session.State) *Server {
	s := &Server{
		cfg:       cfg,
		providers: providers,
		projects:  projects,
		state:     state,
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	api := app.Group("/api")
	api.Post("/chat", s.handleChat)
	api.Get("/status", s.handleStatus)

	api.Post("/projects", s.handleCreateProject)
	api.Get("/projects", s.handleListProjects)
	api.Get("/projects/:id", s.handleGetProject)
	api.Patch("/projects/:id", s.handleUpdateProject)
	api.Delete("/projects/:id", s.handleDeleteProject)

	api.Post("/projects/:id/messages", s.handleSendMessage)
	api.Post("/projects/:id/retry", s.handleRetry)
	api.Post("/projects/:id/extract", s.handleExtract)
	api.Post("/projects/:id/capture", s.handleCaptureNote)
	api.Post("/projects/:id/summary", s.handleSummary)
	api.Get("/projects/:id/export", s.handleExport)

	api.Post("/projects/:id/tasks", s.handleAddTask)
	api.Patch("/projects/:id/tasks/:taskID", s.handleUpdateTask)
	api.Delete("/projects/:id/tasks/:taskID", s.handleDeleteTask)

	api.Post("/projects/:id/notes", s.handleAddNote)
	api.Patch("/projects/:id/notes/:noteID", s.handleUpdateNote)
	api.Delete("/projects/:id/notes/:noteID", s.handleDeleteNote)

	s.app = app

	return s
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.app.Listen(s.cfg.Server.Listen)
	})
	g.Go(func() error {
		<-ctx.Done()
		return s.app.Shutdown()
	})

	return g.Wait()
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"degraded":    s.state.Degraded(),
		"daily_focus": s.state.DailyFocus(),
	})
}

// serviceError maps domain errors onto HTTP statuses.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, project.ErrBusy):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, project.ErrEmptyMessage):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Message is required"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
