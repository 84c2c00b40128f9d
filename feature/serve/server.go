package serve

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"sheetgen/core/config"
	"sheetgen/feature/export"
)

// Server is a local preview server: it converts exports on demand and
// serves the results over HTTP so sheet authors can inspect their data
// without opening output files.
type Server struct {
	app *fiber.App
	cfg *config.Config
	svc *export.Service
	log *zap.Logger
}

// New builds the preview server and its routes.
func New(cfg *config.Config, log *zap.Logger, svc *export.Service) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "sheetgen preview",
		DisableStartupMessage: true,
	})

	s := &Server{app: app, cfg: cfg, svc: svc, log: log}

	app.Use(s.requestLogger)
	app.Get("/healthz", s.health)

	api := app.Group("/api")
	api.Get("/exports", s.listExports)
	api.Get("/exports/:name", s.getExport)
	api.Get("/exports/:name/records/:key", s.getRecord)

	app.Static("/output", cfg.Input.OutputDir)
	return s
}

// App exposes the underlying fiber app for testing.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving HTTP on the configured port.
func (s *Server) Listen() error {
	addr := fmt.Sprintf(":%d", s.cfg.Serve.Port)
	s.log.Info("preview server listening", zap.String("addr", addr))
	return s.app.Listen(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.log.Debug("request",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("duration", time.Since(start)))
	return err
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) listExports(c *fiber.Ctx) error {
	exports := make([]fiber.Map, 0, len(s.cfg.Exports))
	for _, name := range s.cfg.ExportNames() {
		exp := s.cfg.Exports[name]
		sources := make([]string, len(exp.Sources))
		for i, src := range exp.Sources {
			sources[i] = src.File + "/" + src.Sheet
		}
		exports = append(exports, fiber.Map{
			"name":        name,
			"scope":       exp.Scope,
			"primary_key": exp.PrimaryKey,
			"fields":      len(exp.Fields),
			"sources":     sources,
		})
	}
	return c.JSON(fiber.Map{"exports": exports})
}

// getExport converts the export fresh on every request, so edits to the
// workbooks show up on reload.
func (s *Server) getExport(c *fiber.Ctx) error {
	name := c.Params("name")
	if _, ok := s.cfg.Exports[name]; !ok {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("unknown export %q", name))
	}

	ds, err := s.svc.Build(name, export.Options{Scope: c.Query("scope")})
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	records := make(map[string]any, ds.Len())
	for _, rec := range ds.Records() {
		records[rec.Key] = rec.Fields
	}
	return c.JSON(fiber.Map{
		"export":      name,
		"primary_key": ds.PrimaryKey,
		"fields":      ds.Fields(),
		"count":       ds.Len(),
		"records":     records,
	})
}

func (s *Server) getRecord(c *fiber.Ctx) error {
	name := c.Params("name")
	if _, ok := s.cfg.Exports[name]; !ok {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("unknown export %q", name))
	}

	ds, err := s.svc.Build(name, export.Options{Scope: c.Query("scope")})
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	key := c.Params("key")
	fields, ok := ds.Get(key)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("no record %q in export %q", key, name))
	}
	return c.JSON(fiber.Map{"key": key, "fields": fields})
}
