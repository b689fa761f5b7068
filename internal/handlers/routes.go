package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Routes groups every handler served under /api/v1.
type Routes struct {
	Sessions *SessionHandler
	Uploads  *UploadHandler
	Analyze  *AnalyzeHandler
	Results  *ResultHandler
	Exports  *ExportHandler
}

// Endpoints lists the registered routes for the index page.
var Endpoints = []string{
	"POST /api/v1/sessions",
	"DELETE /api/v1/sessions/:id",
	"POST /api/v1/sessions/:id/job",
	"GET /api/v1/sessions/:id/job",
	"POST /api/v1/sessions/:id/resumes",
	"POST /api/v1/sessions/:id/analyze",
	"GET /api/v1/sessions/:id/results",
	"GET /api/v1/sessions/:id/batch",
	"GET /api/v1/sessions/:id/export.csv",
	"GET /api/v1/sessions/:id/candidates/:index",
	"GET /api/v1/sessions/:id/candidates/:index/sections/:section",
	"GET /api/v1/sessions/:id/candidates/:index/report",
}

func (r Routes) Register(api fiber.Router) {
	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	sessions := api.Group("/sessions")
	sessions.Post("/", r.Sessions.HandleCreate)
	sessions.Delete("/:id", r.Sessions.HandleDelete)

	sessions.Post("/:id/job", r.Uploads.HandleJobDescription)
	sessions.Get("/:id/job", r.Uploads.HandleJobStatus)
	sessions.Post("/:id/resumes", r.Uploads.HandleUploadResumes)

	sessions.Post("/:id/analyze", r.Analyze.HandleAnalyze)

	sessions.Get("/:id/results", r.Results.HandleGetResults)
	sessions.Get("/:id/batch", r.Results.HandleGetBatch)
	sessions.Get("/:id/candidates/:index", r.Results.HandleGetCandidate)
	sessions.Get("/:id/candidates/:index/sections/:section", r.Results.HandleGetSection)

	sessions.Get("/:id/export.csv", r.Exports.HandleCSV)
	sessions.Get("/:id/candidates/:index/report", r.Exports.HandleReport)
}
