package api

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/insightdelivered/financial-statement-extractor/internal/bulletin"
	"github.com/insightdelivered/financial-statement-extractor/internal/models"
	"github.com/insightdelivered/financial-statement-extractor/internal/parser"
)

// Version reported by the health endpoint and extraction responses.
const Version = "2.0.0"

// engine is shared by all requests; it holds only immutable vocabulary
// configuration and is safe for concurrent use.
var engine = parser.NewEngine(nil)

// ExtractResponse is the JSON response from the /api/extract and
// /api/bulletin endpoints.
type ExtractResponse struct {
	Success      bool                            `json:"success"`
	Error        string                          `json:"error,omitempty"`
	Metrics      map[string]float64              `json:"metrics"`
	Audit        []models.AuditEntry             `json:"audit"`
	Notes        map[string]models.NoteBreakdown `json:"notes,omitempty"`
	Warnings     []string                        `json:"warnings"`
	Items        []string                        `json:"items"`
	PeriodMonths int                             `json:"periodMonths,omitempty"`
	Portfolio    *float64                        `json:"portfolio,omitempty"`
	EaRPortfolio *float64                        `json:"earPortfolio,omitempty"`
	Version      string                          `json:"version"`
}

// RegisterRoutes sets up the API routes on a fiber app.
func RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", HandleHealth)
	app.Post("/api/extract", HandleExtract)
	app.Post("/api/bulletin", HandleBulletin)
}

// HandleHealth reports service liveness.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": Version,
	})
}

// HandleExtract accepts a multipart PDF upload and returns the full
// extraction report. Extraction-local ambiguity never fails the
// request; only an unreadable document does.
func HandleExtract(c *fiber.Ctx) error {
	path, cleanup, err := saveUpload(c, ".pdf")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}
	defer cleanup()

	report, err := engine.ParseDocument(c.UserContext(), path)
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("extraction failed: %v", err))
	}

	return c.JSON(buildResponse(report))
}

// HandleBulletin accepts a multipart XLSX upload and returns the
// traded-value lookup result.
func HandleBulletin(c *fiber.Ctx) error {
	path, cleanup, err := saveUpload(c, ".xlsx")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}
	defer cleanup()

	report, err := bulletin.ParseFile(path)
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("bulletin parse failed: %v", err))
	}

	return c.JSON(buildResponse(report))
}

func buildResponse(report *models.Report) ExtractResponse {
	resp := ExtractResponse{
		Success:      true,
		Metrics:      report.Metrics,
		Audit:        report.Audit,
		Notes:        report.Notes,
		Warnings:     report.Warnings,
		Items:        report.Items,
		PeriodMonths: report.PeriodMonths,
		Version:      Version,
	}
	if v, ok := parser.Portfolio(report.Metrics); ok {
		resp.Portfolio = &v
	}
	if v, ok := parser.EaRPortfolio(report.Metrics); ok {
		resp.EaRPortfolio = &v
	}
	return resp
}

// saveUpload stores the uploaded form file in a temp location and
// returns its path with a cleanup func. The upload must carry the
// expected extension.
func saveUpload(c *fiber.Ctx, wantExt string) (string, func(), error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", nil, fmt.Errorf("no file uploaded; use form field 'file'")
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), wantExt) {
		return "", nil, fmt.Errorf("expected a %s file, got %q", wantExt, fileHeader.Filename)
	}

	tmp, err := os.CreateTemp("", "upload-*"+wantExt)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file")
	}
	tmp.Close()

	if err := c.SaveFile(fileHeader, tmp.Name()); err != nil {
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("failed to save uploaded file")
	}
	return tmp.Name(), func() { os.Remove(tmp.Name()) }, nil
}

func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ExtractResponse{
		Success:  false,
		Error:    message,
		Metrics:  map[string]float64{},
		Audit:    []models.AuditEntry{},
		Warnings: []string{},
		Items:    []string{},
		Version:  Version,
	})
}
