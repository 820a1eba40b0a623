package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func setupTestApp() *fiber.App {
	app := fiber.New()
	RegisterRoutes(app)
	return app
}

func TestHealthEndpoint(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var result map[string]string
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if result["status"] != "ok" {
		t.Errorf("expected status=ok, got %q", result["status"])
	}

	if result["engine"] != "fiber" {
		t.Errorf("expected engine=fiber, got %q", result["engine"])
	}

	if result["version"] != Version {
		t.Errorf("expected version=%s, got %q", Version, result["version"])
	}
}

func TestExtractEndpointRequiresFile(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest("POST", "/api/extract", nil)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=----test")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400 for missing file, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var result ExtractResponse
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Success {
		t.Error("expected success=false for missing file")
	}
	if result.Error == "" {
		t.Error("expected an error message")
	}
}

func TestExtractEndpointRejectsWrongExtension(t *testing.T) {
	app := setupTestApp()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "statements.docx")
	if err != nil {
		t.Fatalf("failed to build form: %v", err)
	}
	part.Write([]byte("not a pdf"))
	mw.Close()

	req := httptest.NewRequest("POST", "/api/extract", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400 for wrong extension, got %d", resp.StatusCode)
	}
}

func TestExtractEndpointUnreadableUpload(t *testing.T) {
	app := setupTestApp()

	// Right extension, garbage content: the extractor cannot open it.
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "statements.pdf")
	if err != nil {
		t.Fatalf("failed to build form: %v", err)
	}
	part.Write([]byte("definitely not a pdf"))
	mw.Close()

	req := httptest.NewRequest("POST", "/api/extract", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Errorf("expected 422 for unreadable document, got %d", resp.StatusCode)
	}
}

func TestBulletinEndpointRejectsWrongExtension(t *testing.T) {
	app := setupTestApp()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "bulletin.pdf")
	if err != nil {
		t.Fatalf("failed to build form: %v", err)
	}
	part.Write([]byte("%PDF-1.4"))
	mw.Close()

	req := httptest.NewRequest("POST", "/api/bulletin", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400 for wrong extension, got %d", resp.StatusCode)
	}
}
