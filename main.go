package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/insightdelivered/financial-statement-extractor/internal/api"
	"github.com/insightdelivered/financial-statement-extractor/internal/bulletin"
	"github.com/insightdelivered/financial-statement-extractor/internal/models"
	"github.com/insightdelivered/financial-statement-extractor/internal/parser"
	"github.com/insightdelivered/financial-statement-extractor/internal/writer"
)

const version = "2.0.0"

func main() {
	serveFlag := flag.Bool("serve", false, "Run the HTTP API instead of converting files")
	portFlag := flag.String("port", "", "HTTP port for --serve (default from PORT env or 8080)")
	configFlag := flag.String("config", "", "Optional YAML vocabulary file overriding the built-in labels")
	outputFlag := flag.String("output", "", "Output file path (defaults to input filename with .csv extension)")
	jsonFlag := flag.Bool("json", false, "Write the full report as JSON instead of CSV")
	auditFlag := flag.Bool("audit", true, "Include the audit trail in CSV output")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Financial Statement Metrics Extractor
by Insight Delivered (QEA AutoLens)

Extracts income-statement lines, balance-sheet balances, and note-level
breakdowns from consolidated financial statement PDFs, and the market
traded-value total from daily trading-bulletin workbooks (.xlsx).

Usage:
  financial-statement-extractor [flags] <input.pdf|input.xlsx> [input2 ...]
  financial-statement-extractor --serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Extract metrics from a statement PDF
  financial-statement-extractor q3-statements.pdf

  # Full JSON report with note breakdowns and warnings
  financial-statement-extractor --json --output=report.json fy-statements.pdf

  # Pull the traded-value total from a bulletin workbook
  financial-statement-extractor bulletin.xlsx

  # Run the upload API
  financial-statement-extractor --serve --port=8080
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("financial-statement-extractor v%s\n", version)
		os.Exit(0)
	}

	if *serveFlag {
		serve(*portFlag)
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fatalf("Error loading config: %v\n", err)
	}
	engine := parser.NewEngine(cfg)

	for _, inputPath := range flag.Args() {
		if err := processFile(engine, inputPath, *outputFlag, *jsonFlag, *auditFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func loadConfig(path string) (*parser.Config, error) {
	if path == "" {
		return nil, nil
	}
	return parser.LoadConfig(path)
}

func processFile(engine *parser.Engine, inputPath, outputPath string, asJSON, includeAudit bool) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	fmt.Printf("Processing: %s\n", inputPath)

	var report *models.Report
	var err error

	switch ext := strings.ToLower(filepath.Ext(inputPath)); ext {
	case ".pdf":
		report, err = engine.ParseDocument(context.Background(), inputPath)
	case ".xlsx":
		report, err = bulletin.ParseFile(inputPath)
	default:
		return fmt.Errorf("expected .pdf or .xlsx file, got %q", ext)
	}
	if err != nil {
		return err
	}

	fmt.Printf("  Extracted %d metric(s)\n", len(report.Metrics))
	for _, item := range report.Items {
		fmt.Printf("  %s\n", item)
	}
	for _, warning := range report.Warnings {
		fmt.Printf("  Warning: %s\n", warning)
	}
	if len(report.Metrics) == 0 {
		fmt.Println("  Warning: no metrics found. The document format may not match the known label vocabulary.")
	}

	outPath := outputPath
	if outPath == "" {
		base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		if asJSON {
			outPath = base + ".json"
		} else {
			outPath = base + ".csv"
		}
	}

	if asJSON {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file %q: %w", outPath, err)
		}
		defer f.Close()
		if err := writer.WriteJSON(f, report); err != nil {
			return err
		}
	} else {
		w := &writer.CSVWriter{IncludeAudit: includeAudit}
		if err := w.WriteToFile(outPath, report); err != nil {
			return fmt.Errorf("CSV write failed: %w", err)
		}
	}

	fmt.Printf("  Output: %s\n", outPath)
	fmt.Println("  Done.")
	return nil
}

func serve(port string) {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "8080"
	}

	app := fiber.New(fiber.Config{
		AppName:   "financial-statement-extractor v" + version,
		BodyLimit: 32 << 20,
	})
	app.Use(logger.New())
	api.RegisterRoutes(app)

	log.Printf("listening on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
