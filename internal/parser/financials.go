package parser

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/insightdelivered/financial-statement-extractor/internal/extractor"
	"github.com/insightdelivered/financial-statement-extractor/internal/models"
)

// pageWorkers bounds concurrent per-page candidate generation. Pages
// have no cross-page data dependency, so the only ordering requirement
// is the deterministic merge afterwards.
const pageWorkers = 4

// Engine extracts financial metrics from statement documents. It holds
// only the immutable vocabulary configuration and is safe for
// concurrent use.
type Engine struct {
	cfg *Config
}

// NewEngine returns an engine using the given configuration, or the
// built-in defaults when cfg is nil.
func NewEngine(cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Engine{cfg: cfg}
}

// ParseDocument reads and parses a financial statement PDF. Failure to
// open or read the document is the only error; every extraction-local
// ambiguity degrades to an absent metric or a collected warning.
func (e *Engine) ParseDocument(ctx context.Context, filePath string) (*models.Report, error) {
	pages, err := extractor.ReadDocument(filePath)
	if err != nil {
		return nil, err
	}
	return e.ParsePages(ctx, pages), nil
}

// ParsePages runs the extraction pipeline over already-read pages:
// classify and column-detect each page, generate candidates with both
// strategies in parallel, resolve one winner per metric, extract note
// breakdowns from the whole-document text, merge, and reconcile.
//
// The result is deterministic for a given input: candidates are merged
// in page order regardless of worker completion order, and audit
// entries are emitted in metric name order.
func (e *Engine) ParsePages(ctx context.Context, pages []models.Page) *models.Report {
	report := models.NewReport()

	// Classification pass. Cheap enough to stay sequential, and the
	// results feed both extraction strategies.
	for i := range pages {
		pages[i].Section = e.classifyPage(pages[i].Text)
		pages[i].Columns = detectColumnCount(pages[i].Text)
	}

	texts := make([]string, len(pages))
	for i, p := range pages {
		texts[i] = p.Text
	}
	fullText := strings.Join(texts, "\n")

	// Candidate generation per page, and the note pass over the whole
	// document, run concurrently. Workers share only the read-only
	// config; each writes to its own slot.
	perPage := make([][]models.Candidate, len(pages))
	noteResults := make([]models.NoteBreakdown, len(e.cfg.Notes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(pageWorkers)
	for i := range pages {
		i := i
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			perPage[i] = e.pageCandidates(pages[i])
			return nil
		})
	}
	for i := range e.cfg.Notes {
		i := i
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			noteResults[i] = extractNote(fullText, e.cfg.Notes[i])
			return nil
		})
	}
	// Workers only fail on context cancellation; a cancelled parse
	// still returns whatever was completed, degraded to absence.
	_ = g.Wait()

	var candidates []models.Candidate
	for _, pc := range perPage {
		candidates = append(candidates, pc...)
	}

	// Resolution: one winner per metric, one audit entry each.
	best := e.resolve(candidates)
	for _, metric := range sortedCandidateKeys(best) {
		winner := best[metric]
		report.Metrics[metric] = winner.Value
		report.Audit = append(report.Audit, auditFor(winner))
	}

	report.PeriodMonths = detectPeriodMonths(fullText)

	// Merge note breakdowns. Primary-statement resolutions are never
	// overwritten; note-only sub-metrics fill in alongside them.
	for i, spec := range e.cfg.Notes {
		breakdown := noteResults[i]
		report.Notes[spec.Name] = breakdown

		for _, field := range spec.Fields {
			if _, taken := report.Metrics[field.Metric]; taken {
				continue
			}
			if v, ok := breakdown[field.Metric]; ok {
				report.Metrics[field.Metric] = v
			}
		}

		e.applyNoteFallback(report, spec, breakdown)
	}

	// Reconciliation.
	for i, spec := range e.cfg.Notes {
		if spec.Headline == "" {
			continue
		}
		headline, ok := report.Metrics[spec.Headline]
		if !ok {
			continue
		}
		report.Warnings = append(report.Warnings, reconcileNote(headline, noteResults[i], spec)...)
	}

	report.Items = e.buildItems(report.Metrics)
	return report
}

// applyNoteFallback fills a primary metric from a note's stated total
// when the statement scan missed it or produced an implausibly small
// reading (a truncated cell, or a note reference mistaken for the
// figure).
func (e *Engine) applyNoteFallback(report *models.Report, spec NoteSpec, breakdown models.NoteBreakdown) {
	if spec.FallbackMetric == "" {
		return
	}
	total, ok := breakdown[spec.TotalMetric]
	if !ok {
		return
	}
	current, resolved := report.Metrics[spec.FallbackMetric]
	if resolved && current >= 1000 {
		return
	}
	report.Metrics[spec.FallbackMetric] = total
	report.Audit = append(report.Audit, models.AuditEntry{
		Metric:     spec.FallbackMetric,
		Value:      total,
		Method:     models.MethodNote,
		Snippet:    fmt.Sprintf("%s total from %s note block", spec.TotalMetric, spec.Name),
		Confidence: "fallback",
	})
}

// displayItems defines the human-readable summary lines and their
// order in the report.
var displayItems = []struct {
	metric string
	label  string
}{
	{"trading_commission", "Trading Commission"},
	{"investment_income", "Investment Income"},
	{"dividend_income", "Dividend Income"},
	{"finance_income", "Finance Income"},
	{"investment_deposits", "Investment Deposits"},
	{"investments_amortised_cost", "Investments at Amortised Cost"},
	{"fvtoci", "FVTOCI Financial Assets"},
	{"cash_and_equivalents", "Cash & Equivalents"},
}

func (e *Engine) buildItems(metrics map[string]float64) []string {
	items := []string{}
	for _, item := range displayItems {
		if v, ok := metrics[item.metric]; ok {
			items = append(items, fmt.Sprintf("%s: %.0f", item.label, v))
		}
	}
	return items
}

func sortedCandidateKeys(m map[string]models.Candidate) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
