// Package pipeline orchestrates a full analysis run: concurrent document
// loading and segmentation, corpus-level persona/job resolution, passage
// scoring, and the merge/select reduction into the final result.
package pipeline

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/dtnitsch/doc-relevance/models"
	"github.com/dtnitsch/doc-relevance/pkg/detect"
	"github.com/dtnitsch/doc-relevance/pkg/features"
	"github.com/dtnitsch/doc-relevance/pkg/ingest"
	"github.com/dtnitsch/doc-relevance/pkg/rank"
	"github.com/dtnitsch/doc-relevance/pkg/scoring"
	"github.com/dtnitsch/doc-relevance/pkg/segment"
	"github.com/dtnitsch/doc-relevance/pkg/signature"
)

// Analysis method tags recorded in result metadata.
const (
	MethodPersonaGuided = "persona_guided_structural_analysis"
	MethodAutoAdaptive  = "auto_adaptive_structural_analysis"
)

type Pipeline struct {
	logger *slog.Logger
	cfg    models.AnalyzeConfig
}

func New(logger *slog.Logger, cfg models.AnalyzeConfig) *Pipeline {
	return &Pipeline{logger: logger, cfg: cfg}
}

// Job is one document for the worker pool. Index is the document's position
// in the input path list.
type Job struct {
	Index int
	Path  string
}

// Result carries a loaded, segmented document or the error that stopped it.
// Index mirrors the job's input position so results can be re-ordered after
// the pool drains.
type Result struct {
	Index    int
	Doc      *models.Document
	Passages []models.Passage
	Err      error
}

// Run executes the full pipeline over the given document paths. Per-document
// failures are recoverable: they are logged, recorded as warnings, and the
// run continues with the remaining documents. Zero usable documents yields
// an explicit empty result, not an error.
func (pl *Pipeline) Run(ctx context.Context, paths []string) (*models.AnalysisResult, error) {
	results := pl.loadAll(ctx, paths)

	var docs []*models.Document
	var passages []models.Passage
	var warnings []string
	for _, r := range results {
		if r.Err != nil {
			warnings = append(warnings, r.Err.Error())
			continue
		}
		docs = append(docs, r.Doc)
		passages = append(passages, r.Passages...)
	}

	var corpus strings.Builder
	var docNames []string
	for _, d := range docs {
		docNames = append(docNames, d.Name)
		corpus.WriteString(d.Text())
		corpus.WriteByte('\n')
	}
	corpusText := corpus.String()

	meta := models.ResultMetadata{
		InputDocuments: docNames,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Warnings:       warnings,
	}

	if len(docs) == 0 {
		pl.logger.Warn("No usable documents, producing empty result", "requested", len(paths))
		meta.DocumentType = detect.GeneralType
		meta.EffectivePersona = detect.DefaultPersona
		meta.EffectiveJob = detect.DefaultJob
		meta.AnalysisMethod = MethodAutoAdaptive
		meta.Language = "unknown"
		return &models.AnalysisResult{Metadata: meta}, nil
	}

	meta.DocumentType = detect.Type(corpusText)
	meta.Language, meta.LanguageConfidence = detect.Language(corpusText)

	sig := pl.resolvePersonaJob(corpusText, &meta)

	pl.logger.Info("Scoring passages",
		"documents", len(docs),
		"passages", len(passages),
		"document_type", meta.DocumentType,
		"persona", meta.EffectivePersona,
		"job", meta.EffectiveJob)

	for i := range passages {
		scoring.Score(&passages[i], sig)
	}

	merged := rank.MergeOverlapping(passages, pl.cfg.MergeOverlapRatio)
	kept := rank.FilterQuality(merged, pl.cfg.MinQuality, pl.cfg.MaxMergedPerDoc)
	rank.SortByRelevance(kept)
	kept = rank.FilterRedundant(kept, pl.cfg.RedundancyThreshold)
	selected := rank.SelectDiverse(kept, pl.cfg.MaxSections, pl.cfg.MaxPerDocument)

	pl.logger.Info("Selection complete",
		"merged", len(merged), "kept", len(kept), "selected", len(selected))

	return pl.assemble(meta, selected), nil
}

// resolvePersonaJob fills the persona/job metadata fields and returns the
// signature to score with. Caller-supplied persona and job win over
// auto-detection; free text normalizes onto the known categories.
func (pl *Pipeline) resolvePersonaJob(corpusText string, meta *models.ResultMetadata) *signature.Signature {
	if pl.cfg.Persona != "" || pl.cfg.Job != "" {
		meta.OriginalPersona = pl.cfg.Persona
		meta.OriginalJob = pl.cfg.Job
		meta.EffectivePersona = detect.NormalizePersona(pl.cfg.Persona)
		meta.EffectiveJob = detect.NormalizeJob(pl.cfg.Job)
		meta.AnalysisMethod = MethodPersonaGuided
		sig := detect.ResolveSignature(meta.EffectivePersona, meta.EffectiveJob)
		if sig != nil {
			meta.PersonaConfidence = round3(sig.Match(corpusText))
		}
		return sig
	}

	pj := detect.PersonaJob(meta.DocumentType, corpusText)
	meta.EffectivePersona = pj.Persona
	meta.EffectiveJob = pj.Job
	meta.PersonaConfidence = round3(pj.Confidence)
	meta.AnalysisMethod = MethodAutoAdaptive
	return signature.Lookup(pj.Persona, pj.Job)
}

// loadAll fans the paths out to a fixed worker pool. Each job gets its own
// per-document deadline so one slow extraction cannot stall the run. Results
// come back in input order regardless of worker completion order, so the
// run is reproducible with any worker count.
func (pl *Pipeline) loadAll(ctx context.Context, paths []string) []Result {
	workers := pl.cfg.WorkerCount
	if workers <= 0 {
		workers = 1
	}

	var wg sync.WaitGroup
	jobs := make(chan Job, len(paths))
	results := make(chan Result, len(paths))

	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go pl.worker(ctx, w, &wg, jobs, results)
	}

	for i, path := range paths {
		jobs <- Job{Index: i, Path: path}
	}
	close(jobs)

	wg.Wait()
	close(results)

	all := make([]Result, len(paths))
	for r := range results {
		all[r.Index] = r
	}
	return all
}

func (pl *Pipeline) worker(ctx context.Context, id int, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		pl.logger.Info("Worker started document", "worker_id", id, "path", job.Path)

		docCtx := ctx
		var cancel context.CancelFunc
		if pl.cfg.DocTimeout > 0 {
			docCtx, cancel = context.WithTimeout(ctx, pl.cfg.DocTimeout)
		}

		doc, err := ingest.Load(docCtx, job.Path)
		if cancel != nil {
			cancel()
		}
		if err != nil {
			pl.logger.Warn("Skipping document", "worker_id", id, "path", job.Path, "error", err)
			results <- Result{Index: job.Index, Err: err}
			continue
		}

		var passages []models.Passage
		for _, page := range doc.Pages {
			passages = append(passages, segment.Page(page, pl.cfg.WindowSize, pl.cfg.WindowStep, pl.cfg.MinPageLines)...)
		}
		for i := range passages {
			passages[i].Features = features.Count(passages[i].Content)
		}

		results <- Result{Index: job.Index, Doc: doc, Passages: passages}
		pl.logger.Info("Worker finished document", "worker_id", id, "path", job.Path, "pages", len(doc.Pages), "passages", len(passages))
	}
}

// assemble builds the output record from the final selection.
func (pl *Pipeline) assemble(meta models.ResultMetadata, selected []models.Passage) *models.AnalysisResult {
	result := &models.AnalysisResult{Metadata: meta}

	for i := range selected {
		p := &selected[i]
		p.Title = scoring.Title(p.Lines)
		p.ContentType = scoring.ClassifyContent(p.Features)

		result.ExtractedSections = append(result.ExtractedSections, models.SectionRecord{
			Document:        p.Document,
			SectionTitle:    p.Title,
			ImportanceRank:  i + 1,
			PageNumber:      p.PageNumber,
			RelevanceScore:  round3(p.Scores.Relevance),
			WordCount:       p.WordCount,
			StructuralScore: round3(p.Scores.Structural),
			DensityScore:    round3(p.Scores.Density),
		})
	}

	limit := pl.cfg.Subsections
	if limit <= 0 || limit > len(selected) {
		limit = len(selected)
	}
	for i := 0; i < limit; i++ {
		p := &selected[i]
		result.SubsectionAnalysis = append(result.SubsectionAnalysis, models.SubsectionRecord{
			Document:      p.Document,
			RefinedText:   scoring.RefineText(p),
			PageNumber:    p.PageNumber,
			ParentSection: p.Title,
		})
	}
	return result
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
