package services

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driving"
)

// probeTimeout bounds each backend probe.
const probeTimeout = 5 * time.Second

// Ensure DoctorService implements the interface.
var _ driving.Doctor = (*DoctorService)(nil)

// extractionTools lists the external binaries the extraction cascade
// shells out to, in probe order. The OCR pair is optional: without it
// scanned pages are skipped instead of read.
var extractionTools = []struct {
	name     string
	required bool
	hint     string
}{
	{"pdftotext", true, "install poppler (apt install poppler-utils / brew install poppler)"},
	{"pdfinfo", true, "install poppler (apt install poppler-utils / brew install poppler)"},
	{"pdftoppm", false, "OCR disabled; install poppler (apt install poppler-utils / brew install poppler)"},
	{"tesseract", false, "OCR disabled; install tesseract (apt install tesseract-ocr / brew install tesseract)"},
}

// DoctorService probes every external collaborator: embedding backend,
// LLM backend, vector store, and the extraction binaries.
type DoctorService struct {
	embedder driven.EmbeddingService
	llm      driven.LLMService
	store    driven.VectorStore
	lookPath func(string) (string, error)
}

// NewDoctorService creates a doctor. Any service may be nil when its
// provider is not configured or could not be created.
func NewDoctorService(embedder driven.EmbeddingService, llm driven.LLMService, store driven.VectorStore) *DoctorService {
	return &DoctorService{
		embedder: embedder,
		llm:      llm,
		store:    store,
		lookPath: exec.LookPath,
	}
}

// Run executes all probes and returns their results in a stable order:
// embedding, LLM, vector store, then the extraction binaries.
func (s *DoctorService) Run(ctx context.Context) []driving.CheckResult {
	results := make([]driving.CheckResult, 0, 3+len(extractionTools))

	results = append(results,
		s.checkEmbedding(ctx),
		s.checkLLM(ctx),
		s.checkVectorStore(ctx),
	)
	for _, tool := range extractionTools {
		results = append(results, s.checkTool(tool.name, tool.required, tool.hint))
	}
	return results
}

func (s *DoctorService) checkEmbedding(ctx context.Context) driving.CheckResult {
	result := driving.CheckResult{Name: "embedding backend", Required: true}

	if s.embedder == nil {
		result.Detail = "no provider configured, run: lifta settings set embedding.provider ollama"
		return result
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if err := s.embedder.Ping(ctx); err != nil {
		result.Detail = err.Error()
		return result
	}

	result.OK = true
	result.Detail = fmt.Sprintf("model %s, %d dimensions", s.embedder.ModelName(), s.embedder.Dimensions())
	return result
}

func (s *DoctorService) checkLLM(ctx context.Context) driving.CheckResult {
	result := driving.CheckResult{Name: "LLM backend", Required: true}

	if s.llm == nil {
		result.Detail = "no provider configured, run: lifta settings set llm.provider ollama"
		return result
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if err := s.llm.Ping(ctx); err != nil {
		result.Detail = err.Error()
		return result
	}

	result.OK = true
	result.Detail = fmt.Sprintf("model %s", s.llm.ModelName())
	return result
}

func (s *DoctorService) checkVectorStore(ctx context.Context) driving.CheckResult {
	result := driving.CheckResult{Name: "vector store", Required: true}

	if s.store == nil {
		result.Detail = "not configured"
		return result
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		result.Detail = fmt.Sprintf("%v (start Qdrant: docker run -p 6333:6333 -p 6334:6334 qdrant/qdrant)", err)
		return result
	}

	result.OK = true
	result.Detail = "reachable"
	return result
}

func (s *DoctorService) checkTool(name string, required bool, hint string) driving.CheckResult {
	result := driving.CheckResult{Name: name, Required: required}

	path, err := s.lookPath(name)
	if err != nil {
		result.Detail = "not found in PATH; " + hint
		return result
	}

	result.OK = true
	result.Detail = path
	return result
}
