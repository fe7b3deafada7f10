// Package httpapi exposes the comparison core over HTTP: uploading,
// listing and deleting source documents, and triggering comparison
// runs.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/crosscheck-hq/crosscheck-cli/internal/core/domain"
	"github.com/crosscheck-hq/crosscheck-cli/internal/core/ports/driven"
	"github.com/crosscheck-hq/crosscheck-cli/internal/core/ports/driving"
	"github.com/crosscheck-hq/crosscheck-cli/internal/logger"
)

// maxUploadBytes caps uploaded file size at 10MB.
const maxUploadBytes = 10 * 1024 * 1024

// Handler serves the document comparison API.
type Handler struct {
	runner    driving.ComparisonRunner
	store     driven.FileStore
	registry  driven.ExtractorRegistry
	outputDir string
	blockSize int
}

// New creates an API handler.
func New(runner driving.ComparisonRunner, store driven.FileStore, registry driven.ExtractorRegistry, outputDir string, blockSize int) *Handler {
	return &Handler{
		runner:    runner,
		store:     store,
		registry:  registry,
		outputDir: outputDir,
		blockSize: blockSize,
	}
}

// Routes returns the API mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/files", h.HandleFiles)
	mux.HandleFunc("/api/compare", h.HandleCompare)
	mux.HandleFunc("/healthcheck", h.HandleHealthcheck)
	return mux
}

// HandleHealthcheck reports liveness.
func (h *Handler) HandleHealthcheck(w http.ResponseWriter, _ *http.Request) {
	if _, err := w.Write([]byte("OK")); err != nil {
		logger.Warn("unable to write healthcheck: %v", err)
	}
}

// HandleFiles dispatches file management by method.
func (h *Handler) HandleFiles(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleUpload(w, r)
	case http.MethodDelete:
		h.handleDelete(w, r)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	files, err := h.store.List(r.Context())
	if err != nil {
		h.writeError(w, err.Error(), statusFor(err))
		return
	}
	if files == nil {
		files = []domain.FileInfo{}
	}
	h.writeJSON(w, files)
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if !slices.Contains(h.registry.SupportedExtensions(), ext) {
		h.writeError(w, "Unsupported file type: "+ext, http.StatusBadRequest)
		return
	}

	path, err := h.store.Save(r.Context(), name, io.LimitReader(file, maxUploadBytes))
	if err != nil {
		h.writeError(w, "Failed to store file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	response := map[string]any{
		"message": "File '" + name + "' successfully stored.",
	}

	// Compare the new document against the rest of the corpus. A
	// comparison failure does not undo the upload.
	opts := driving.RunOptions{OutputDir: h.outputDir, BlockSize: h.blockSize}
	result, err := h.runner.RunTargeted(r.Context(), path, h.store.Dir(), opts)
	if err != nil {
		logger.Warn("targeted comparison for %s failed: %v", name, err)
		response["comparison_error"] = err.Error()
	} else {
		response["summary"] = result.SummaryPath
		response["scores"] = scoreRow(result.Matrix)
		if len(result.Skipped) > 0 {
			response["skipped"] = result.Skipped
		}
	}

	h.writeJSON(w, response)
}

// deleteRequest is the body of a DELETE /api/files call.
type deleteRequest struct {
	SerialNumbers []int `json:"serial_numbers"`
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.SerialNumbers) == 0 {
		h.writeError(w, "No serial numbers provided", http.StatusBadRequest)
		return
	}

	deleted, missing, err := h.store.Delete(r.Context(), req.SerialNumbers)
	if err != nil {
		h.writeError(w, err.Error(), statusFor(err))
		return
	}

	h.writeJSON(w, map[string]any{
		"deleted":   deleted,
		"not_found": missing,
	})
}

// HandleCompare triggers a full comparison run over the corpus.
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	opts := driving.RunOptions{OutputDir: h.outputDir, BlockSize: h.blockSize}
	result, err := h.runner.RunFull(r.Context(), h.store.Dir(), opts)
	if err != nil {
		h.writeError(w, err.Error(), statusFor(err))
		return
	}

	h.writeJSON(w, map[string]any{
		"summary": result.SummaryPath,
		"names":   result.Matrix.ColNames,
		"matrix":  result.Matrix.Cells,
	})
}

// scoreRow pairs the single-row matrix of a targeted run with its
// column names.
func scoreRow(matrix *domain.ScoreMatrix) map[string]float64 {
	scores := make(map[string]float64, len(matrix.ColNames))
	for j, name := range matrix.ColNames {
		scores[name] = matrix.Cells[0][j]
	}
	return scores
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrPathNotFound),
		errors.Is(err, domain.ErrMinimumDocuments),
		errors.Is(err, domain.ErrNoCandidates),
		errors.Is(err, domain.ErrUnsupportedFormat),
		errors.Is(err, domain.ErrInvalidBlockSize):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Warn("unable to write response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		logger.Warn("unable to write error response: %v", err)
	}
}
