package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/ravidu/futureminds/internal/api"
)

// Ingest replaces the index contents with chunks from the named document.
// The path must point at a file readable by this process.
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req api.IngestRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if req.DocumentPath == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "document_path is required")
		return
	}
	if _, err := os.Stat(req.DocumentPath); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "document not found")
		return
	}

	doc, chunks, err := h.service.IngestDocument(r.Context(), req.DocumentPath)
	if err != nil {
		h.logger.Error("ingestion failed", "doc", req.DocumentPath, "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "document ingestion failed")
		return
	}

	writeJsonResponse(w, http.StatusOK, api.IngestResponse{
		DocumentId:   doc.Id,
		DocumentName: filepath.Base(doc.Name),
		Chunks:       chunks,
	})
}
