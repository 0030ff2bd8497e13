package handlers

import (
	"net/http"
	"strings"

	"github.com/ravidu/futureminds/internal/api"
	"github.com/ravidu/futureminds/internal/rag"
	"github.com/ravidu/futureminds/pkg/logging"
)

// Handler exposes the retrieval pipeline over HTTP. Each request is served
// synchronously within the request lifetime.
type Handler struct {
	service rag.Service
	logger  *logging.Logger
}

func New(service rag.Service) *Handler {
	return &Handler{
		service: service,
		logger:  logging.NewLogger("ask_handler"),
	}
}

func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req api.AskRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "question is required")
		return
	}

	result, err := h.service.Answer(r.Context(), req.Question)
	if err != nil {
		h.logger.Error("answer failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "answer generation failed")
		return
	}

	writeJsonResponse(w, http.StatusOK, api.AskResponse{
		Answer:         result.Answer,
		Sections:       result.Sections,
		Pages:          result.Pages,
		ContextPreview: result.ContextPreview,
	})
}
