package api

// requests---------------------

type AskRequest struct {
	Question string `json:"question" validate:"required"`
}

type IngestRequest struct {
	DocumentPath string `json:"document_path" validate:"required"`
}

// responses--------------------

type AskResponse struct {
	Answer         string   `json:"answer"`
	Sections       []string `json:"sections"`
	Pages          []int    `json:"pages"`
	ContextPreview string   `json:"context_preview"`
}

type IngestResponse struct {
	DocumentId   string `json:"document_id"`
	DocumentName string `json:"document_name"`
	Chunks       int    `json:"chunks"`
}

type ErrorResponse struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"question is required"`
}
