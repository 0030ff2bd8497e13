package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ravidu/futureminds/internal/api"
	"github.com/ravidu/futureminds/internal/domain/chunkModel"
	"github.com/ravidu/futureminds/internal/rag"
)

type mockService struct {
	OnAnswer func(ctx context.Context, question string) (rag.Result, error)
	OnIngest func(ctx context.Context, path string) (chunkModel.Document, int, error)
}

func (m *mockService) Answer(ctx context.Context, question string) (rag.Result, error) {
	if m.OnAnswer != nil {
		return m.OnAnswer(ctx, question)
	}
	return rag.Result{Answer: "mocked"}, nil
}

func (m *mockService) IngestDocument(ctx context.Context, path string) (chunkModel.Document, int, error) {
	if m.OnIngest != nil {
		return m.OnIngest(ctx, path)
	}
	return chunkModel.Document{}, 0, nil
}

func TestAsk(t *testing.T) {
	h := New(&mockService{
		OnAnswer: func(ctx context.Context, question string) (rag.Result, error) {
			return rag.Result{
				Answer:   "They flew in 1903.",
				Sections: []string{"Aviation"},
				Pages:    []int{12},
			}, nil
		},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"question":"When did the Wright brothers fly?"}`))
	h.Ask(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp api.AskResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Answer != "They flew in 1903." {
		t.Errorf("answer = %q", resp.Answer)
	}
	if len(resp.Pages) != 1 || resp.Pages[0] != 12 {
		t.Errorf("pages = %v", resp.Pages)
	}
}

func TestAsk_Validation(t *testing.T) {
	h := New(&mockService{})

	tests := []struct {
		name string
		body string
	}{
		{"empty_question", `{"question":"  "}`},
		{"garbage_body", `not json`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(tc.body))
			h.Ask(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestIngest_MissingDocument(t *testing.T) {
	h := New(&mockService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ingest", strings.NewReader(`{"document_path":"/no/such/file.pdf"}`))
	h.Ingest(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
