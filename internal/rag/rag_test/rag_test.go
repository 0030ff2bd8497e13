package rag_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ravidu/futureminds/internal/domain/chunkModel"
	"github.com/ravidu/futureminds/internal/rag"
	"github.com/ravidu/futureminds/internal/rag/vectorDB/hnswIndex"
)

func hit(text, section string, page int) chunkModel.RetrievalHit {
	return chunkModel.RetrievalHit{
		Text:     text,
		Metadata: chunkModel.ChunkMeta{Section: section, PageNumber: page},
	}
}

func TestAnswer_Scenarios(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(i *MockIndex, s *MockSynthesizer, a *MockAugmentor)
		augmented  bool
		wantAnswer string
		wantErr    bool
	}{
		{
			name: "full_flow",
			setupMocks: func(i *MockIndex, s *MockSynthesizer, a *MockAugmentor) {
				i.OnQuery = func(ctx context.Context, text string, topK int) ([]chunkModel.RetrievalHit, error) {
					return []chunkModel.RetrievalHit{hit("context passage", "1.1", 3)}, nil
				}
				s.OnSynthesize = func(ctx context.Context, q, c, w string) (string, error) {
					if !strings.Contains(c, "context passage") {
						return "", errors.New("context not passed through")
					}
					return "final answer", nil
				}
			},
			wantAnswer: "final answer",
		},
		{
			name: "retrieval_failure_degrades_to_empty_context",
			setupMocks: func(i *MockIndex, s *MockSynthesizer, a *MockAugmentor) {
				i.OnQuery = func(ctx context.Context, text string, topK int) ([]chunkModel.RetrievalHit, error) {
					return nil, errors.New("index unavailable")
				}
				s.OnSynthesize = func(ctx context.Context, q, c, w string) (string, error) {
					if c != "" {
						return "", errors.New("expected empty context")
					}
					return "insufficient information", nil
				}
			},
			wantAnswer: "insufficient information",
		},
		{
			name: "synthesis_failure_propagates",
			setupMocks: func(i *MockIndex, s *MockSynthesizer, a *MockAugmentor) {
				s.OnSynthesize = func(ctx context.Context, q, c, w string) (string, error) {
					return "", errors.New("generation failed")
				}
			},
			wantErr: true,
		},
		{
			name:      "web_content_reaches_synthesizer",
			augmented: true,
			setupMocks: func(i *MockIndex, s *MockSynthesizer, a *MockAugmentor) {
				a.OnAugment = func(ctx context.Context, query string) string {
					return "scraped facts"
				}
				s.OnSynthesize = func(ctx context.Context, q, c, w string) (string, error) {
					if w != "scraped facts" {
						return "", errors.New("web content missing")
					}
					return "augmented answer", nil
				}
			},
			wantAnswer: "augmented answer",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			index := &MockIndex{}
			synth := &MockSynthesizer{}
			aug := &MockAugmentor{}
			tc.setupMocks(index, synth, aug)

			var svc rag.Service
			if tc.augmented {
				svc = rag.NewService(index, synth, aug)
			} else {
				svc = rag.NewService(index, synth, nil)
			}

			result, err := svc.Answer(context.Background(), "some question")
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Answer: %v", err)
			}
			if result.Answer != tc.wantAnswer {
				t.Errorf("answer = %q, want %q", result.Answer, tc.wantAnswer)
			}
		})
	}
}

func TestAnswer_AggregatesCitationsFirstSeen(t *testing.T) {
	index := &MockIndex{
		OnQuery: func(ctx context.Context, text string, topK int) ([]chunkModel.RetrievalHit, error) {
			return []chunkModel.RetrievalHit{
				hit("a", "2.1", 5),
				hit("b", "1.3", 2),
				hit("c", "2.1", 5),
			}, nil
		},
	}
	svc := rag.NewService(index, &MockSynthesizer{}, nil)

	result, err := svc.Answer(context.Background(), "q")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if want := []string{"2.1", "1.3"}; !reflect.DeepEqual(result.Sections, want) {
		t.Errorf("sections = %v, want %v", result.Sections, want)
	}
	if want := []int{5, 2}; !reflect.DeepEqual(result.Pages, want) {
		t.Errorf("pages = %v, want %v", result.Pages, want)
	}
}

// End-to-end over the real in-process index with a canned embedder.
func TestAnswer_EndToEnd(t *testing.T) {
	embedder := &MockEmbedder{Vectors: map[string][]float32{
		"The Wright brothers flew in 1903.": {1, 0, 0},
		"Unrelated content about farming.":  {0, 1, 0},
		"When did the Wright brothers fly?": {0.95, 0.05, 0},
	}}

	index := hnswIndex.New(embedder)
	doc := chunkModel.Document{Id: "doc-1", Name: "textbook"}
	chunks := []chunkModel.Chunk{
		{Text: "The Wright brothers flew in 1903.", PageNumber: 12, Section: "Aviation", ChunkId: "p12_c0"},
		{Text: "Unrelated content about farming.", PageNumber: 40, Section: "Agriculture", ChunkId: "p40_c0"},
	}
	if err := index.Add(context.Background(), doc, chunks, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}

	var gotContext string
	synth := &MockSynthesizer{
		OnSynthesize: func(ctx context.Context, q, c, w string) (string, error) {
			gotContext = c
			return "They flew in 1903.", nil
		},
	}
	svc := rag.NewService(index, synth, nil)

	result, err := svc.Answer(context.Background(), "When did the Wright brothers fly?")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !strings.HasPrefix(gotContext, "The Wright brothers flew in 1903.") {
		t.Errorf("top hit is not the aviation chunk: %q", gotContext)
	}
	if len(result.Pages) == 0 || result.Pages[0] != 12 {
		t.Errorf("pages = %v, want [12 ...]", result.Pages)
	}
	if result.ContextPreview == "" {
		t.Error("context preview should not be empty")
	}
}
