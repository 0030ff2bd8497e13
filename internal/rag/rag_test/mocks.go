package rag_test

import (
	"context"
	"fmt"

	"github.com/ravidu/futureminds/internal/domain/chunkModel"
)

// MockIndex implements vectorDB.Index
type MockIndex struct {
	OnAdd   func(ctx context.Context, doc chunkModel.Document, chunks []chunkModel.Chunk, vectors [][]float32) error
	OnQuery func(ctx context.Context, text string, topK int) ([]chunkModel.RetrievalHit, error)
	OnReset func(ctx context.Context) error
}

func (m *MockIndex) Add(ctx context.Context, doc chunkModel.Document, chunks []chunkModel.Chunk, vectors [][]float32) error {
	if m.OnAdd != nil {
		return m.OnAdd(ctx, doc, chunks, vectors)
	}
	return nil
}

func (m *MockIndex) Query(ctx context.Context, text string, topK int) ([]chunkModel.RetrievalHit, error) {
	if m.OnQuery != nil {
		return m.OnQuery(ctx, text, topK)
	}
	return nil, nil
}

func (m *MockIndex) Reset(ctx context.Context) error {
	if m.OnReset != nil {
		return m.OnReset(ctx)
	}
	return nil
}

// MockSynthesizer implements rag.Synthesizer
type MockSynthesizer struct {
	OnSynthesize func(ctx context.Context, question, contextText, webContent string) (string, error)
}

func (m *MockSynthesizer) Synthesize(ctx context.Context, question, contextText, webContent string) (string, error) {
	if m.OnSynthesize != nil {
		return m.OnSynthesize(ctx, question, contextText, webContent)
	}
	return "mocked answer", nil
}

// MockAugmentor implements rag.Augmentor
type MockAugmentor struct {
	OnAugment func(ctx context.Context, query string) string
}

func (m *MockAugmentor) Augment(ctx context.Context, query string) string {
	if m.OnAugment != nil {
		return m.OnAugment(ctx, query)
	}
	return ""
}

// MockEmbedder implements embedding.Embedder with deterministic vectors for
// end-to-end tests on the in-process index.
type MockEmbedder struct {
	Vectors map[string][]float32
}

func (m *MockEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	v, ok := m.Vectors[text]
	if !ok {
		return nil, fmt.Errorf("no vector for %q", text)
	}
	out := make([]float32, len(v))
	copy(out, v)
	return out, nil
}

func (m *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	var out [][]float32
	for _, t := range texts {
		v, err := m.EmbedQuery(ctx, t)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
