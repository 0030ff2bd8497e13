// Package hnswIndex is the in-process alternative to the qdrant store: an
// approximate nearest-neighbor graph holding vectors, texts, and metadata in
// memory. Nothing is durable unless Save is called explicitly.
package hnswIndex

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/coder/hnsw"
	"github.com/ravidu/futureminds/internal/domain/chunkModel"
	"github.com/ravidu/futureminds/internal/rag/embedding"
	"github.com/ravidu/futureminds/internal/rag/vectorDB"
	"github.com/ravidu/futureminds/pkg/logging"
)

type entry struct {
	Text string               `json:"text"`
	Meta chunkModel.ChunkMeta `json:"meta"`
}

// Index wraps a cosine-distance HNSW graph. Build is single-writer; once
// built, queries are read-only and safe for concurrent callers.
type Index struct {
	graph    *hnsw.Graph[string]
	entries  map[string]entry
	dim      int
	embedder embedding.Embedder
	logger   *logging.Logger
}

func New(embedder embedding.Embedder) *Index {
	return &Index{
		graph:    newGraph(),
		entries:  make(map[string]entry),
		embedder: embedder,
		logger:   logging.NewLogger("hnsw"),
	}
}

func newGraph() *hnsw.Graph[string] {
	g := hnsw.NewGraph[string]()
	g.Distance = hnsw.CosineDistance
	return g
}

func (i *Index) Len() int {
	return len(i.entries)
}

// Add embeds (when needed), normalizes, and inserts chunks. Vectors whose
// dimensionality disagrees with the first inserted vector are rejected: a
// mixed-dimension graph returns garbage distances, not errors.
func (i *Index) Add(ctx context.Context, doc chunkModel.Document, chunks []chunkModel.Chunk, vectors [][]float32) error {
	if len(chunks) == 0 {
		return nil
	}

	if vectors == nil {
		texts := make([]string, len(chunks))
		for j, c := range chunks {
			texts[j] = c.Text
		}
		var err error
		vectors, err = i.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("embedding chunks: %w", err)
		}
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}

	for j, vec := range vectors {
		if i.dim == 0 {
			i.dim = len(vec)
		}
		if len(vec) != i.dim {
			return fmt.Errorf("vector for %s has dimension %d, index uses %d",
				chunks[j].ChunkId, len(vec), i.dim)
		}

		embedding.Normalize(vec)
		i.graph.Add(hnsw.MakeNode(chunks[j].ChunkId, vec))
		i.entries[chunks[j].ChunkId] = entry{
			Text: chunks[j].Text,
			Meta: chunkModel.MetaOf(chunks[j], doc.Name),
		}
	}
	return nil
}

// Query is the unfiltered search used by the pipeline.
func (i *Index) Query(ctx context.Context, text string, topK int) ([]chunkModel.RetrievalHit, error) {
	return i.QueryFiltered(ctx, text, topK, nil)
}

// QueryFiltered retrieves 2×topK raw neighbors and applies the metadata
// predicate afterwards, truncating to topK. The graph cannot filter before
// the metric search, so oversampling is what keeps filtered result sets full.
func (i *Index) QueryFiltered(ctx context.Context, text string, topK int, keep func(chunkModel.ChunkMeta) bool) ([]chunkModel.RetrievalHit, error) {
	if strings.TrimSpace(text) == "" || i.Len() == 0 {
		return nil, nil
	}

	query, err := i.embedder.EmbedQuery(ctx, text)
	if err != nil {
		i.logger.Warn("query embedding failed, returning no hits", "error", err)
		return nil, nil
	}
	if len(query) != i.dim {
		return nil, fmt.Errorf("query vector has dimension %d, index uses %d", len(query), i.dim)
	}
	embedding.Normalize(query)

	neighbors := i.graph.Search(query, 2*topK)

	hits := make([]chunkModel.RetrievalHit, 0, topK)
	for _, node := range neighbors {
		e, ok := i.entries[node.Key]
		if !ok {
			continue
		}
		if keep != nil && !keep(e.Meta) {
			continue
		}
		hits = append(hits, chunkModel.RetrievalHit{
			Text:     e.Text,
			Metadata: e.Meta,
			Score:    1 - hnsw.CosineDistance(query, node.Value),
		})
		if len(hits) >= topK {
			break
		}
	}
	return hits, nil
}

// Reset throws the graph and metadata away.
func (i *Index) Reset(ctx context.Context) error {
	i.graph = newGraph()
	i.entries = make(map[string]entry)
	i.dim = 0
	return nil
}

// Save serializes the graph and its metadata side-by-side under pathPrefix.
func (i *Index) Save(pathPrefix string) error {
	gf, err := os.Create(pathPrefix + ".graph")
	if err != nil {
		return err
	}
	defer gf.Close()
	if err := i.graph.Export(gf); err != nil {
		return fmt.Errorf("exporting graph: %w", err)
	}

	mf, err := os.Create(pathPrefix + ".meta.json")
	if err != nil {
		return err
	}
	defer mf.Close()
	return json.NewEncoder(mf).Encode(struct {
		Dim     int              `json:"dim"`
		Entries map[string]entry `json:"entries"`
	}{i.dim, i.entries})
}

// Load restores an index previously written by Save.
func Load(pathPrefix string, embedder embedding.Embedder) (*Index, error) {
	i := New(embedder)

	gf, err := os.Open(pathPrefix + ".graph")
	if err != nil {
		return nil, err
	}
	defer gf.Close()
	if err := i.graph.Import(gf); err != nil {
		return nil, fmt.Errorf("importing graph: %w", err)
	}

	mf, err := os.Open(pathPrefix + ".meta.json")
	if err != nil {
		return nil, err
	}
	defer mf.Close()
	var stored struct {
		Dim     int              `json:"dim"`
		Entries map[string]entry `json:"entries"`
	}
	if err := json.NewDecoder(mf).Decode(&stored); err != nil {
		return nil, fmt.Errorf("decoding index metadata: %w", err)
	}
	i.dim = stored.Dim
	i.entries = stored.Entries
	return i, nil
}

var _ vectorDB.Index = (*Index)(nil)
