package qdrantDB

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/qdrant/go-client/qdrant"
	"github.com/ravidu/futureminds/internal/config"
	"github.com/ravidu/futureminds/internal/domain/chunkModel"
	"github.com/ravidu/futureminds/internal/rag/embedding"
	"github.com/ravidu/futureminds/internal/rag/vectorDB"
	"github.com/ravidu/futureminds/pkg/logging"
)

var dimension = uint64(config.EmbeddingOutputDimensionality)

// Store is the persistent collection backend. Collection name is the sole
// addressing key; everything else (host, embedder) is construction detail.
type Store struct {
	client     *qdrant.Client
	collection string
	embedder   embedding.Embedder
	logger     *logging.Logger
}

type Config struct {
	Host       string
	Port       int
	UseTLS     bool
	Collection string
}

// NewStore connects to qdrant. It does not create or verify the collection;
// call EnsureCollection (query path) or Reset (ingest path) for that.
func NewStore(cfg Config, embedder embedding.Embedder) (*Store, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		UseTLS:   cfg.UseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to qdrant: %w", err)
	}
	return &Store{
		client:     client,
		collection: cfg.Collection,
		embedder:   embedder,
		logger:     logging.NewLogger("qdrant"),
	}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// EnsureCollection verifies the addressed collection exists. On a miss the
// error lists the collections that are available, mirroring what an operator
// needs to fix a misconfigured name.
func (s *Store) EnsureCollection(ctx context.Context) error {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("checking collection %q: %w", s.collection, err)
	}
	if exists {
		return nil
	}

	available, listErr := s.client.ListCollections(ctx)
	if listErr != nil {
		return fmt.Errorf("%w: %q", vectorDB.ErrCollectionNotFound, s.collection)
	}
	return fmt.Errorf("%w: %q (available: %s)", vectorDB.ErrCollectionNotFound,
		s.collection, strings.Join(available, ", "))
}

func (s *Store) createCollection(ctx context.Context) error {
	if s.collection == "" {
		return errors.New("empty collection name")
	}
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
}

// Reset drops and recreates the collection. Re-running ingestion against the
// same name must never leave stale vectors behind.
func (s *Store) Reset(ctx context.Context) error {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return err
	}
	if exists {
		if err := s.client.DeleteCollection(ctx, s.collection); err != nil {
			return fmt.Errorf("deleting stale collection %q: %w", s.collection, err)
		}
		s.logger.Info("deleted stale collection", "collection", s.collection)
	}
	return s.createCollection(ctx)
}

// Add upserts chunks in bounded batches. Vectors are computed through the
// embedder when the caller did not supply them.
func (s *Store) Add(ctx context.Context, doc chunkModel.Document, chunks []chunkModel.Chunk, vectors [][]float32) error {
	if err := s.createCollection(ctx); err != nil {
		return err
	}
	if vectors != nil && len(vectors) != len(chunks) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}

	batchSize := config.UpsertBatchSize
	for i := 0; i < len(chunks); i += batchSize {
		end := i + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[i:end]

		batchVectors := vectors
		if batchVectors == nil {
			texts := make([]string, len(batch))
			for j, c := range batch {
				texts[j] = c.Text
			}
			embedded, err := s.embedder.EmbedBatch(ctx, texts)
			if err != nil {
				return fmt.Errorf("embedding batch at %d: %w", i, err)
			}
			if err := s.upsert(ctx, doc, batch, embedded); err != nil {
				return err
			}
			continue
		}
		if err := s.upsert(ctx, doc, batch, batchVectors[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) upsert(ctx context.Context, doc chunkModel.Document, chunks []chunkModel.Chunk, vectors [][]float32) error {
	points := make([]*qdrant.PointStruct, len(chunks))
	for i, chunk := range chunks {
		meta := chunkModel.MetaOf(chunk, doc.Name)
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(pointID(doc.Id, chunk.ChunkId)),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(map[string]any{
				"content":       chunk.Text,
				"page_number":   int64(meta.PageNumber),
				"chapter":       meta.Chapter,
				"section":       meta.Section,
				"subsection":    meta.Subsection,
				"chunk_id":      meta.ChunkId,
				"chunk_index":   int64(meta.ChunkIndex),
				"doc_name":      meta.DocName,
				"source_doc_id": doc.Id,
				"ingested_at":   doc.IngestedAt.Unix(),
			}),
		}
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}

// pointID folds the document and chunk ids into the numeric id form qdrant
// accepts. FNV keeps it stable, so re-ingesting upserts instead of duplicating.
func pointID(docId, chunkId string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(docId))
	h.Write([]byte{0})
	h.Write([]byte(chunkId))
	return h.Sum64()
}

// Query embeds the question and runs a similarity search. Empty text and
// query-time embedding failures degrade to an empty result set.
func (s *Store) Query(ctx context.Context, text string, topK int) ([]chunkModel.RetrievalHit, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	vector, err := s.embedder.EmbedQuery(ctx, text)
	if err != nil {
		s.logger.Warn("query embedding failed, returning no hits", "error", err)
		return nil, nil
	}

	result, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(topK)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant query failed: %w", err)
	}

	hits := make([]chunkModel.RetrievalHit, 0, len(result))
	for _, point := range result {
		hits = append(hits, chunkModel.RetrievalHit{
			Text:  point.Payload["content"].GetStringValue(),
			Score: point.Score,
			Metadata: chunkModel.ChunkMeta{
				PageNumber: int(point.Payload["page_number"].GetIntegerValue()),
				Chapter:    point.Payload["chapter"].GetStringValue(),
				Section:    point.Payload["section"].GetStringValue(),
				Subsection: point.Payload["subsection"].GetStringValue(),
				ChunkId:    point.Payload["chunk_id"].GetStringValue(),
				ChunkIndex: int(point.Payload["chunk_index"].GetIntegerValue()),
				DocName:    point.Payload["doc_name"].GetStringValue(),
			},
		})
	}
	return hits, nil
}
