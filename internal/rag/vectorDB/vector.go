package vectorDB

import (
	"context"
	"errors"

	"github.com/ravidu/futureminds/internal/domain/chunkModel"
)

// ErrCollectionNotFound is returned when a named collection does not exist.
// The error text enumerates the collections that do, so a mistyped name is
// diagnosable from the message alone.
var ErrCollectionNotFound = errors.New("collection not found")

// Index is the storage contract the retrieval pipeline runs against. The
// qdrant store and the in-process HNSW graph both satisfy it; the core never
// needs to know which one it has.
type Index interface {
	// Add upserts chunks. When vectors is nil the index embeds the chunk
	// texts itself, in bounded batches.
	Add(ctx context.Context, doc chunkModel.Document, chunks []chunkModel.Chunk, vectors [][]float32) error

	// Query embeds text and returns at most topK hits by descending
	// similarity. An empty query or a failed query-time embedding yields an
	// empty result, not an error: answering with "not enough information"
	// beats failing the request.
	Query(ctx context.Context, text string, topK int) ([]chunkModel.RetrievalHit, error)

	// Reset drops and recreates the underlying store for re-ingestion.
	Reset(ctx context.Context) error
}
