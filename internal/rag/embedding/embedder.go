package embedding

import "context"

// Embedder maps text to fixed-dimension dense vectors. Implementations must be
// deterministic for identical input and model version: the index-time vector
// and the query-time vector for the same text have to agree.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
