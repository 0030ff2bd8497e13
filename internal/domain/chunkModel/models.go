package chunkModel

import (
	"fmt"
	"time"
)

// Document is the source a set of chunks was ingested from.
type Document struct {
	Id          string    `json:"source_doc_id"`
	Name        string    `json:"doc_name"`
	IngestedAt  time.Time `json:"ingested_at"`
	ContentType DocType   `json:"content_type"`
}

type DocType string

var (
	PDF DocType = "PDF"
	DOC DocType = "DOC"
	ERR DocType = "ERROR"
)

// Chunk is the unit of retrieval: a bounded passage of source text plus the
// positional and structural metadata captured at extraction time. Headings are
// sticky: a chunk carries whatever chapter/section/subsection was last seen,
// even when the heading appeared pages earlier.
type Chunk struct {
	Text       string `json:"text"`
	PageNumber int    `json:"page_number"`
	Chapter    string `json:"chapter"`
	Section    string `json:"section"`
	Subsection string `json:"subsection"`
	ChunkId    string `json:"chunk_id"`
	ChunkIndex int    `json:"chunk_index"`
}

// NewChunkId derives the stable id used across re-ingests of the same source.
func NewChunkId(pageNumber, chunkIndex int) string {
	return fmt.Sprintf("p%d_c%d", pageNumber, chunkIndex)
}

// ChunkMeta is the canonical metadata schema written to and read from the
// vector index. Field naming is normalized here once; the page/pages and
// section/sections spellings of older exports do not exist past this boundary.
type ChunkMeta struct {
	PageNumber int    `json:"page_number"`
	Chapter    string `json:"chapter"`
	Section    string `json:"section"`
	Subsection string `json:"subsection"`
	ChunkId    string `json:"chunk_id"`
	ChunkIndex int    `json:"chunk_index"`
	DocName    string `json:"doc_name"`
}

// RetrievalHit is one result of a similarity query. Slices of hits are always
// ordered by descending relevance.
type RetrievalHit struct {
	Text     string
	Metadata ChunkMeta
	Score    float32
}

// QueryContext aggregates the top hits for one question. Built fresh per
// request and discarded with it.
type QueryContext struct {
	ContextText string
	Sections    []string
	Pages       []int
}

func MetaOf(c Chunk, docName string) ChunkMeta {
	return ChunkMeta{
		PageNumber: c.PageNumber,
		Chapter:    c.Chapter,
		Section:    c.Section,
		Subsection: c.Subsection,
		ChunkId:    c.ChunkId,
		ChunkIndex: c.ChunkIndex,
		DocName:    docName,
	}
}
