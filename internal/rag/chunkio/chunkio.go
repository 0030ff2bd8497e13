// Package chunkio persists segmented chunks so the expensive PDF pass does not
// have to be repeated before every re-index.
package chunkio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ravidu/futureminds/internal/domain/chunkModel"
)

// ChunkFile is the on-disk JSON interchange format.
type ChunkFile struct {
	Chunks []chunkModel.Chunk `json:"chunks"`
}

var csvHeader = []string{"chunk_id", "page_number", "section", "subsection", "chapter", "chunk_index", "chunk_content"}

func WriteJSON(w io.Writer, chunks []chunkModel.Chunk) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ChunkFile{Chunks: chunks})
}

func ReadJSON(r io.Reader) ([]chunkModel.Chunk, error) {
	var file ChunkFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding chunk file: %w", err)
	}
	return file.Chunks, nil
}

func WriteCSV(w io.Writer, chunks []chunkModel.Chunk) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, c := range chunks {
		row := []string{
			c.ChunkId,
			strconv.Itoa(c.PageNumber),
			c.Section,
			c.Subsection,
			c.Chapter,
			strconv.Itoa(c.ChunkIndex),
			c.Text,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ReadCSV(r io.Reader) ([]chunkModel.Chunk, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading chunk csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var chunks []chunkModel.Chunk
	for i, row := range rows[1:] {
		if len(row) != len(csvHeader) {
			return nil, fmt.Errorf("row %d: expected %d fields, got %d", i+2, len(csvHeader), len(row))
		}
		page, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad page_number %q", i+2, row[1])
		}
		idx, err := strconv.Atoi(row[5])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad chunk_index %q", i+2, row[5])
		}
		chunks = append(chunks, chunkModel.Chunk{
			ChunkId:    row[0],
			PageNumber: page,
			Section:    row[2],
			Subsection: row[3],
			Chapter:    row[4],
			ChunkIndex: idx,
			Text:       row[6],
		})
	}
	return chunks, nil
}

// SaveFiles writes both interchange formats next to each other, the JSON for
// reloading and the CSV for eyeballing in a spreadsheet.
func SaveFiles(chunks []chunkModel.Chunk, jsonPath, csvPath string) error {
	jf, err := os.Create(jsonPath)
	if err != nil {
		return err
	}
	defer jf.Close()
	if err := WriteJSON(jf, chunks); err != nil {
		return err
	}

	cf, err := os.Create(csvPath)
	if err != nil {
		return err
	}
	defer cf.Close()
	return WriteCSV(cf, chunks)
}

func LoadJSONFile(path string) ([]chunkModel.Chunk, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}
