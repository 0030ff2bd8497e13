package chunkio

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/ravidu/futureminds/internal/domain/chunkModel"
)

func sampleChunks() []chunkModel.Chunk {
	return []chunkModel.Chunk{
		{
			Text:       "The Wright brothers flew in 1903.",
			PageNumber: 12,
			Chapter:    "Chapter 2: Flight",
			Section:    "2.3 Aviation",
			Subsection: "2.3.1 First Powered Flight",
			ChunkId:    "p12_c0",
			ChunkIndex: 0,
		},
		{
			Text:       "Text with, commas and \"quotes\" inside.",
			PageNumber: 40,
			ChunkId:    "p40_c0",
			ChunkIndex: 0,
		},
	}
}

func TestJSONRoundTrip(t *testing.T) {
	want := sampleChunks()

	var buf bytes.Buffer
	if err := WriteJSON(&buf, want); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	want := sampleChunks()

	var buf bytes.Buffer
	if err := WriteCSV(&buf, want); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	header := strings.SplitN(buf.String(), "\n", 2)[0]
	if !strings.Contains(header, "chunk_content") {
		t.Errorf("csv header missing chunk_content column: %q", header)
	}

	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestReadCSV_BadRow(t *testing.T) {
	in := "chunk_id,page_number,section,subsection,chapter,chunk_index,chunk_content\n" +
		"p1_c0,notanumber,s,ss,ch,0,text\n"
	if _, err := ReadCSV(strings.NewReader(in)); err == nil {
		t.Error("expected error for non-numeric page_number")
	}
}

func TestReadJSON_Garbage(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader("{not json")); err == nil {
		t.Error("expected decode error")
	}
}
