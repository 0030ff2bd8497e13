package segment

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/ravidu/futureminds/internal/domain/chunkModel"
)

// Options controls the sentence-grouped segmenter.
type Options struct {
	ChunkSentences    int // sentences accumulated per chunk
	MinSentenceLength int // shorter sentences are treated as page noise
}

func DefaultOptions() Options {
	return Options{ChunkSentences: 4, MinSentenceLength: 30}
}

var (
	chapterRe    = regexp.MustCompile(`(?i)^chapter\s+\d+\s*[:.]?\s*\S?.*$`)
	subsectionRe = regexp.MustCompile(`^\d+\.\d+\.\d+\s+\S.*$`)
	sectionRe    = regexp.MustCompile(`^\d+\.\d+\s+\S.*$`)
)

// headings tracks the sticky chapter/section/subsection state. A detected
// heading applies to everything that follows it until a new heading of the
// same kind is seen, across page boundaries.
type headings struct {
	chapter    string
	section    string
	subsection string
}

// observe checks one line for a heading and updates the sticky state. A new
// chapter resets section and subsection; a new section resets subsection.
func (h *headings) observe(line string) bool {
	switch {
	case chapterRe.MatchString(line):
		h.chapter = line
		h.section = ""
		h.subsection = ""
	case subsectionRe.MatchString(line):
		h.subsection = line
	case sectionRe.MatchString(line):
		h.section = line
		h.subsection = ""
	case isCapsHeading(line):
		h.section = line
		h.subsection = ""
	default:
		return false
	}
	return true
}

// isCapsHeading matches the short shouted lines textbooks use as unnumbered
// section titles ("THE INDUSTRIAL REVOLUTION").
func isCapsHeading(line string) bool {
	if len(line) < 4 || len(line) > 60 {
		return false
	}
	letters := 0
	for _, r := range line {
		switch {
		case unicode.IsUpper(r):
			letters++
		case unicode.IsLower(r) || unicode.IsDigit(r):
			return false
		}
	}
	return letters >= 4
}

// Segment splits extracted pages into sentence-grouped chunks tagged with page
// and heading metadata. Chunk ids derive from the page a chunk starts on and a
// per-page sequence, so re-segmenting the same input reproduces the same ids.
func Segment(pages []Page, opts Options) []chunkModel.Chunk {
	if opts.ChunkSentences <= 0 {
		opts.ChunkSentences = DefaultOptions().ChunkSentences
	}

	var (
		chunks    []chunkModel.Chunk
		current   []string
		state     headings
		startPage int
		pageSeq   = make(map[int]int)
	)

	emit := func() {
		if len(current) == 0 {
			return
		}
		text := CleanText(strings.Join(current, " "))
		if text == "" {
			current = current[:0]
			return
		}
		idx := pageSeq[startPage]
		pageSeq[startPage] = idx + 1
		chunks = append(chunks, chunkModel.Chunk{
			Text:       text,
			PageNumber: startPage,
			Chapter:    state.chapter,
			Section:    state.section,
			Subsection: state.subsection,
			ChunkId:    chunkModel.NewChunkId(startPage, idx),
			ChunkIndex: idx,
		})
		current = current[:0]
	}

	for _, page := range pages {
		for _, line := range strings.Split(page.Text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			if state.observe(line) {
				// heading lines tag the chunks that follow, they are
				// not body text themselves
				continue
			}

			for _, sentence := range splitSentences(line) {
				if len(sentence) < opts.MinSentenceLength {
					continue
				}
				if len(current) == 0 {
					startPage = page.Number
				}
				current = append(current, sentence)
				if len(current) >= opts.ChunkSentences {
					emit()
				}
			}
		}
	}

	// leftover sentences become a final, possibly undersized, chunk
	emit()
	return chunks
}

// splitSentences breaks a line on terminal punctuation. It is deliberately
// simple: the min-length filter already discards most of what a smarter
// tokenizer would rescue.
func splitSentences(line string) []string {
	var sentences []string
	var b strings.Builder

	flush := func() {
		s := strings.TrimSpace(b.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		b.Reset()
	}

	runes := []rune(line)
	for i, r := range runes {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if i+1 >= len(runes) || unicode.IsSpace(runes[i+1]) {
				flush()
			}
		}
	}
	flush()
	return sentences
}
