package segment

import "strings"

// separators ordered from best to worst semantic boundary. The empty string
// is the final fallback: a hard cut at the character level.
var separators = []string{"\n\n", "\n", ". ", " ", ""}

// SplitRecursive is the fixed-window alternative to Segment: it cuts text into
// chunks of at most limit characters at the best separator the text contains,
// carrying overlap characters from the tail of each chunk into the next so
// sentences cut mid-thought keep their lead-in.
func SplitRecursive(text string, limit int, overlap int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= limit {
		return []string{text}
	}

	var splitChar string
	found := false
	for _, s := range separators {
		if s != "" && strings.Contains(text, s) {
			splitChar = s
			found = true
			break
		}
	}

	if !found {
		return hardCut(text, limit, overlap)
	}

	var chunks []string
	var current strings.Builder

	for _, part := range strings.Split(text, splitChar) {
		if current.Len()+len(part)+len(splitChar) > limit {
			if current.Len() > 0 {
				chunks = append(chunks, current.String())
			}

			overlapTail := ""
			if current.Len() > overlap {
				overlapTail = current.String()[current.Len()-overlap:]
			}
			current.Reset()
			current.WriteString(overlapTail)
		}

		if current.Len() > 0 {
			current.WriteString(splitChar)
		}
		current.WriteString(part)
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

func hardCut(text string, limit int, overlap int) []string {
	var chunks []string
	step := limit - overlap
	if step <= 0 {
		step = limit
	}
	for start := 0; start < len(text); start += step {
		end := start + limit
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[start:end])
		if end == len(text) {
			break
		}
	}
	return chunks
}
