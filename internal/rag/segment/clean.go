package segment

import (
	"regexp"
	"strings"
)

var (
	repeatedCharRe  = regexp.MustCompile(`(.)\1{2,}`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
	runningHeaderRe = regexp.MustCompile(`Page \d+ of \d+`)
)

// CleanText fixes the two artifacts scanned textbooks reliably produce:
// OCR-stuttered characters ("MMMaaacccaaadddaaammm") and ragged whitespace.
// Running "Page N of M" headers are dropped as well.
func CleanText(text string) string {
	text = runningHeaderRe.ReplaceAllString(text, "")
	text = repeatedCharRe.ReplaceAllString(text, "$1")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
