package webaug

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var dateLineRe = regexp.MustCompile(`\b(\d{1,2}\s+)?(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4}\b|\b\d{4}\b`)

// extractWikipedia pulls the parts of a Wikipedia article most likely to
// answer a factual question: the infobox, the lead paragraphs, and for
// date-flavored queries any sentence carrying an explicit date.
func extractWikipedia(doc *goquery.Document, query string) string {
	var b strings.Builder

	doc.Find("table.infobox tr").Each(func(_ int, row *goquery.Selection) {
		key := collapseWhitespace(row.Find("th").First().Text())
		value := collapseWhitespace(row.Find("td").First().Text())
		if key != "" && value != "" {
			b.WriteString(key)
			b.WriteString(": ")
			b.WriteString(value)
			b.WriteString("\n")
		}
	})

	content := doc.Find("#mw-content-text")
	paragraphs := 0
	content.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := collapseWhitespace(p.Text())
		if len(text) < 50 {
			return true
		}
		b.WriteString(text)
		b.WriteString("\n")
		paragraphs++
		return paragraphs < 3
	})

	if wantsDates(query) {
		content.Find("p").Each(func(_ int, p *goquery.Selection) {
			text := collapseWhitespace(p.Text())
			if dateLineRe.MatchString(text) && len(text) >= 50 && len(text) < 500 {
				b.WriteString(text)
				b.WriteString("\n")
			}
		})
	}

	return strings.TrimSpace(b.String())
}

func wantsDates(query string) bool {
	q := strings.ToLower(query)
	for _, term := range []string{"when", "born", "birth", "date", "died", "year"} {
		if strings.Contains(q, term) {
			return true
		}
	}
	return false
}
