package webaug

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ravidu/futureminds/internal/config"
	"github.com/ravidu/futureminds/pkg/logging"
	"golang.org/x/time/rate"
)

const (
	markerUnavailable = "[unavailable: site blocks automated access]"
	markerErrorPrefix = "[error scraping"
	markerTruncated   = "... [content truncated]"
)

// excludedDomains block programmatic scraping and are skipped outright.
var excludedDomains = []string{
	"instagram.com",
	"reddit.com",
	"facebook.com",
	"twitter.com",
	"x.com",
}

// Cache stores scraped page text keyed by (url, query) for the process
// lifetime, so repeated questions do not re-fetch the same pages.
type Cache interface {
	Get(ctx context.Context, url, query string) (string, bool)
	Set(ctx context.Context, url, query, text string)
}

type Scraper struct {
	client    *http.Client
	limiter   *rate.Limiter
	cache     Cache
	pageLimit int
	logger    *logging.Logger
}

func NewScraper(cache Cache) *Scraper {
	return &Scraper{
		client:    &http.Client{Timeout: config.ScrapeTimeout},
		limiter:   rate.NewLimiter(rate.Every(config.ScrapeDelay), 1),
		cache:     cache,
		pageLimit: config.ScrapePageLimit,
		logger:    logging.NewLogger("scraper"),
	}
}

// Scrape fetches one page and extracts its readable text. Failures are
// reported as marker strings rather than errors so one bad page never aborts
// the batch.
func (s *Scraper) Scrape(ctx context.Context, pageURL, query string) string {
	if isExcluded(pageURL) {
		return markerUnavailable
	}
	if text, ok := s.cache.Get(ctx, pageURL, query); ok {
		return text
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return errorMarker(pageURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return errorMarker(pageURL, err)
	}
	req.Header.Set("User-Agent", "futureminds-bot/1.0 (educational assistant)")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("fetch failed", "url", pageURL, "error", err)
		return errorMarker(pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errorMarker(pageURL, fmt.Errorf("status %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return errorMarker(pageURL, err)
	}

	var text string
	if isWikipedia(pageURL) {
		text = extractWikipedia(doc, query)
	} else {
		text = extractGeneric(doc)
	}
	if strings.TrimSpace(text) == "" {
		return errorMarker(pageURL, fmt.Errorf("no readable content"))
	}

	if len(text) > s.pageLimit {
		text = text[:s.pageLimit] + markerTruncated
	}
	s.cache.Set(ctx, pageURL, query, text)
	return text
}

// extractGeneric strips chrome elements and pulls text from the most
// article-like container present.
func extractGeneric(doc *goquery.Document) string {
	doc.Find("script, style, nav, footer, aside, header, form").Remove()

	for _, selector := range []string{"article", "main", "#content", ".content", "body"} {
		sel := doc.Find(selector)
		if sel.Length() == 0 {
			continue
		}
		text := collapseWhitespace(sel.First().Text())
		if len(text) > 0 {
			return text
		}
	}
	return ""
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isExcluded(pageURL string) bool {
	u, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, d := range excludedDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

func isWikipedia(pageURL string) bool {
	u, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	return strings.HasSuffix(strings.ToLower(u.Hostname()), "wikipedia.org")
}

func errorMarker(pageURL string, err error) string {
	return fmt.Sprintf("%s %s: %v]", markerErrorPrefix, pageURL, err)
}

// IsErrorMarker reports whether a scrape result is a marker rather than
// usable page text.
func IsErrorMarker(text string) bool {
	return text == markerUnavailable || strings.HasPrefix(text, markerErrorPrefix)
}
