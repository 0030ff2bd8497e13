package webaug

import (
	"context"
	"strings"

	"github.com/ravidu/futureminds/internal/config"
	"github.com/ravidu/futureminds/pkg/logging"
)

// topicURLs maps topic keywords to curated source pages for that topic.
var topicURLs = map[string][]string{
	"wright": {
		"https://kids.nationalgeographic.com/history/article/wright-brothers",
		"https://en.wikipedia.org/wiki/Wright_Flyer",
		"https://airandspace.si.edu/collection-objects/1903-wright-flyer/nasm_A19610048000",
		"https://en.wikipedia.org/wiki/Wright_brothers",
		"https://spacecenter.org/a-look-back-at-the-wright-brothers-first-flight/",
	},
	"education": {
		"https://udithadevapriya.medium.com/a-history-of-education-in-sri-lanka-bf2d6de2882c",
		"https://en.wikipedia.org/wiki/Education_in_Sri_Lanka",
		"https://thuppahis.com/2018/05/16/the-earliest-missionary-english-schools-challenging-shirley-somanader/",
		"https://quizgecko.com/learn/christian-missionary-organizations-in-sri-lanka-bki3tu",
	},
	"mahaweli": {
		"https://en.wikipedia.org/wiki/Mahaweli_Development_programme",
		"https://www.cmg.lk/largest-irrigation-project",
		"https://mahaweli.gov.lk/Corporate%20Plan%202019%20-%202023.pdf",
	},
	"antoinette": {
		"https://www.britannica.com/story/did-marie-antoinette-really-say-let-them-eat-cake",
		"https://www.instagram.com/mottahedehchina/p/Cx07O8XMR8U/?hl=en",
		"https://www.reddit.com/r/HistoryMemes/comments/rqgcjs/let_them_eat_cake_is_the_most_famous_quote/",
		"https://www.history.com/news/did-marie-antoinette-really-say-let-them-eat-cake",
	},
	"hitler": {
		"https://encyclopedia.ushmm.org/content/en/article/adolf-hitler-early-years-1889-1921",
		"https://en.wikipedia.org/wiki/Adolf_Hitler",
		"https://www.history.com/articles/adolf-hitler",
		"https://www.bbc.co.uk/teach/articles/zbrx8xs",
	},
}

// topicAliases fold related query terms onto a topic key.
var topicAliases = map[string]string{
	"flyer":      "wright",
	"aviation":   "wright",
	"school":     "education",
	"missionary": "education",
	"irrigation": "mahaweli",
	"marie":      "antoinette",
	"cake":       "antoinette",
	"nazi":       "hitler",
}

// generalReference pages are appended as a fallback for any historical query.
var generalReference = []string{
	"https://en.wikipedia.org/wiki/Industrial_Revolution",
	"https://www.britannica.com/event/Industrial-Revolution",
}

type Augmentor struct {
	scraper *Scraper
	maxURLs int
	logger  *logging.Logger
}

func NewAugmentor(scraper *Scraper) *Augmentor {
	return &Augmentor{
		scraper: scraper,
		maxURLs: config.ScrapeMaxURLs,
		logger:  logging.NewLogger("web_augmentor"),
	}
}

// FindRelevantURLs selects at most maxURLs pages for the query. Topic-matched
// pages come first, then any page mentioning a query term, then general
// reference pages as a fallback.
func (a *Augmentor) FindRelevantURLs(query string) []string {
	terms := queryTerms(query)
	seen := make(map[string]bool)
	var urls []string

	add := func(u string) {
		if !seen[u] && len(urls) < a.maxURLs {
			seen[u] = true
			urls = append(urls, u)
		}
	}

	for _, term := range terms {
		topic := term
		if alias, ok := topicAliases[term]; ok {
			topic = alias
		}
		pages, ok := topicURLs[topic]
		if !ok {
			continue
		}
		// pages naming the topic in their domain or path are the most specific
		for _, u := range pages {
			if strings.Contains(strings.ToLower(u), topic) {
				add(u)
			}
		}
		for _, u := range pages {
			add(u)
		}
	}

	for _, pages := range topicURLs {
		for _, u := range pages {
			for _, term := range terms {
				if strings.Contains(strings.ToLower(u), term) {
					add(u)
				}
			}
		}
	}

	for _, u := range generalReference {
		add(u)
	}
	return urls
}

// Augment scrapes the selected pages and joins the usable results. Error
// markers are dropped so a single failed page never pollutes the prompt.
func (a *Augmentor) Augment(ctx context.Context, query string) string {
	urls := a.FindRelevantURLs(query)
	var parts []string
	for _, u := range urls {
		text := a.scraper.Scrape(ctx, u, query)
		if IsErrorMarker(text) {
			a.logger.Debug("skipping unusable page", "url", u)
			continue
		}
		parts = append(parts, "Source: "+u+"\n"+text)
	}
	return strings.Join(parts, "\n\n")
}

func queryTerms(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	var terms []string
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!?'\"()")
		if len(f) > 2 {
			terms = append(terms, f)
		}
	}
	return terms
}
