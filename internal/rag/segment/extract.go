package segment

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
	"github.com/ravidu/futureminds/internal/domain/chunkModel"
	"github.com/ravidu/futureminds/pkg/logging"
)

// ErrExtraction marks a source document that could not be opened or parsed at
// all. A single page without extractable text is not an extraction error.
var ErrExtraction = errors.New("document extraction failed")

var logger = logging.NewLogger("segment")

// Page is one page of raw extracted text, before cleaning or chunking.
type Page struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

func DocTypeOf(path string) chunkModel.DocType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return chunkModel.PDF
	case ".docx", ".txt", ".rtf", ".odt":
		return chunkModel.DOC
	default:
		return chunkModel.ERR
	}
}

// ExtractPages reads the source document and returns its pages in order.
// Pages that yield no text are skipped with a warning.
func ExtractPages(path string) ([]Page, error) {
	switch DocTypeOf(path) {
	case chunkModel.PDF:
		return extractPDF(path)
	case chunkModel.DOC:
		return extractFlat(path)
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q", ErrExtraction, filepath.Ext(path))
	}
}

func extractPDF(path string) ([]Page, error) {
	f, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrExtraction, path, err)
	}

	var pages []Page
	numPages := f.NumPage()
	logger.Debug("extractPDF", "path", path, "pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			logger.Warn("page has no content", "page", i)
			continue
		}

		text, err := protectExtract(page)
		if err != nil {
			logger.Warn("skipping unparsable page", "page", i, "error", err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			logger.Warn("page has no extractable text", "page", i)
			continue
		}

		pages = append(pages, Page{Number: i, Text: text})
	}
	return pages, nil
}

// extractFlat handles the formats lu4p/cat can read. They carry no page
// structure, so the whole body counts as page 1.
func extractFlat(path string) ([]Page, error) {
	text, err := cat.File(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrExtraction, path, err)
	}
	return []Page{{Number: 1, Text: text}}, nil
}

// protectExtract guards against pdf pages whose content streams hang the
// parser. The page is abandoned after ten seconds.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		text string
		err  error
	}
	resChan := make(chan result, 1)

	go func() {
		text, err := page.GetPlainText(nil)
		resChan <- result{text, err}
	}()
	select {
	case r := <-resChan:
		return r.text, r.err
	case <-time.After(10 * time.Second):
		return "", errors.New("page extraction timeout")
	}
}
