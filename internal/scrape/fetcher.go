package scrape

import (
	"context"
	"log"
	"regexp"
	"strings"
	"sync"
)

// MinWords is the combined word floor below which a request cannot proceed.
const MinWords = 25

var schemeRe = regexp.MustCompile(`(?i)^https?://(www\.)?`)

// Fetcher fans extraction out across all requested URLs.
type Fetcher struct {
	extractor *Extractor
}

func NewFetcher(extractor *Extractor) *Fetcher {
	return &Fetcher{extractor: extractor}
}

// FetchAll extracts every URL concurrently. Results keep input order; a failed
// URL becomes an empty placeholder so one bad link never aborts the batch.
// Returns *ContentError when the combined text is under MinWords.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) ([]SourceDocument, error) {
	docs := make([]SourceDocument, len(urls))

	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			doc, err := f.extractor.Extract(ctx, u)
			if err != nil {
				log.Printf("[Fetch] %s: %v", u, err)
				docs[i] = SourceDocument{RequestedURL: u, FinalURL: u, Images: []string{}}
				return
			}
			docs[i] = *doc
		}(i, u)
	}
	wg.Wait()

	combined := CombinedText(docs)
	if words := len(strings.Fields(combined)); words < MinWords {
		return nil, &ContentError{Words: words}
	}
	return docs, nil
}

// CombinedText joins all non-empty source texts with blank lines.
func CombinedText(docs []SourceDocument) string {
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		if d.Text != "" {
			parts = append(parts, d.Text)
		}
	}
	return strings.Join(parts, "\n\n")
}

// FallbackTitle builds a display title from a URL's host when the page has no
// title and the caller supplied no label.
func FallbackTitle(u string) string {
	cleaned := schemeRe.ReplaceAllString(u, "")
	if idx := strings.Index(cleaned, "/"); idx >= 0 {
		cleaned = cleaned[:idx]
	}
	return "Highlights from " + cleaned
}
