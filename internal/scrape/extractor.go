package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

const (
	fetchTimeout = 10 * time.Second
	maxBodyBytes = 5 * 1024 * 1024
	maxImages    = 12
	minImageSize = 150

	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// blockedImageTerms mark chrome/decoration images that never belong in an article.
var blockedImageTerms = []string{"icon", "logo", "avatar", "button", "share", "social", "tracker", "pixel"}

var whitespaceRe = regexp.MustCompile(`\s+`)
var tagRe = regexp.MustCompile(`<[^>]+>`)

// SourceDocument is the extraction result for one requested URL. It is
// immutable after extraction and discarded once the response is assembled.
type SourceDocument struct {
	RequestedURL string
	FinalURL     string
	Title        string
	Text         string
	Images       []string
}

// Extractor fetches pages and pulls out readable text, titles, canonical URLs
// and candidate content images. Only the network layer can fail; malformed
// HTML degrades to empty fields.
type Extractor struct {
	httpClient *http.Client
	userAgent  string
}

// NewExtractor creates an extractor with a bounded fetch timeout and redirect cap.
func NewExtractor() *Extractor {
	return &Extractor{
		httpClient: &http.Client{
			Timeout: fetchTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		userAgent: defaultUserAgent,
	}
}

// Extract fetches pageURL and returns its readable text, title, candidate
// images and canonical URL. Network/HTTP failures return a *FetchError.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (*SourceDocument, error) {
	html, err := e.fetchHTML(ctx, pageURL)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// Unparseable markup: strip tags and keep whatever text is left.
		return &SourceDocument{
			RequestedURL: pageURL,
			FinalURL:     pageURL,
			Text:         collapseWhitespace(tagRe.ReplaceAllString(html, " ")),
			Images:       []string{},
		}, nil
	}

	base, baseErr := url.Parse(pageURL)

	title := strings.TrimSpace(doc.Find("title").First().Text())
	finalURL := canonicalURL(doc, pageURL)

	images := []string{}
	if baseErr == nil {
		images = extractImages(doc, base)
	}

	text := ""
	if baseErr == nil {
		text = e.readableText(html, base)
	}
	if len(strings.Fields(text)) < MinWords {
		if fallback := fullPageText(doc); len(strings.Fields(fallback)) > len(strings.Fields(text)) {
			text = fallback
		}
	}

	return &SourceDocument{
		RequestedURL: pageURL,
		FinalURL:     finalURL,
		Title:        title,
		Text:         text,
		Images:       images,
	}, nil
}

// fetchHTML retrieves page content with browser-like headers and a size cap.
func (e *Extractor) fetchHTML(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-GB,en;q=0.9")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	return string(body), nil
}

// readableText prefers readability's main-content extraction.
func (e *Extractor) readableText(html string, base *url.URL) string {
	article, err := readability.FromReader(strings.NewReader(html), base)
	if err != nil {
		return ""
	}
	return collapseWhitespace(article.TextContent)
}

// fullPageText is the whole-document fallback: drop script/style/noscript and
// collapse whatever text remains.
func fullPageText(doc *goquery.Document) string {
	doc.Find("script, style, noscript").Remove()
	return collapseWhitespace(doc.Text())
}

// canonicalURL returns the page-declared canonical link when it is an absolute
// http/https URL, otherwise the request URL.
func canonicalURL(doc *goquery.Document, pageURL string) string {
	href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href")
	if !ok {
		return pageURL
	}
	href = strings.TrimSpace(href)
	u, err := url.Parse(href)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return pageURL
	}
	return href
}

// extractImages collects up to maxImages content-image candidates in document
// order, rejecting data URIs, declared-small images and anything whose
// src/alt/class mentions a blocked term.
func extractImages(doc *goquery.Document, base *url.URL) []string {
	urls := []string{}
	doc.Find("img").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src, _ := s.Attr("src")
		if src == "" || strings.HasPrefix(src, "data:") {
			return true
		}
		if declaredTooSmall(s, "width") || declaredTooSmall(s, "height") {
			return true
		}

		alt, _ := s.Attr("alt")
		class, _ := s.Attr("class")
		combined := strings.ToLower(src + " " + alt + " " + class)
		for _, term := range blockedImageTerms {
			if strings.Contains(combined, term) {
				return true
			}
		}

		ref, err := url.Parse(src)
		if err != nil {
			return true
		}
		full := base.ResolveReference(ref)
		if full.Scheme == "http" || full.Scheme == "https" {
			urls = append(urls, full.String())
		}
		return len(urls) < maxImages
	})
	return urls
}

func declaredTooSmall(s *goquery.Selection, attr string) bool {
	raw, ok := s.Attr(attr)
	if !ok || raw == "" {
		return false
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	return err == nil && n < minImageSize
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
