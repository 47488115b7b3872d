package imagesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	defaultBaseURL   = "https://duckduckgo.com"
	searchTimeout    = 10 * time.Second
	maxResults       = 6
	maxFallbackLinks = 4
)

// placeholderSVG is the inline thumbnail returned when outbound search is off.
const placeholderSVG = "data:image/svg+xml;utf8," +
	"<svg xmlns='http://www.w3.org/2000/svg' width='320' height='200' viewBox='0 0 320 200'>" +
	"<rect width='320' height='200' fill='%23111a2f'/>" +
	"<text x='50%' y='50%' fill='%23bcd9ff' font-size='14' font-family='sans-serif' text-anchor='middle'>" +
	"Image search disabled (no outbound)</text></svg>"

var (
	tokenRe     = regexp.MustCompile(`vqd=['"]?([^&"']+)`)
	queryWordRe = regexp.MustCompile(`[a-z]{4,}`)
)

// Result is one illustrative image candidate. Thumbnail may be a URL or an
// inline data URL; Link may be empty for the disabled placeholder.
type Result struct {
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Link      string `json:"link"`
}

// Client queries the image-search backend through its two-step handshake:
// a page fetch to extract the session token, then a JSON results query.
// When disabled it never makes a network call.
type Client struct {
	enabled    bool
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an image search client. An empty baseURL selects the
// default backend; tests inject their own.
func NewClient(enabled bool, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		enabled:    enabled,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: searchTimeout},
	}
}

// Search returns illustrative images for the article. It never fails: disabled
// search yields a single placeholder, and any backend problem or empty result
// set degrades to plain search links for the top keywords.
func (c *Client) Search(ctx context.Context, title, text string) []Result {
	if !c.enabled {
		return []Result{{
			Title:     "Image search disabled (set ENABLE_IMAGE_SEARCH=true to enable)",
			Thumbnail: placeholderSVG,
		}}
	}

	words := queryWordRe.FindAllString(strings.ToLower(text), -1)
	queryWords := words
	if len(queryWords) > 3 {
		queryWords = queryWords[:3]
	}
	if len(queryWords) == 0 {
		queryWords = []string{title}
	}
	query := strings.TrimSpace(title + " " + strings.Join(queryWords, " "))

	if results := c.remoteSearch(ctx, query); len(results) > 0 {
		return results
	}

	linkWords := words
	if len(linkWords) > maxFallbackLinks {
		linkWords = linkWords[:maxFallbackLinks]
	}
	if len(linkWords) == 0 {
		linkWords = []string{title}
	}
	fallbacks := make([]Result, 0, len(linkWords))
	for _, kw := range linkWords {
		q := url.QueryEscape(title + " " + kw)
		fallbacks = append(fallbacks, Result{
			Title: "Search: " + kw,
			Link:  c.baseURL + "/?q=" + q + "&iax=images&ia=images",
		})
	}
	return fallbacks
}

// remoteSearch runs the token fetch and the results query. Any failure returns nil.
func (c *Client) remoteSearch(ctx context.Context, query string) []Result {
	token, err := c.fetchToken(ctx, query)
	if err != nil || token == "" {
		log.Printf("[ImageSearch] token fetch failed: %v", err)
		return nil
	}

	params := url.Values{}
	params.Set("l", "us-en")
	params.Set("o", "json")
	params.Set("q", query)
	params.Set("vqd", token)
	params.Set("f", ",,,")
	params.Set("p", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/i.js?"+params.Encode(), nil)
	if err != nil {
		return nil
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[ImageSearch] results query failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[ImageSearch] results query returned HTTP %d", resp.StatusCode)
		return nil
	}

	var payload struct {
		Results []struct {
			Title     string `json:"title"`
			Thumbnail string `json:"thumbnail"`
			Image     string `json:"image"`
			URL       string `json:"url"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("[ImageSearch] malformed results payload: %v", err)
		return nil
	}

	results := make([]Result, 0, maxResults)
	for _, item := range payload.Results {
		if len(results) == maxResults {
			break
		}
		title := item.Title
		if title == "" {
			title = "image"
		}
		thumbnail := item.Thumbnail
		if thumbnail == "" {
			thumbnail = item.Image
		}
		link := item.URL
		if link == "" {
			link = item.Image
		}
		results = append(results, Result{Title: title, Thumbnail: thumbnail, Link: link})
	}
	return results
}

// fetchToken extracts the session token from the backend's search page.
func (c *Client) fetchToken(ctx context.Context, query string) (string, error) {
	pageURL := fmt.Sprintf("%s/?q=%s&t=h_&iax=images&ia=images", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	m := tokenRe.FindSubmatch(body)
	if m == nil {
		return "", fmt.Errorf("no session token in page")
	}
	return string(m[1]), nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("Referer", c.baseURL+"/")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
}
