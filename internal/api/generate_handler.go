package api

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"mvdan.cc/xurls/v2"

	"linkwriter/internal/llm"
	"linkwriter/internal/scrape"
)

const (
	defaultMaxWords = 2000
	minMaxWords     = 200
	maxMaxWords     = 4000
)

var linkFinder = xurls.Strict()

// POST /generate
func GenerateHandler(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request body"}})
			return
		}

		urls := mergeURLs(req.URLs, req.LinksText)
		if len(urls) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "At least one URL is required."}})
			return
		}
		for _, u := range urls {
			if !validHTTPURL(u) {
				c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": fmt.Sprintf("Invalid URL: %s", u)}})
				return
			}
		}

		model := strings.TrimSpace(req.Model)
		if model == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Model is required."}})
			return
		}

		maxWords := clampMaxWords(req.MaxWords)
		ctx := c.Request.Context()

		docs, err := deps.Fetcher.FetchAll(ctx, urls)
		if err != nil {
			var ce *scrape.ContentError
			if errors.As(err, &ce) {
				c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Source pages did not contain enough readable text."}})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Failed to fetch sources."}})
			return
		}

		titles := make([]string, len(docs))
		sourceURLs := make([]string, len(docs))
		texts := make([]string, len(docs))
		sourceImages := make([][]string, len(docs))
		for i, d := range docs {
			title := ""
			if i < len(req.SourceLabels) {
				title = strings.TrimSpace(req.SourceLabels[i])
			}
			if title == "" {
				title = d.Title
			}
			if title == "" {
				title = scrape.FallbackTitle(d.FinalURL)
			}
			titles[i] = title
			sourceURLs[i] = d.FinalURL
			texts[i] = d.Text
			sourceImages[i] = d.Images
		}

		mainTitle := titles[0]
		combined := scrape.CombinedText(docs)

		outcomes := deps.LLM.SummarizeSources(ctx, model, titles, sourceURLs, texts)
		summaries := make([]string, len(outcomes))
		origins := make([]string, len(outcomes))
		for i, o := range outcomes {
			summaries[i] = o.Text
			origins[i] = string(o.Origin)
			if o.Origin == llm.OriginFallback {
				log.Printf("[Generate] source %d used heuristic summary", i+1)
			}
		}

		synth := deps.LLM.Synthesize(ctx, model, mainTitle, combined, req.Instructions,
			titles, sourceURLs, summaries, sourceImages, maxWords)
		if synth.Origin == llm.OriginFallback {
			log.Printf("[Generate] synthesis used heuristic fallback")
		}

		markdown := appendReferences(synth.Markdown, titles, sourceURLs)
		images := deps.Images.Search(ctx, mainTitle, combined)

		c.JSON(http.StatusOK, GenerateResponse{
			ID:              uuid.NewString(),
			Markdown:        markdown,
			HTML:            renderHTML(markdown),
			Images:          images,
			SourceTitles:    titles,
			SourceURLs:      sourceURLs,
			SourceImages:    sourceImages,
			SourceSummaries: summaries,
			SummaryOrigins:  origins,
			Model:           model,
			PromptPreview:   synth.Prompt,
		})
	}
}

// mergeURLs combines the explicit URL list with any URLs found in the
// free-text field, deduplicated in first-seen order.
func mergeURLs(urls []string, linksText string) []string {
	merged := make([]string, 0, len(urls))
	seen := make(map[string]struct{})
	add := func(u string) {
		u = strings.TrimSpace(u)
		if u == "" {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		merged = append(merged, u)
	}
	for _, u := range urls {
		add(u)
	}
	for _, u := range linkFinder.FindAllString(linksText, -1) {
		add(u)
	}
	return merged
}

func validHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func clampMaxWords(v *int) int {
	if v == nil {
		return defaultMaxWords
	}
	if *v < minMaxWords {
		return minMaxWords
	}
	if *v > maxMaxWords {
		return maxMaxWords
	}
	return *v
}

// appendReferences adds the trailing references section, one entry per source.
func appendReferences(markdown string, titles, urls []string) string {
	lines := []string{"## References"}
	for i, u := range urls {
		label := titles[i]
		if label == "" {
			label = u
		}
		lines = append(lines, fmt.Sprintf("- [%s](%s)", label, u))
	}
	return strings.TrimRight(markdown, " \t\n") + "\n\n" + strings.Join(lines, "\n") + "\n"
}

// renderHTML converts the article Markdown for clients that want it ready-made.
func renderHTML(markdown string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		log.Printf("[Generate] markdown render failed: %v", err)
		return ""
	}
	return buf.String()
}
