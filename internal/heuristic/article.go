package heuristic

import (
	"fmt"
	"regexp"
	"strings"
)

const defaultPoint = "The source provides context but needs deeper synthesis for meaningful takeaways."

// DerivePoints finds sentence-ish windows around the top keywords to use as
// highlight bullets. Returns a single canned point when nothing matches.
func DerivePoints(text string, keywords []string) []string {
	points := []string{}
	limit := 4
	if len(keywords) < limit {
		limit = len(keywords)
	}
	for _, kw := range keywords[:limit] {
		re, err := regexp.Compile(`(?i)([^.?!]{0,120}` + regexp.QuoteMeta(kw) + `[^.?!]{0,120})`)
		if err != nil {
			continue
		}
		if m := re.FindStringSubmatch(text); m != nil {
			points = append(points, strings.TrimSpace(m[1]))
		}
	}
	if len(points) == 0 {
		points = append(points, defaultPoint)
	}
	return points
}

// Paragraph blends a truncated summary with the keyword list and tone label.
func Paragraph(text string, keywords []string, tone string) string {
	base := Summarize(text, 180)
	keywordLine := "the core themes"
	if len(keywords) > 0 {
		keywordLine = strings.Join(keywords, ", ")
	}
	return fmt.Sprintf("%s This read centers on %s, framed in a %s voice to stay approachable.", base, keywordLine, tone)
}

// SynthesizeArticle renders the deterministic fallback article used whenever
// the model backend is unavailable. Output is always well-formed Markdown with
// the full section set for any non-empty source text.
func SynthesizeArticle(model, title, sourceText string) string {
	keywords := Keywords(sourceText, 7)
	summary := Summarize(sourceText, 140)

	tone := "conversational and bold"
	perspective := "tech editor"
	if strings.Contains(model, "gemma") {
		tone = "strategic and concise"
		perspective = "product strategist"
	}

	points := DerivePoints(sourceText, keywords)
	bullets := make([]string, 0, len(points))
	for _, p := range points {
		bullets = append(bullets, "- "+p)
	}

	readingTime := len(strings.Fields(sourceText)) / 180
	if readingTime < 2 {
		readingTime = 2
	}

	topKeywords := "n/a"
	if len(keywords) > 0 {
		n := 3
		if len(keywords) < n {
			n = len(keywords)
		}
		topKeywords = strings.Join(keywords[:n], ", ")
	}

	analysisKeywords := keywords
	if len(analysisKeywords) > 3 {
		analysisKeywords = analysisKeywords[:3]
	}

	return fmt.Sprintf(`# %s

*Model: %s · Tone: %s · Est. read time: %d min*

## TL;DR
%s

## Highlights
%s

## Analysis
With the lens of a %s, here's the gist of the source:

%s

## What to watch
- Emerging themes: %s
- Open questions: Where does this narrative go next? Who is most impacted?
- Suggested follow-up: Validate the claims from the source with an additional independent reference.

## Footer
Draft generated offline from the linked sources. Point the service at a running model backend to upgrade depth and style.
`,
		title, model, tone, readingTime, summary, strings.Join(bullets, "\n"),
		perspective, Paragraph(sourceText, analysisKeywords, tone), topKeywords)
}
