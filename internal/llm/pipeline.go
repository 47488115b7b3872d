package llm

import (
	"context"
	"log"
	"sync"

	"linkwriter/internal/heuristic"
)

// summaryTargetWords is the heuristic fallback's truncation target.
const summaryTargetWords = 120

// SummarizeSources summarizes every source concurrently. A backend failure on
// one source never touches its siblings; the failed source gets a heuristic
// truncation summary and a fallback origin instead.
func (c *Client) SummarizeSources(ctx context.Context, model string, titles, urls, texts []string) []SummaryOutcome {
	outcomes := make([]SummaryOutcome, len(texts))

	var wg sync.WaitGroup
	for i := range texts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			title := titles[i]
			if title == "" {
				title = "Untitled"
			}
			prompt := BuildSourcePrompt(title, urls[i], texts[i])
			text, err := c.generate(ctx, c.sumHTTP, model, prompt)
			if err != nil {
				log.Printf("[LLM] source %d summary fell back: %v", i+1, err)
				outcomes[i] = SummaryOutcome{Index: i, Origin: OriginFallback}
				return
			}
			outcomes[i] = SummaryOutcome{Index: i, Text: text, Origin: OriginBackend}
		}(i)
	}
	wg.Wait()

	// The backend may answer with empty text; the contract promises a
	// non-empty summary for every source that had text.
	for i := range outcomes {
		if outcomes[i].Text == "" {
			outcomes[i] = SummaryOutcome{
				Index:  i,
				Text:   heuristic.Summarize(texts[i], summaryTargetWords),
				Origin: OriginFallback,
			}
		}
	}
	return outcomes
}

// Synthesize builds the combined-article prompt and runs the single synthesis
// call. Any backend failure degrades to the deterministic fallback article.
// The exact prompt is always returned for caller-side transparency.
func (c *Client) Synthesize(ctx context.Context, model, mainTitle, combinedText, instructions string,
	titles, urls, summaries []string, images [][]string, maxWords int) SynthesisOutcome {

	prompt := BuildSynthesisPrompt(instructions, titles, urls, summaries, images, maxWords)

	text, err := c.generate(ctx, c.synthHTTP, model, prompt)
	if err != nil || text == "" {
		if err != nil {
			log.Printf("[LLM] synthesis fell back: %v", err)
		}
		return SynthesisOutcome{
			Markdown: heuristic.SynthesizeArticle(model, mainTitle, combinedText),
			Prompt:   prompt,
			Origin:   OriginFallback,
		}
	}
	return SynthesisOutcome{Markdown: text, Prompt: prompt, Origin: OriginBackend}
}
