package llm

import (
	"fmt"
	"strings"
)

// DefaultOrder is used when the caller gives no instructions.
const DefaultOrder = "Blend insights from every source, balance strengths and gaps, keep it concise and publish-ready."

// sourcePromptWordBudget bounds how much source text goes into one summary prompt.
const sourcePromptWordBudget = 800

// BuildSourcePrompt builds the per-source summarization prompt, truncating the
// source text to the word budget.
func BuildSourcePrompt(title, url, text string) string {
	words := strings.Fields(text)
	if len(words) > sourcePromptWordBudget {
		words = words[:sourcePromptWordBudget]
	}
	return fmt.Sprintf(`Summarize the following source in 80-120 words. Keep it factual and concise.
Title: %s
URL: %s
Text:
%s
`, title, url, strings.Join(words, " "))
}

// BuildSynthesisPrompt builds the single combined-article prompt from the
// user's instructions, the per-source summaries and any available images.
func BuildSynthesisPrompt(instructions string, titles, urls, summaries []string, images [][]string, maxWords int) string {
	userOrder := strings.TrimSpace(instructions)
	if userOrder == "" {
		userOrder = DefaultOrder
	}

	summaryLines := make([]string, 0, len(summaries))
	for i, s := range summaries {
		title := titles[i]
		if title == "" {
			title = "Untitled"
		}
		summaryLines = append(summaryLines, fmt.Sprintf("- %s (%s) :: %s", title, urls[i], s))
	}

	// Enumerate every candidate image with its source so the model can match
	// images to section context.
	imageLines := []string{}
	imgIdx := 1
	for i, srcImages := range images {
		srcTitle := titles[i]
		if srcTitle == "" {
			srcTitle = fmt.Sprintf("Source %d", i+1)
		}
		for _, imgURL := range srcImages {
			imageLines = append(imageLines, fmt.Sprintf("[%d] %s (from %s)", imgIdx, imgURL, srcTitle))
			imgIdx++
		}
	}

	imageInstruction := ""
	if len(imageLines) > 0 {
		imageInstruction = "\nAvailable Images (you MUST use at least 2 relevant images if they fit the context):\n" +
			strings.Join(imageLines, "\n") +
			"\n\nInstruction for images: Insert images using Markdown syntax `![Alt Text](URL)`. " +
			"Only use URLs from the list above. Choose images that match the section context."
	}

	return fmt.Sprintf(`
You are an expert blog editor. Write a Markdown article that is clean and ready to paste into a CMS.
Follow the user's order exactly.

User order: %s
Per-source summaries:
%s
%s

Requirements:
- Include sections: # Title, ## TL;DR, ## Highlights (bullets), ## Analysis, ## What to watch.
- Keep tone confident and concise.
- Keep length under %d words unless the order says otherwise.
- Do not hallucinate facts beyond the source summary.
- Use every per-source summary above—do not focus only on the first link. If sources conflict, call it out.
- Embed relevant images from the "Available Images" list directly into the markdown flow.
`, userOrder, strings.Join(summaryLines, "\n"), imageInstruction, maxWords)
}
