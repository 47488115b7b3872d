package api

import (
	"linkwriter/internal/imagesearch"
	"linkwriter/internal/llm"
	"linkwriter/internal/scrape"
)

// Deps carries the constructed pipeline components into the handlers, so tests
// can wire httptest-backed fakes.
type Deps struct {
	Fetcher *scrape.Fetcher
	LLM     *llm.Client
	Images  *imagesearch.Client
}

// GenerateRequest is the POST /generate body. MaxWords is a pointer so an
// absent field gets the default instead of being clamped up from zero.
type GenerateRequest struct {
	URLs         []string `json:"urls"`
	LinksText    string   `json:"links_text"`
	Model        string   `json:"model"`
	Instructions string   `json:"instructions"`
	MaxWords     *int     `json:"max_words"`
	SourceLabels []string `json:"source_labels"`
}

// GenerateResponse is the assembled article plus everything needed for
// caller-side transparency: per-source data, image results and the exact
// prompt sent to the model.
type GenerateResponse struct {
	ID              string               `json:"id"`
	Markdown        string               `json:"markdown"`
	HTML            string               `json:"html"`
	Images          []imagesearch.Result `json:"images"`
	SourceTitles    []string             `json:"source_titles"`
	SourceURLs      []string             `json:"source_urls"`
	SourceImages    [][]string           `json:"source_images"`
	SourceSummaries []string             `json:"source_summaries"`
	SummaryOrigins  []string             `json:"summary_origins"`
	Model           string               `json:"model"`
	PromptPreview   string               `json:"prompt_preview"`
}
