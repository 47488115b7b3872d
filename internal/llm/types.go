package llm

import "fmt"

// Origin records whether a piece of generated text came from the model backend
// or from the deterministic local fallback.
type Origin string

const (
	OriginBackend  Origin = "backend"
	OriginFallback Origin = "fallback"
)

// SummaryOutcome is the per-source summarization result. Text is non-empty for
// any source with non-empty extracted text.
type SummaryOutcome struct {
	Index  int
	Text   string
	Origin Origin
}

// SynthesisOutcome is the combined-article result. Prompt always holds the
// exact prompt text sent to (or prepared for) the backend.
type SynthesisOutcome struct {
	Markdown string
	Prompt   string
	Origin   Origin
}

// BackendError reports an unreachable backend, a non-success status or a
// malformed response body. Callers absorb it into a fallback, never surface it.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("model backend %s failed: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response *string `json:"response"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}
