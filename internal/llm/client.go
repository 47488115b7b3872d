package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const (
	synthesisTimeout = 30 * time.Second
	summaryTimeout   = 25 * time.Second
	listTimeout      = 5 * time.Second
)

// DefaultModels is served when the backend's tag listing is unavailable.
var DefaultModels = []string{"llama", "gemma"}

// Client talks to an Ollama-style backend: POST /api/generate with
// {model, prompt, stream:false}, GET /api/tags for the model list.
type Client struct {
	baseURL   string
	synthHTTP *http.Client
	sumHTTP   *http.Client
	listHTTP  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:   baseURL,
		synthHTTP: &http.Client{Timeout: synthesisTimeout},
		sumHTTP:   &http.Client{Timeout: summaryTimeout},
		listHTTP:  &http.Client{Timeout: listTimeout},
	}
}

// Generate runs a single non-streaming completion with the synthesis timeout.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	return c.generate(ctx, c.synthHTTP, model, prompt)
}

func (c *Client) generate(ctx context.Context, hc *http.Client, model, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{Model: model, Prompt: prompt, Stream: false})
	if err != nil {
		return "", &BackendError{Op: "generate", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", &BackendError{Op: "generate", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return "", &BackendError{Op: "generate", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &BackendError{Op: "generate", Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &BackendError{Op: "generate", Err: err}
	}

	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", &BackendError{Op: "generate", Err: err}
	}
	if out.Response == nil {
		return "", &BackendError{Op: "generate", Err: errors.New("response field missing")}
	}
	return *out.Response, nil
}

// ListModels returns the backend's available model names, or DefaultModels
// when the listing fails or comes back empty.
func (c *Client) ListModels(ctx context.Context) []string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return DefaultModels
	}

	resp, err := c.listHTTP.Do(req)
	if err != nil {
		log.Printf("[LLM] model listing unavailable: %v", err)
		return DefaultModels
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[LLM] model listing returned HTTP %d", resp.StatusCode)
		return DefaultModels
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		log.Printf("[LLM] model listing malformed: %v", err)
		return DefaultModels
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		if m.Name != "" {
			names = append(names, m.Name)
		}
	}
	if len(names) == 0 {
		return DefaultModels
	}
	return names
}
