package llm

import (
	"strings"
	"testing"
)

func TestBuildSourcePrompt_TruncatesToBudget(t *testing.T) {
	long := strings.Repeat("word ", 2000)
	prompt := BuildSourcePrompt("Title", "https://example.com", long)
	if n := strings.Count(prompt, "word"); n != sourcePromptWordBudget {
		t.Errorf("expected %d source words in prompt, got %d", sourcePromptWordBudget, n)
	}
	if !strings.Contains(prompt, "80-120 words") {
		t.Error("prompt should ask for an 80-120 word summary")
	}
}

func TestBuildSynthesisPrompt_DefaultOrder(t *testing.T) {
	prompt := BuildSynthesisPrompt("", []string{"A"}, []string{"https://a"}, []string{"sum"}, nil, 2000)
	if !strings.Contains(prompt, DefaultOrder) {
		t.Error("empty instructions should use the default order")
	}
	if !strings.Contains(prompt, "- A (https://a) :: sum") {
		t.Errorf("missing per-source summary block:\n%s", prompt)
	}
	if strings.Contains(prompt, "Available Images") {
		t.Error("image block should be absent when no images were found")
	}
	if !strings.Contains(prompt, "under 2000 words") {
		t.Error("prompt should carry the word budget")
	}
}

func TestBuildSynthesisPrompt_ImageBlock(t *testing.T) {
	images := [][]string{
		{"https://a/1.jpg", "https://a/2.jpg"},
		{"https://b/3.jpg"},
	}
	prompt := BuildSynthesisPrompt("custom order", []string{"Alpha", ""},
		[]string{"https://a", "https://b"}, []string{"s1", "s2"}, images, 500)

	if !strings.Contains(prompt, "custom order") {
		t.Error("instructions should override the default order")
	}
	if !strings.Contains(prompt, "at least 2 relevant images") {
		t.Error("image block should instruct embedding at least two images")
	}
	for _, line := range []string{
		"[1] https://a/1.jpg (from Alpha)",
		"[2] https://a/2.jpg (from Alpha)",
		"[3] https://b/3.jpg (from Source 2)",
	} {
		if !strings.Contains(prompt, line) {
			t.Errorf("missing image line %q", line)
		}
	}
}
