package api

import (
	"strings"
	"testing"
)

func TestMergeURLs_DeduplicatesAndKeepsOrder(t *testing.T) {
	got := mergeURLs(
		[]string{"https://a.com/1", "https://b.com/2", "https://a.com/1"},
		"see https://b.com/2 and https://c.com/3",
	)
	want := []string{"https://a.com/1", "https://b.com/2", "https://c.com/3"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("url %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestClampMaxWords(t *testing.T) {
	neg, huge, ok := -10, 1<<30, 900
	if got := clampMaxWords(nil); got != defaultMaxWords {
		t.Errorf("nil should default to %d, got %d", defaultMaxWords, got)
	}
	if got := clampMaxWords(&neg); got != minMaxWords {
		t.Errorf("negative should clamp to %d, got %d", minMaxWords, got)
	}
	if got := clampMaxWords(&huge); got != maxMaxWords {
		t.Errorf("huge should clamp to %d, got %d", maxMaxWords, got)
	}
	if got := clampMaxWords(&ok); got != 900 {
		t.Errorf("in-range value should pass through, got %d", got)
	}
}

func TestAppendReferences_EmptyTitleUsesURL(t *testing.T) {
	md := appendReferences("body\n", []string{""}, []string{"https://x.com/p"})
	if !strings.Contains(md, "- [https://x.com/p](https://x.com/p)") {
		t.Errorf("empty title should fall back to the URL:\n%s", md)
	}
	if !strings.HasSuffix(md, "\n") {
		t.Error("references block should end with a newline")
	}
}
