package heuristic

import "strings"

// Summarize truncates text to targetWords words, appending an ellipsis when
// anything was cut. Text at or under the target is returned with its words
// unchanged, so re-summarizing a summary is a no-op.
func Summarize(text string, targetWords int) string {
	words := strings.Fields(text)
	if len(words) <= targetWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:targetWords], " ") + "…"
}
