package scrape

import "fmt"

// FetchError reports a network or HTTP failure for a single source page. The
// batch fetcher converts it into an empty placeholder, never a request failure.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("unable to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ContentError means the combined extracted text was below the minimum word
// threshold. It is the only failure the pipeline surfaces to the caller.
type ContentError struct {
	Words int
}

func (e *ContentError) Error() string {
	return fmt.Sprintf("source pages did not contain enough readable text (%d words, need at least %d)", e.Words, MinWords)
}
