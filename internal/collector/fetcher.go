package collector

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher retrieves and parses one page at a time. Implementations own the
// underlying browser session; Close must be safe to call on every exit
// path. A non-nil error from Fetch is a page-level outcome the pagination
// loop consumes (treated as an empty page), never a reason to abort a
// crawl.
type Fetcher interface {
	// Fetch navigates to pageURL, optionally waits for waitSelector to
	// appear (best effort), and returns the parsed document.
	Fetch(ctx context.Context, pageURL, waitSelector string) (*goquery.Document, error)

	// Close releases the underlying session.
	Close()
}
