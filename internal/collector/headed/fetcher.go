package headed

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"jobharvest/internal/config"
	"jobharvest/internal/logging"
	"jobharvest/internal/logging/types"
)

// Fetcher implements collector.Fetcher on top of a BrowserSession. A rate
// limiter enforces the polite delay between consecutive fetches so the
// target site is never hammered, detail pages included.
type Fetcher struct {
	session    *BrowserSession
	limiter    *rate.Limiter
	pageWait   time.Duration
	navTimeout time.Duration
	logger     types.Logger
}

// NewFetcher acquires a browser session. The returned fetcher must be
// closed by the caller on every exit path.
func NewFetcher(cfg *config.Config) (*Fetcher, error) {
	session, err := NewBrowserSession(cfg)
	if err != nil {
		return nil, err
	}

	delay := cfg.Crawler.PoliteDelay
	if delay <= 0 {
		delay = time.Second
	}

	return &Fetcher{
		session:    session,
		limiter:    rate.NewLimiter(rate.Every(delay), 1),
		pageWait:   cfg.Crawler.PageWait,
		navTimeout: cfg.Scraper.RequestTimeout,
		logger:     logging.GetGlobalLogger(),
	}, nil
}

// Fetch navigates to pageURL and returns the parsed document. The wait for
// waitSelector is best effort: a selector that never shows up still yields
// whatever the page rendered, and the extractors decide what that means.
func (f *Fetcher) Fetch(ctx context.Context, pageURL, waitSelector string) (*goquery.Document, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	if err := f.session.Navigate(ctx, pageURL, f.navTimeout); err != nil {
		return nil, err
	}

	if waitSelector != "" {
		if err := f.session.WaitForSelector(waitSelector, f.pageWait); err != nil {
			f.logger.Debug("Wait selector not found, continuing with rendered page", map[string]interface{}{
				"url":      pageURL,
				"selector": waitSelector,
			})
		}
	}

	html, err := f.session.HTML()
	if err != nil {
		return nil, err
	}

	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// Close releases the browser session.
func (f *Fetcher) Close() {
	f.session.Close()
}
