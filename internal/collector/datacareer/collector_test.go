package datacareer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobharvest/internal/collector"
	"jobharvest/internal/config"
	"jobharvest/internal/logging"
	"jobharvest/pkg/models"
	"jobharvest/pkg/utils"
)

type fakeFetcher struct {
	pages   map[string]string
	fetched []string
	closed  bool
}

func (f *fakeFetcher) Fetch(_ context.Context, pageURL, _ string) (*goquery.Document, error) {
	f.fetched = append(f.fetched, pageURL)
	html, ok := f.pages[pageURL]
	if !ok {
		html = "<html><body></body></html>"
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func (f *fakeFetcher) Close() { f.closed = true }

func listingPage(ids ...int) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for _, id := range ids {
		fmt.Fprintf(&b, `
  <article class="listing-item listing-item__jobs">
    <div class="listing-item__title"><a class="link" href="https://www.datacareer.ch/job/%d/">Data Role %d</a></div>
    <span class="listing-item__date">2 days ago</span>
    <span class="listing-item__employment-type">Full-time</span>
    <span class="listing-item__info--item-company">Company %d</span>
    <span class="listing-item__info--item-location">Zurich</span>
    <p class="listing-item__desc">Work on data things.</p>
  </article>`, id, id, id)
	}
	b.WriteString("</body></html>")
	return b.String()
}

func newTestCollector(fetcher *fakeFetcher) *Collector {
	c := NewCollector(&config.Config{}, logging.GetGlobalLogger())
	c.newFetcher = func() (collector.Fetcher, error) {
		return fetcher, nil
	}
	return c
}

func TestCollectWalksUntilEmptyPage(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		pageURL(1): listingPage(1, 2),
		pageURL(2): listingPage(3),
		// Page 3 has no cards, so the walk ends there.
	}}

	opts := models.CollectOptions{MaxPagesPerTerm: 10, TotalLimit: 100}
	rows, err := newTestCollector(fetcher).Collect(context.Background(), opts)
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, "https://www.datacareer.ch/job/1/", rows[0].URL)
	assert.Equal(t, "Data Role 1", rows[0].Title)
	assert.Equal(t, "Company 1", rows[0].Company)
	assert.Equal(t, "Zurich", rows[0].LocationRaw)
	assert.Equal(t, "Full-time", rows[0].EmploymentType)
	assert.Equal(t, "2 days ago", rows[0].PostedDate)
	assert.Equal(t, "Work on data things.", rows[0].DescriptionRaw)
	assert.Empty(t, rows[0].SearchTerm)
	assert.NotEmpty(t, rows[0].JobID)

	assert.Equal(t, []string{pageURL(1), pageURL(2), pageURL(3)}, fetcher.fetched)
	assert.True(t, fetcher.closed)
}

func TestCollectRespectsTotalLimit(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		pageURL(1): listingPage(1, 2, 3),
	}}

	opts := models.CollectOptions{MaxPagesPerTerm: 10, TotalLimit: 2}
	rows, err := newTestCollector(fetcher).Collect(context.Background(), opts)
	require.NoError(t, err)

	assert.Len(t, rows, 2)
	assert.Equal(t, []string{pageURL(1)}, fetcher.fetched)
}

func TestCollectDedupesRepeatedListings(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		pageURL(1): listingPage(1, 2),
		pageURL(2): listingPage(2, 3),
	}}

	opts := models.CollectOptions{MaxPagesPerTerm: 10, TotalLimit: 100}
	rows, err := newTestCollector(fetcher).Collect(context.Background(), opts)
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, "https://www.datacareer.ch/job/3/", rows[2].URL)
}

func TestCollectResolvesRelativeHrefs(t *testing.T) {
	page := `
<html><body>
  <article class="listing-item listing-item__jobs">
    <div class="listing-item__title"><a class="link" href="/job/data-analyst-42/">Data Analyst</a></div>
  </article>
</body></html>`
	fetcher := &fakeFetcher{pages: map[string]string{pageURL(1): page}}

	opts := models.CollectOptions{MaxPagesPerTerm: 10, TotalLimit: 100}
	rows, err := newTestCollector(fetcher).Collect(context.Background(), opts)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "https://www.datacareer.ch/job/data-analyst-42/", rows[0].URL)
	// The job id is derived from the absolute form, so relative and
	// absolute sightings of the same listing collapse to one identity.
	assert.Equal(t, utils.MakeJobID(sourceName, rows[0].URL), rows[0].JobID)
}

func TestAbsoluteURL(t *testing.T) {
	assert.Equal(t, "https://www.datacareer.ch/job/1/", absoluteURL("/job/1/"))
	assert.Equal(t, "https://www.datacareer.ch/job/1/", absoluteURL("https://www.datacareer.ch/job/1/"))
	assert.Equal(t, "https://other.ch/x", absoluteURL("https://other.ch/x"))
}

func TestPageURL(t *testing.T) {
	assert.Equal(t, startURL, pageURL(1))
	assert.Equal(t, startURL+"&page=2", pageURL(2))
}
