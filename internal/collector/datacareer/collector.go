package datacareer

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobharvest/internal/collector"
	"jobharvest/internal/collector/headed"
	"jobharvest/internal/config"
	"jobharvest/internal/logging"
	"jobharvest/pkg/models"
	"jobharvest/pkg/utils"
)

const (
	sourceName = "datacareer"

	baseURL  = "https://www.datacareer.ch"
	startURL = baseURL + "/jobs/?categories%5B%5D=Data%20Science"

	cardSelector     = "article.listing-item.listing-item__jobs"
	cardWaitSelector = "article.listing-item"
)

// Collector walks the datacareer.ch Data Science category listing. The site
// has a single pre-filtered feed, so there is no search-term loop and the
// crawl stops at the first page without cards.
type Collector struct {
	cfg        *config.Config
	logger     logging.Logger
	newFetcher func() (collector.Fetcher, error)
}

func NewCollector(cfg *config.Config, logger logging.Logger) *Collector {
	return &Collector{
		cfg:    cfg,
		logger: logger,
		newFetcher: func() (collector.Fetcher, error) {
			return headed.NewFetcher(cfg)
		},
	}
}

func (c *Collector) Name() string {
	return sourceName
}

func (c *Collector) Collect(ctx context.Context, opts models.CollectOptions) ([]models.JobRecord, error) {
	if opts.MaxPagesPerTerm <= 0 {
		opts.MaxPagesPerTerm = c.cfg.Crawler.MaxPagesPerTerm
	}
	if opts.TotalLimit <= 0 {
		opts.TotalLimit = c.cfg.Crawler.TotalLimit
	}

	fetcher, err := c.newFetcher()
	if err != nil {
		return nil, utils.NewCollectorError(err.Error())
	}
	defer fetcher.Close()

	session := collector.NewSession(opts.TotalLimit)

	for page := 1; page <= opts.MaxPagesPerTerm; page++ {
		if !session.HasBudget() {
			break
		}
		if err := ctx.Err(); err != nil {
			return session.Rows(), err
		}

		doc, err := fetcher.Fetch(ctx, pageURL(page), cardWaitSelector)
		if err != nil {
			c.logger.Warn("Listing page fetch failed, stopping", map[string]interface{}{
				"page":  page,
				"error": err.Error(),
			})
			break
		}

		cards := doc.Find(cardSelector)
		if cards.Length() == 0 {
			c.logger.Info("No more listings", map[string]interface{}{"page": page})
			break
		}

		added := 0
		cards.EachWithBreak(func(_ int, card *goquery.Selection) bool {
			if !session.HasBudget() {
				return false
			}
			row, ok := extractCard(card)
			if !ok || !session.ShouldProcess(row.URL) {
				return true
			}
			session.Record(row)
			added++
			return true
		})

		c.logger.Debug("Listing page processed", map[string]interface{}{
			"page":  page,
			"cards": cards.Length(),
			"added": added,
		})
	}

	c.logger.Info("Crawl finished", map[string]interface{}{
		"source": sourceName,
		"jobs":   session.Count(),
	})
	return session.Rows(), nil
}

func pageURL(page int) string {
	if page <= 1 {
		return startURL
	}
	return fmt.Sprintf("%s&page=%d", startURL, page)
}

// absoluteURL resolves an href against the site base. Returns "" for
// unparseable hrefs.
func absoluteURL(href string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

func extractCard(card *goquery.Selection) (models.JobRecord, bool) {
	link := card.Find(".listing-item__title a.link").First()
	href, ok := link.Attr("href")
	if !ok || href == "" {
		return models.JobRecord{}, false
	}

	// The site serves relative hrefs; dedup and job ids work on the
	// absolute form.
	jobURL := absoluteURL(href)
	if jobURL == "" {
		return models.JobRecord{}, false
	}

	return models.JobRecord{
		Source:         sourceName,
		URL:            jobURL,
		JobID:          utils.MakeJobID(sourceName, jobURL),
		Title:          utils.CleanText(link.Text()),
		Company:        utils.CleanText(card.Find(".listing-item__info--item-company").First().Text()),
		LocationRaw:    utils.CleanText(card.Find(".listing-item__info--item-location").First().Text()),
		PostedDate:     utils.CleanText(card.Find(".listing-item__date").First().Text()),
		EmploymentType: utils.CleanText(card.Find(".listing-item__employment-type").First().Text()),
		DescriptionRaw: utils.CleanText(card.Find(".listing-item__desc").First().Text()),
	}, true
}

func (c *Collector) Cleanup() {}
