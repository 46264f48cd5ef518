package jobup

import (
	"context"

	"jobharvest/internal/collector"
	"jobharvest/internal/collector/headed"
	"jobharvest/internal/config"
	"jobharvest/internal/logging"
	"jobharvest/pkg/models"
	"jobharvest/pkg/utils"
)

const (
	sourceName = "jobup"

	// maxEmptyPages is the consecutive-cardless-page ceiling per term.
	maxEmptyPages = 2

	// cardWaitSelector returns as soon as the page shell renders; the card
	// entries come first so a populated page is ready immediately.
	cardWaitSelector   = "div[data-cy='vacancy-serp-item'], [data-cy*='serp'], #react-root, main, body"
	detailWaitSelector = "h1[data-cy='vacancy-title']"
)

// Collector crawls jobup.ch search results term by term, paginating until
// the per-term ceilings or the total budget stop it.
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

// Collect runs the full crawl. Browser acquisition failure is fatal; every
// later page-level failure is absorbed and counted as an empty page.
func (c *Collector) Collect(ctx context.Context, opts models.CollectOptions) ([]models.JobRecord, error) {
	opts = c.applyDefaults(opts)

	fetcher, err := c.newFetcher()
	if err != nil {
		return nil, utils.NewCollectorError(err.Error())
	}
	defer fetcher.Close()

	session := collector.NewSession(opts.TotalLimit)

	for _, term := range opts.Terms {
		if !session.HasBudget() {
			c.logger.Info("Total limit reached, stopping crawl", map[string]interface{}{
				"limit": opts.TotalLimit,
			})
			break
		}
		if err := ctx.Err(); err != nil {
			return session.Rows(), err
		}

		c.logger.Info("Collecting search term", map[string]interface{}{
			"source": sourceName,
			"term":   term,
		})
		c.collectTerm(ctx, fetcher, session, term, opts)
	}

	c.logger.Info("Crawl finished", map[string]interface{}{
		"source": sourceName,
		"jobs":   session.Count(),
	})
	return session.Rows(), nil
}

func (c *Collector) collectTerm(ctx context.Context, fetcher collector.Fetcher, session *collector.Session, term string, opts models.CollectOptions) {
	emptyPages := 0
	noNewPages := 0

	for page := 1; page <= opts.MaxPagesPerTerm; page++ {
		if !session.HasBudget() {
			return
		}
		if ctx.Err() != nil {
			return
		}

		pageURL := buildPageURL(term, page)
		doc, err := fetcher.Fetch(ctx, pageURL, cardWaitSelector)

		var cards []models.ListingCandidate
		if err != nil {
			c.logger.Warn("Result page fetch failed, treating as empty", map[string]interface{}{
				"term":  term,
				"page":  page,
				"error": err.Error(),
			})
		} else {
			cards = extractCards(doc)
		}

		if len(cards) == 0 {
			emptyPages++
			if emptyPages >= maxEmptyPages {
				c.logger.Info("Stopping term after consecutive empty pages", map[string]interface{}{
					"term": term,
					"page": page,
				})
				return
			}
			continue
		}
		emptyPages = 0

		addedThisPage := 0
		for _, card := range cards {
			if !session.HasBudget() {
				break
			}
			if !session.ShouldProcess(card.DetailURL) {
				continue
			}

			var detail models.DetailFacts
			if opts.FetchDetails {
				detail = c.fetchDetail(ctx, fetcher, card.DetailURL)
			}
			merged := models.MergeDetail(card, detail)

			session.Record(models.JobRecord{
				Source:         sourceName,
				URL:            card.DetailURL,
				JobID:          utils.MakeJobID(sourceName, card.DetailURL),
				SearchTerm:     term,
				Title:          merged.Title,
				Company:        merged.Company,
				LocationRaw:    merged.LocationRaw,
				PostedDate:     merged.PostedDate,
				EmploymentType: merged.EmploymentType,
				WorkloadRaw:    detail.WorkloadRaw,
				SalaryRaw:      merged.SalaryRaw,
				DescriptionRaw: merged.DescriptionRaw,
			})
			addedThisPage++
		}

		if addedThisPage == 0 {
			noNewPages++
			if noNewPages >= opts.MaxNoNewPages {
				c.logger.Info("Stopping term, no new jobs on recent pages", map[string]interface{}{
					"term":  term,
					"page":  page,
					"pages": noNewPages,
				})
				return
			}
		} else {
			noNewPages = 0
		}

		c.logger.Debug("Result page processed", map[string]interface{}{
			"term":  term,
			"page":  page,
			"cards": len(cards),
			"added": addedThisPage,
		})
	}
}

// fetchDetail never fails the crawl: on any error the card facts stand alone.
func (c *Collector) fetchDetail(ctx context.Context, fetcher collector.Fetcher, detailURL string) models.DetailFacts {
	doc, err := fetcher.Fetch(ctx, detailURL, detailWaitSelector)
	if err != nil {
		c.logger.Warn("Detail page fetch failed, keeping card facts", map[string]interface{}{
			"url":   detailURL,
			"error": err.Error(),
		})
		return models.DetailFacts{}
	}
	return extractDetail(doc)
}

func (c *Collector) applyDefaults(opts models.CollectOptions) models.CollectOptions {
	if len(opts.Terms) == 0 {
		opts.Terms = c.cfg.Crawler.Terms
	}
	if len(opts.Terms) == 0 {
		opts.Terms = models.DefaultTerms
	}
	if opts.MaxPagesPerTerm <= 0 {
		opts.MaxPagesPerTerm = c.cfg.Crawler.MaxPagesPerTerm
	}
	if opts.TotalLimit <= 0 {
		opts.TotalLimit = c.cfg.Crawler.TotalLimit
	}
	if opts.MaxNoNewPages <= 0 {
		opts.MaxNoNewPages = c.cfg.Crawler.MaxNoNewPages
	}
	return opts
}

func (c *Collector) Cleanup() {}
