package jobup

import (
	"github.com/PuerkitoBio/goquery"

	"jobharvest/pkg/models"
	"jobharvest/pkg/utils"
)

// minDescriptionLen guards against near-empty promotional snippets passing
// for the job description.
const minDescriptionLen = 120

// Header fact chains: a primary selector tied to a stable structural marker
// plus a looser fallback. Fields stay "" when both miss.
var (
	detailTitleSelectors = []string{
		"h1[data-cy='vacancy-title']",
	}
	detailCompanySelectors = []string{
		"a[data-cy='company-link'] span",
	}
	detailPostedDateSelectors = []string{
		"li[data-cy='info-publication'] span.white-space_nowrap",
		"li[data-cy='info-publication']",
	}
	detailWorkloadSelectors = []string{
		"li[data-cy='info-workload'] span.white-space_nowrap",
		"li[data-cy='info-workload']",
	}
	detailContractSelectors = []string{
		"li[data-cy='info-contract'] span",
		"li[data-cy='info-contract']",
	}
	detailLocationSelectors = []string{
		"div.grid-area_vacancy-info ul > li:not([data-cy]) span",
		"div[data-cy='vacancy-logo'] p",
	}
)

// descriptionSelectors is the descending list of increasingly generic
// containers tried after the primary strategy.
var descriptionSelectors = []string{
	"div[data-cy='vacancy-description']",
	"[data-cy*='vacancy-description']",
	"[data-cy*='description']",
	"[class*='description']",
	"[class*='job-description']",
	"article",
	"main",
}

// extractDetail pulls the richer field set from a parsed detail page. Every
// field degrades to "" on extraction failure; this never errors.
func extractDetail(doc *goquery.Document) models.DetailFacts {
	return models.DetailFacts{
		Title:          textFromChain(doc.Selection, detailTitleSelectors),
		Company:        textFromChain(doc.Selection, detailCompanySelectors),
		LocationRaw:    textFromChain(doc.Selection, detailLocationSelectors),
		PostedDate:     textFromChain(doc.Selection, detailPostedDateSelectors),
		WorkloadRaw:    textFromChain(doc.Selection, detailWorkloadSelectors),
		EmploymentType: textFromChain(doc.Selection, detailContractSelectors),
		DescriptionRaw: extractDescription(doc),
	}
}

// extractDescription applies the description policy in order, first success
// wins: primary container with the embedded teaser section removed, then
// the generic container list, then the page meta description, then "".
func extractDescription(doc *goquery.Document) string {
	root := doc.Find("div[data-cy='vacancy-description']").First()
	if root.Length() > 0 {
		root.Find("section[aria-label='JobFit teaser']").Remove()
		if text := utils.CleanText(root.Text()); len(text) >= minDescriptionLen {
			return text
		}
	}

	for _, sel := range descriptionSelectors {
		el := doc.Find(sel).First()
		if el.Length() == 0 {
			continue
		}
		if text := utils.CleanText(el.Text()); len(text) >= minDescriptionLen {
			return text
		}
	}

	// Last resort, accepted regardless of length.
	if content, ok := doc.Find("meta[property='og:description']").First().Attr("content"); ok && content != "" {
		return utils.CleanText(content)
	}

	return ""
}
