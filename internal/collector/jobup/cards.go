package jobup

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobharvest/pkg/models"
	"jobharvest/pkg/utils"
)

// cardSelectors locates listing cards on a results page. Tried in order;
// the first strategy yielding at least one match wins, which tolerates
// markup drift between site revisions.
var cardSelectors = []string{
	"div[data-cy='vacancy-serp-item']",
	"[data-cy*='vacancy-serp']",
	"[data-cy*='serp-item']",
}

// Per-field fallback chains for card-level extraction. First non-empty
// match wins; unmatched fields stay "".
var (
	cardTitleSelectors      = []string{"span[class*='fw_bold']", "h2", "h3"}
	cardCompanySelectors    = []string{"p strong", "strong"}
	cardPostedDateSelectors = []string{"div[data-cy^='serp-item-'] p", "p[class*='caption']", "p"}
)

// ancestorScanDepth bounds how far up the tree we look for an anchor
// wrapping the whole card.
const ancestorScanDepth = 8

// extractCards turns one parsed results page into zero or more listing
// candidates. An empty result means "no cards on this page", not an error.
func extractCards(doc *goquery.Document) []models.ListingCandidate {
	var cards *goquery.Selection
	for _, sel := range cardSelectors {
		found := doc.Find(sel)
		if found.Length() > 0 {
			cards = found
			break
		}
	}
	if cards == nil {
		return nil
	}

	var rows []models.ListingCandidate
	taken := make(map[string]struct{})

	cards.Each(func(_ int, card *goquery.Selection) {
		detailURL := detailURLFromCard(card, taken)
		if detailURL == "" {
			// A card without an addressable URL cannot produce a record.
			return
		}
		if _, dup := taken[detailURL]; dup {
			return
		}
		taken[detailURL] = struct{}{}

		rows = append(rows, models.ListingCandidate{
			DetailURL:      detailURL,
			Title:          textFromChain(card, cardTitleSelectors),
			Company:        textFromChain(card, cardCompanySelectors),
			PostedDate:     textFromChain(card, cardPostedDateSelectors),
			LocationRaw:    extractLabeledValue(card, "Place of work"),
			EmploymentType: extractLabeledValue(card, "Contract type"),
		})
	})

	return rows
}

// detailURLFromCard resolves the card's detail URL: ancestor anchors first,
// then descendant anchors, filtered through the classifier and ranked.
// Candidates already taken by an earlier card on the page are avoided; when
// every ranked candidate is taken the top-ranked one is returned anyway and
// the session-level dedup drops the duplicate downstream.
func detailURLFromCard(card *goquery.Selection, taken map[string]struct{}) string {
	var candidates []string

	parent := card
	for i := 0; i < ancestorScanDepth; i++ {
		parent = parent.Parent()
		if parent.Length() == 0 {
			break
		}
		if goquery.NodeName(parent) == "a" {
			if href, ok := parent.Attr("href"); ok && href != "" {
				candidates = append(candidates, absoluteURL(href))
			}
		}
	}

	card.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		if href, ok := a.Attr("href"); ok && href != "" {
			candidates = append(candidates, absoluteURL(href))
		}
	})

	var valid []string
	for _, c := range candidates {
		if c == "" {
			continue
		}
		cleaned := canonicalURL(c)
		if !isDetailURL(cleaned) {
			continue
		}
		valid = append(valid, cleaned)
	}

	if len(valid) == 0 {
		return ""
	}

	ranked := rankCandidates(valid)
	for _, u := range ranked {
		if _, used := taken[u]; !used {
			return u
		}
	}
	return ranked[0]
}

// textFromChain returns the cleaned text of the first selector in the chain
// that matches a non-empty element.
func textFromChain(root *goquery.Selection, chain []string) string {
	for _, sel := range chain {
		if text := utils.CleanText(root.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// extractLabeledValue finds a span whose text starts with labelPrefix and
// returns the text of the sibling p element holding the value. Cards label
// facts like "Place of work:" this way.
func extractLabeledValue(card *goquery.Selection, labelPrefix string) string {
	prefix := strings.ToLower(labelPrefix)
	value := ""

	card.Find("span").EachWithBreak(func(_ int, label *goquery.Selection) bool {
		text := strings.ToLower(utils.CleanText(label.Text()))
		if !strings.HasPrefix(text, prefix) {
			return true
		}
		val := label.Parent().Find("p").First()
		if val.Length() > 0 {
			value = utils.CleanText(val.Text())
			return false
		}
		return true
	})

	return value
}
