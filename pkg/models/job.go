package models

// ListingCandidate is one listing as seen on a search-results card. The
// detail URL is already canonical (query and fragment stripped); every other
// field may be empty when the card markup did not expose it.
type ListingCandidate struct {
	DetailURL      string
	Title          string
	Company        string
	LocationRaw    string
	PostedDate     string
	EmploymentType string
	SalaryRaw      string
	DescriptionRaw string
}

// DetailFacts is the richer field set extracted from a listing's own page.
// Any field may be empty when extraction failed; an empty detail field never
// overwrites a non-empty card field during the merge.
type DetailFacts struct {
	Title          string
	Company        string
	LocationRaw    string
	PostedDate     string
	WorkloadRaw    string
	EmploymentType string
	DescriptionRaw string
}

// JobRecord is the final merged row handed to the schema projection.
type JobRecord struct {
	Source         string
	URL            string
	JobID          string
	SearchTerm     string
	Title          string
	Company        string
	LocationRaw    string
	PostedDate     string
	EmploymentType string
	WorkloadRaw    string
	SalaryRaw      string
	DescriptionRaw string
}

// MergeDetail folds detail-page facts into a card-level candidate. Detail
// values win only when non-empty.
func MergeDetail(card ListingCandidate, detail DetailFacts) ListingCandidate {
	merged := card
	merged.Title = firstNonEmpty(detail.Title, card.Title)
	merged.Company = firstNonEmpty(detail.Company, card.Company)
	merged.LocationRaw = firstNonEmpty(detail.LocationRaw, card.LocationRaw)
	merged.PostedDate = firstNonEmpty(detail.PostedDate, card.PostedDate)
	merged.EmploymentType = firstNonEmpty(detail.EmploymentType, card.EmploymentType)
	merged.DescriptionRaw = firstNonEmpty(detail.DescriptionRaw, card.DescriptionRaw)
	return merged
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// CollectOptions configures one crawl invocation.
type CollectOptions struct {
	Terms           []string
	MaxPagesPerTerm int
	TotalLimit      int
	FetchDetails    bool
	MaxNoNewPages   int
}

// DefaultTerms is the role set crawled when the caller supplies none.
var DefaultTerms = []string{
	"data scientist",
	"data analyst",
	"machine learning engineer",
	"data engineer",
	"ai engineer",
}
