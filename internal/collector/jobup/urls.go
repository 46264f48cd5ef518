package jobup

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const (
	baseURL   = "https://www.jobup.ch"
	searchURL = baseURL + "/en/jobs/"
)

// nonListingSegments are third path segments that mark search infrastructure
// rather than an individual listing.
var nonListingSegments = map[string]struct{}{
	"search":  {},
	"results": {},
}

// buildPageURL builds the paginated search URL for a term.
func buildPageURL(term string, page int) string {
	return searchURL + "?term=" + url.QueryEscape(term) + "&page=" + strconv.Itoa(page)
}

// canonicalURL strips query string, fragment and trailing slashes. Applying
// it twice is a no-op, so canonical URLs can be fed back in safely.
func canonicalURL(raw string) string {
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimRight(raw, "/")
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

// isDetailURL reports whether a candidate link points at an individual
// listing rather than search infrastructure. Pure string/path logic, no
// network access.
func isDetailURL(candidate string) bool {
	cleaned := canonicalURL(candidate)
	if !strings.HasPrefix(cleaned, baseURL) {
		return false
	}
	if cleaned == baseURL+"/en/jobs" {
		return false
	}

	parsed, err := url.Parse(cleaned)
	if err != nil {
		return false
	}

	var parts []string
	for _, p := range strings.Split(parsed.Path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}

	// Detail-style URLs look like /en/jobs/<something>[/...].
	if len(parts) < 3 {
		return false
	}
	if parts[0] != "en" || parts[1] != "jobs" {
		return false
	}
	if _, bad := nonListingSegments[parts[2]]; bad {
		return false
	}
	return true
}

// rankCandidates dedupes and orders candidate detail URLs: URLs containing
// an explicit /detail/ marker first, then longer paths, then lexically for
// determinism.
func rankCandidates(candidates []string) []string {
	unique := make(map[string]struct{}, len(candidates))
	var ranked []string
	for _, c := range candidates {
		if _, dup := unique[c]; dup {
			continue
		}
		unique[c] = struct{}{}
		ranked = append(ranked, c)
	}

	pathLen := func(u string) int {
		parsed, err := url.Parse(u)
		if err != nil {
			return 0
		}
		return len(parsed.Path)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		iDetail := strings.Contains(ranked[i], "/detail/")
		jDetail := strings.Contains(ranked[j], "/detail/")
		if iDetail != jDetail {
			return iDetail
		}
		li, lj := pathLen(ranked[i]), pathLen(ranked[j])
		if li != lj {
			return li > lj
		}
		return ranked[i] < ranked[j]
	})

	return ranked
}
