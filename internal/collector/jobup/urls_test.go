package jobup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDetailURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"detail path", "https://www.jobup.ch/en/jobs/detail/12345", true},
		{"slug path", "https://www.jobup.ch/en/jobs/data-scientist-zurich-98765", true},
		{"deep detail path", "https://www.jobup.ch/en/jobs/detail/12345/extra", true},
		{"search landing", "https://www.jobup.ch/en/jobs", false},
		{"search landing trailing slash", "https://www.jobup.ch/en/jobs/", false},
		{"search segment", "https://www.jobup.ch/en/jobs/search/data", false},
		{"results segment", "https://www.jobup.ch/en/jobs/results/data", false},
		{"different host", "https://www.example.com/en/jobs/detail/12345", false},
		{"wrong language prefix", "https://www.jobup.ch/de/jobs/detail/12345", false},
		{"too shallow", "https://www.jobup.ch/en/companies", false},
		{"query string ignored", "https://www.jobup.ch/en/jobs/detail/12345?source=serp", true},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isDetailURL(tt.url))
		})
	}
}

func TestCanonicalURL(t *testing.T) {
	assert.Equal(t, "https://www.jobup.ch/en/jobs/detail/123",
		canonicalURL("https://www.jobup.ch/en/jobs/detail/123?source=serp#top"))
	assert.Equal(t, "https://www.jobup.ch/en/jobs/detail/123",
		canonicalURL("https://www.jobup.ch/en/jobs/detail/123/"))

	// Canonicalizing twice changes nothing.
	once := canonicalURL("https://www.jobup.ch/en/jobs/detail/123/?x=1")
	assert.Equal(t, once, canonicalURL(once))
}

func TestAbsoluteURL(t *testing.T) {
	assert.Equal(t, "https://www.jobup.ch/en/jobs/detail/123", absoluteURL("/en/jobs/detail/123"))
	assert.Equal(t, "https://www.jobup.ch/en/jobs/detail/123", absoluteURL("https://www.jobup.ch/en/jobs/detail/123"))
	assert.Equal(t, "https://other.ch/x", absoluteURL("https://other.ch/x"))
}

func TestBuildPageURL(t *testing.T) {
	assert.Equal(t,
		"https://www.jobup.ch/en/jobs/?term=data+scientist&page=3",
		buildPageURL("data scientist", 3))
}

func TestRankCandidates(t *testing.T) {
	ranked := rankCandidates([]string{
		"https://www.jobup.ch/en/jobs/slug-short",
		"https://www.jobup.ch/en/jobs/detail/111",
		"https://www.jobup.ch/en/jobs/a-much-longer-slug-path-here",
		"https://www.jobup.ch/en/jobs/detail/111",
	})

	// Detail-marked URLs outrank everything, duplicates collapse, longer
	// paths outrank shorter ones.
	assert.Equal(t, []string{
		"https://www.jobup.ch/en/jobs/detail/111",
		"https://www.jobup.ch/en/jobs/a-much-longer-slug-path-here",
		"https://www.jobup.ch/en/jobs/slug-short",
	}, ranked)
}
