// Package enrich computes the derived schema fields the collectors leave
// empty: cleaned description text, canton, seniority and a coarse skills
// inventory.
package enrich

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"jobharvest/pkg/utils"
)

var strictPolicy = bluemonday.StrictPolicy()

// CleanDescription strips any residual markup from a raw description and
// collapses whitespace.
func CleanDescription(raw string) string {
	return utils.CleanText(strictPolicy.Sanitize(raw))
}

// cantonByCity maps accent-folded Swiss city names to canton codes. Only the
// larger job markets are covered; unknown locations map to "".
var cantonByCity = map[string]string{
	"zurich":       "ZH",
	"winterthur":   "ZH",
	"geneva":       "GE",
	"geneve":       "GE",
	"basel":        "BS",
	"bern":         "BE",
	"berne":        "BE",
	"lausanne":     "VD",
	"nyon":         "VD",
	"lucerne":      "LU",
	"luzern":       "LU",
	"zug":          "ZG",
	"st. gallen":   "SG",
	"st gallen":    "SG",
	"lugano":       "TI",
	"fribourg":     "FR",
	"neuchatel":    "NE",
	"sion":         "VS",
	"chur":         "GR",
	"aarau":        "AG",
	"baden":        "AG",
	"schaffhausen": "SH",
	"solothurn":    "SO",
	"thun":         "BE",
	"biel":         "BE",
	"bienne":       "BE",
}

// foldText lowercases and strips diacritics so "Genève" matches "geneve".
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// Canton infers the canton code from a raw location string.
func Canton(locationRaw string) string {
	if locationRaw == "" {
		return ""
	}
	loc := foldText(locationRaw)
	for city, canton := range cantonByCity {
		if strings.Contains(loc, city) {
			return canton
		}
	}
	return ""
}

// Seniority infers a coarse seniority label from the job title.
func Seniority(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "senior") || strings.Contains(t, "sr."):
		return "senior"
	case strings.Contains(t, "lead") || strings.Contains(t, "principal") || strings.Contains(t, "head of"):
		return "lead"
	case strings.Contains(t, "junior") || strings.Contains(t, "jr."):
		return "junior"
	case strings.Contains(t, "intern") || strings.Contains(t, "graduate") || strings.Contains(t, "entry"):
		return "entry"
	default:
		return ""
	}
}

// skillVocabulary lists the technologies scanned for in description text.
var skillVocabulary = []string{
	"Python", "R", "SQL", "Scala", "Java", "Go", "Julia",
	"Spark", "Hadoop", "Kafka", "Airflow", "dbt",
	"TensorFlow", "PyTorch", "scikit-learn", "Keras",
	"Pandas", "NumPy", "Tableau", "Power BI", "Looker",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Terraform",
	"PostgreSQL", "MySQL", "MongoDB", "Redis", "Elasticsearch",
	"Git", "Linux", "REST", "GraphQL", "MLOps", "NLP",
}

// Skills scans cleaned description text for known technologies and returns
// the matches joined with "; " plus the match count as a string.
func Skills(text string) (string, string) {
	if text == "" {
		return "", "0"
	}
	lower := strings.ToLower(text)

	var found []string
	for _, skill := range skillVocabulary {
		needle := strings.ToLower(skill)
		// Single-letter entries like "R" need word boundaries to avoid
		// matching inside ordinary words.
		if len(needle) <= 2 {
			if containsWord(lower, needle) {
				found = append(found, skill)
			}
			continue
		}
		if strings.Contains(lower, needle) {
			found = append(found, skill)
		}
	}

	return strings.Join(found, "; "), strconv.Itoa(len(found))
}

func containsWord(haystack, word string) bool {
	idx := 0
	for {
		i := strings.Index(haystack[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isWordChar(rune(haystack[start-1]))
		afterOK := end == len(haystack) || !isWordChar(rune(haystack[end]))
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
		if idx >= len(haystack) {
			return false
		}
	}
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
