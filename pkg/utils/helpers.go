package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanText collapses all whitespace runs to a single space and trims.
func CleanText(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// MakeJobID derives the deterministic row identifier from the collector name
// and the canonical detail URL. Identical inputs always yield the same id,
// which keeps re-collection idempotent downstream.
func MakeJobID(source, url string) string {
	sum := sha1.Sum([]byte(source + "|" + url))
	return hex.EncodeToString(sum[:])
}

// GenerateRequestID generates a unique request ID for tracking
func GenerateRequestID() string {
	return uuid.New().String()
}

// FormatDuration formats a duration to a human-readable string
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return d.String()
	}
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.1fm", d.Minutes())
	}
	return fmt.Sprintf("%.1fh", d.Hours())
}
