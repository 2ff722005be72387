package browser

import (
	"errors"
	"strings"
)

// ErrChallengePage is returned when a page never gets past the bot
// mitigation interstitial.
var ErrChallengePage = errors.New("browser: bot challenge page not cleared")

// challengeTitles and challengeMarkers identify interstitial pages served
// in place of real content. Matching is case-insensitive.
var (
	challengeTitles = []string{
		"just a moment",
		"attention required",
		"access denied",
	}
	challengeMarkers = []string{
		"cf-browser-verification",
		"cf-challenge",
		"challenge-platform",
		"turnstile",
	}
)

// IsChallenge reports whether the page title or content looks like a bot
// mitigation interstitial rather than the real page.
func IsChallenge(title, html string) bool {
	t := strings.ToLower(title)
	for _, marker := range challengeTitles {
		if strings.Contains(t, marker) {
			return true
		}
	}
	h := strings.ToLower(html)
	for _, marker := range challengeMarkers {
		if strings.Contains(h, marker) {
			return true
		}
	}
	return false
}
