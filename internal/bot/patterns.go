package bot

import (
	"regexp"
	"strconv"
	"strings"
)

// Intent classifies a free-text message.
type Intent int

const (
	IntentNone Intent = iota
	IntentGreeting
	IntentReading  // user is currently reading a book
	IntentFinished // user finished a book
	IntentWishlist // user wants to read a book
)

// Chat patterns. Titles are captured lazily and then stripped of trailing
// time words, so "I am reading Dune now" yields "Dune".
var (
	readingPattern  = regexp.MustCompile(`(?i)(?:reading|going through)\s+(.+)$`)
	finishedPattern = regexp.MustCompile(`(?i)(?:have read|read|finished|completed)\s+(.+)$`)
	wishlistPattern = regexp.MustCompile(`(?i)(?:want to read|wishlist)\s+(.+)$`)
	greetingPattern = regexp.MustCompile(`(?i)^(?:hi|hello|hiya|hola|sup|hey)\b`)
	negativePattern = regexp.MustCompile(`(?i)^(?:no|nope|nah|naw)\b`)

	// Trailing words that describe when, not what.
	titleTailPattern = regexp.MustCompile(`(?i)\s*\b(?:recently|now|currently|nowadays|yesterday|today)\b.*$`)

	numberPattern = regexp.MustCompile(`-?\d+`)
)

// Detect classifies a message and extracts the book title when one is
// present. The title may come back empty even when an intent matched;
// the conversation then asks for it directly.
func Detect(text string) (Intent, string) {
	text = strings.TrimSpace(text)

	if greetingPattern.MatchString(text) {
		return IntentGreeting, ""
	}
	if m := readingPattern.FindStringSubmatch(text); m != nil {
		return IntentReading, cleanTitle(m[1])
	}
	if m := wishlistPattern.FindStringSubmatch(text); m != nil {
		return IntentWishlist, cleanTitle(m[1])
	}
	if m := finishedPattern.FindStringSubmatch(text); m != nil {
		return IntentFinished, cleanTitle(m[1])
	}
	return IntentNone, ""
}

// IsNegative reports whether a reply is a refusal.
func IsNegative(text string) bool {
	return negativePattern.MatchString(strings.TrimSpace(text))
}

// ExtractNumber pulls the first integer out of a reply, so "about 50
// pages I think" reads as 50.
func ExtractNumber(text string) (int, bool) {
	m := numberPattern.FindString(text)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// cleanTitle strips trailing time words and sentence punctuation from a
// captured title.
func cleanTitle(s string) string {
	s = titleTailPattern.ReplaceAllString(s, "")
	s = strings.TrimRight(strings.TrimSpace(s), ".!?")
	return strings.TrimSpace(s)
}
