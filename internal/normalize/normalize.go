// Package normalize provides utilities for normalizing book metadata.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// lower folds case Unicode-aware, so titles like "İstanbul" normalize
// consistently regardless of source casing.
//
//nolint:gochecknoglobals // Shared caser, safe for concurrent use.
var lower = cases.Fold()

// Title produces the canonical store key for a book title:
// case-folded, with runs of whitespace collapsed to single spaces.
func Title(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		fields[i] = lower.String(f)
	}
	return strings.Join(fields, " ")
}

// iso639_2to1 maps ISO 639-2 (3-letter) codes to ISO 639-1 (2-letter) codes.
// Google Books reports 639-1; Wikipedia infoboxes use full names; older
// catalog dumps use 639-2. Everything funnels to 639-1.
//
//nolint:gochecknoglobals // Static lookup table for language normalization.
var iso639_2to1 = map[string]string{
	"eng": "en", "spa": "es", "fra": "fr", "deu": "de", "ita": "it",
	"por": "pt", "nld": "nl", "rus": "ru", "jpn": "ja", "zho": "zh",
	"kor": "ko", "ara": "ar", "hin": "hi", "pol": "pl", "swe": "sv",
	"nor": "no", "dan": "da", "fin": "fi", "tur": "tr", "ell": "el",
	"heb": "he", "ces": "cs", "hun": "hu", "ron": "ro", "tha": "th",
	"vie": "vi", "ind": "id", "ukr": "uk", "cat": "ca", "fas": "fa",
	"ben": "bn", "tam": "ta", "urd": "ur", "swa": "sw", "isl": "is",
	// Alternative ISO 639-2/B codes (bibliographic).
	"ger": "de", "fre": "fr", "dut": "nl", "chi": "zh", "cze": "cs",
	"gre": "el", "per": "fa", "rum": "ro", "ice": "is",
}

// languageNameToCode maps common language names to ISO 639-1 codes.
//
//nolint:gochecknoglobals // Static lookup table for language normalization.
var languageNameToCode = map[string]string{
	"english": "en", "spanish": "es", "french": "fr", "german": "de",
	"italian": "it", "portuguese": "pt", "dutch": "nl", "russian": "ru",
	"japanese": "ja", "chinese": "zh", "korean": "ko", "arabic": "ar",
	"hindi": "hi", "polish": "pl", "swedish": "sv", "norwegian": "no",
	"danish": "da", "finnish": "fi", "turkish": "tr", "greek": "el",
	"hebrew": "he", "czech": "cs", "hungarian": "hu", "romanian": "ro",
	"thai": "th", "vietnamese": "vi", "indonesian": "id", "ukrainian": "uk",
	"catalan": "ca", "persian": "fa", "farsi": "fa", "bengali": "bn",
	"tamil": "ta", "urdu": "ur", "swahili": "sw", "icelandic": "is",
}

// Language normalizes a language string to an ISO 639-1 code.
// Accepts 639-1 codes (passed through), 639-2 codes, and common English
// language names. Unrecognized input is lowercased and returned as-is so
// partial data is preserved rather than dropped.
func Language(s string) string {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" {
		return ""
	}

	// Already a two-letter code.
	if len(trimmed) == 2 {
		return trimmed
	}

	if code, ok := iso639_2to1[trimmed]; ok {
		return code
	}
	if code, ok := languageNameToCode[trimmed]; ok {
		return code
	}

	// Handle things like "English (British)" from infoboxes.
	if idx := strings.IndexAny(trimmed, "(,;"); idx > 0 {
		head := strings.TrimSpace(trimmed[:idx])
		if code, ok := languageNameToCode[head]; ok {
			return code
		}
	}

	return trimmed
}

// LanguageTag parses a normalized language code into a BCP 47 tag.
// Returns language.Und when the code is empty or unparseable.
func LanguageTag(code string) language.Tag {
	if code == "" {
		return language.Und
	}
	tag, err := language.Parse(code)
	if err != nil {
		return language.Und
	}
	return tag
}

// Genre lowercases and trims a genre label, dropping any trailing
// parenthetical like "Science fiction (novel)".
func Genre(s string) string {
	g := strings.ToLower(strings.TrimSpace(s))
	if idx := strings.IndexByte(g, '('); idx > 0 {
		g = strings.TrimSpace(g[:idx])
	}
	return g
}
