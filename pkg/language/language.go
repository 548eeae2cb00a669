// Package language normalizes free-form language tokens to canonical
// ISO 639-2/T three-letter codes.
package language

import (
	"strings"

	"github.com/hbollon/go-edlib"
	xlang "golang.org/x/text/language"
)

// Reserved preference keywords. They normalize to themselves and never
// collide with a real language code.
const (
	Any  = "any"
	None = "none"
)

// aliases maps lower-cased tokens to canonical three-letter codes.
// Covers full English names, ISO 639-1, and the bibliographic 639-2/B
// variants found in media containers, plus a few regional aliases.
var aliases = map[string]string{
	"english": "eng", "en": "eng", "eng": "eng",
	"japanese": "jpn", "ja": "jpn", "jp": "jpn", "jpn": "jpn",
	"french": "fra", "fr": "fra", "fre": "fra", "fra": "fra",
	"spanish": "spa", "es": "spa", "spa": "spa", "latino": "spa",
	"german": "deu", "de": "deu", "ger": "deu", "deu": "deu",
	"italian": "ita", "it": "ita", "ita": "ita",
	"korean": "kor", "ko": "kor", "kor": "kor",
	"chinese": "zho", "zh": "zho", "chi": "zho", "zho": "zho", "cn": "zho",
	"portuguese": "por", "pt": "por", "por": "por",
	"brazilian": "por", "br": "por", "pb": "por", "ptbr": "por", "pt-br": "por",
	"russian": "rus", "ru": "rus", "rus": "rus",
	"polish": "pol", "pl": "pol", "pol": "pol",
	"swedish": "swe", "sv": "swe", "swe": "swe",
	"dutch": "nld", "nl": "nld", "dut": "nld", "nld": "nld",
	"norwegian": "nor", "no": "nor", "nor": "nor",
	"danish": "dan", "da": "dan", "dan": "dan",
	"finnish": "fin", "fi": "fin", "fin": "fin",
	"czech": "ces", "cs": "ces", "cze": "ces", "ces": "ces",
	"greek": "ell", "el": "ell", "gre": "ell", "ell": "ell",
	"arabic": "ara", "ar": "ara", "ara": "ara",
	"hindi": "hin", "hi": "hin", "hin": "hin",
	"hebrew": "heb", "he": "heb", "iw": "heb", "heb": "heb",
	"turkish": "tur", "tr": "tur", "tur": "tur",
	"thai": "tha", "th": "tha", "tha": "tha",
	"vietnamese": "vie", "vi": "vie", "vie": "vie",
	"ukrainian": "ukr", "uk": "ukr", "ukr": "ukr",
	"hungarian": "hun", "hu": "hun", "hun": "hun",
	"romanian": "ron", "ro": "ron", "rum": "ron", "ron": "ron",
	"indonesian": "ind", "id": "ind", "ind": "ind",
}

// Normalize maps a free-form language token to its canonical three-letter
// code. Unrecognized tokens are returned lower-cased and trimmed, so
// normalization never fails. Empty or whitespace-only input yields "".
func Normalize(token string) string {
	t := strings.ToLower(strings.TrimSpace(token))
	if t == "" {
		return ""
	}
	if t == Any || t == None {
		return t
	}
	if canonical, ok := aliases[t]; ok {
		return canonical
	}
	// Two-letter codes outside the alias table resolve through the
	// registry-backed lookup.
	if len(t) == 2 {
		if base, err := xlang.ParseBase(t); err == nil {
			if iso3 := base.ISO3(); iso3 != "" {
				return iso3
			}
		}
	}
	return t
}

// NormalizeMany normalizes every token, drops empty results, and removes
// duplicates while preserving first-seen order.
func NormalizeMany(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		n := Normalize(tok)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// suggestThreshold is the minimum Jaro-Winkler similarity for Suggest
// to consider a known alias close enough to a misspelled token.
const suggestThreshold = 0.84

// Suggest returns the known alias closest to an unrecognized token,
// for "did you mean" hints when validating saved rules. The resolver
// never consults it.
func Suggest(token string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(token))
	if t == "" || t == Any || t == None {
		return "", false
	}
	if _, known := aliases[t]; known {
		return "", false
	}

	best := ""
	bestScore := 0.0
	for alias := range aliases {
		score := float64(edlib.JaroWinklerSimilarity(t, alias))
		if score > bestScore {
			best, bestScore = alias, score
		}
	}
	if bestScore < suggestThreshold {
		return "", false
	}
	return best, true
}
