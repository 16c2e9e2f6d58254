package language

import (
	"strings"
	"unicode"
)

var romanUrdu = map[string]struct{}{
	"ki": {}, "ka": {}, "hai": {}, "tum": {}, "mera": {}, "tera": {}, "kyun": {},
	"kaise": {}, "nahi": {}, "acha": {}, "shukriya": {}, "main": {},
}

var english = map[string]struct{}{
	"the": {}, "and": {}, "is": {}, "you": {}, "thanks": {}, "are": {}, "hello": {},
}

// Urdu-only letters; without them Arabic script is reported as "ar".
const urduLetters = "ٹڈڑںےۓھ"

// Detect guesses the language of text. Non-Latin scripts are recognised by
// their Unicode block; Latin text is scored against Roman Urdu and English
// keyword lists. Anything undecided is reported as Default.
func Detect(text string) string {
	if code, ok := detectScript(text); ok {
		return code
	}

	var urdu, eng int
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	}) {
		if _, ok := romanUrdu[w]; ok {
			urdu++
		}
		if _, ok := english[w]; ok {
			eng++
		}
	}

	if urdu > 0 && urdu >= eng {
		return "ur"
	}
	return Default
}

func detectScript(text string) (string, bool) {
	counts := map[string]int{}
	letters, urduHits := 0, 0

	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		switch {
		case unicode.In(r, unicode.Arabic):
			if strings.ContainsRune(urduLetters, r) {
				urduHits++
			}
			counts["ar"]++
		case unicode.In(r, unicode.Devanagari):
			counts["hi"]++
		case unicode.In(r, unicode.Hiragana, unicode.Katakana):
			counts["ja"] += 2
		case unicode.In(r, unicode.Han):
			counts["zh-CN"]++
		case unicode.In(r, unicode.Hangul):
			counts["ko"]++
		case unicode.In(r, unicode.Cyrillic):
			counts["ru"]++
		case unicode.In(r, unicode.Greek):
			counts["el"]++
		case unicode.In(r, unicode.Hebrew):
			counts["he"]++
		case unicode.In(r, unicode.Thai):
			counts["th"]++
		}
	}

	if letters == 0 {
		return "", false
	}

	best, bestN := "", 0
	for _, code := range []string{"ar", "hi", "ja", "zh-CN", "ko", "ru", "el", "he", "th"} {
		if counts[code] > bestN {
			best, bestN = code, counts[code]
		}
	}

	// Mostly Latin text with a stray symbol is left to the keyword pass.
	if bestN*2 < letters {
		return "", false
	}
	if best == "ar" && urduHits > 0 {
		return "ur", true
	}
	return best, true
}
