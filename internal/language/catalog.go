// Package language holds the language catalog shown to users and the
// lightweight source-language detector used when the caller asks for "auto".
package language

import (
	"fmt"
	"sort"
	"strings"
)

// Auto asks the translator (or the detector) to pick the source language.
const Auto = "auto"

// Default is used for speech when the requested language has no voice.
const Default = "en"

var names = map[string]string{
	"af": "Afrikaans", "sq": "Albanian", "am": "Amharic", "ar": "Arabic", "hy": "Armenian",
	"az": "Azerbaijani", "eu": "Basque", "be": "Belarusian", "bn": "Bengali", "bs": "Bosnian",
	"bg": "Bulgarian", "ca": "Catalan", "zh-CN": "Chinese (Simplified)", "zh-TW": "Chinese (Traditional)",
	"hr": "Croatian", "cs": "Czech", "da": "Danish", "nl": "Dutch", "en": "English",
	"eo": "Esperanto", "et": "Estonian", "tl": "Filipino (Tagalog)", "fi": "Finnish", "fr": "French",
	"gl": "Galician", "ka": "Georgian", "de": "German", "el": "Greek", "gu": "Gujarati",
	"ht": "Haitian Creole", "ha": "Hausa", "he": "Hebrew", "hi": "Hindi", "hu": "Hungarian",
	"is": "Icelandic", "id": "Indonesian", "ga": "Irish", "it": "Italian", "ja": "Japanese",
	"kn": "Kannada", "kk": "Kazakh", "km": "Khmer", "ko": "Korean", "ku": "Kurdish",
	"ky": "Kyrgyz", "lo": "Lao", "la": "Latin", "lv": "Latvian", "lt": "Lithuanian",
	"mk": "Macedonian", "ms": "Malay", "ml": "Malayalam", "mt": "Maltese", "mr": "Marathi",
	"mn": "Mongolian", "my": "Myanmar (Burmese)", "ne": "Nepali", "no": "Norwegian", "ps": "Pashto",
	"fa": "Persian", "pl": "Polish", "pt": "Portuguese", "pa": "Punjabi", "ro": "Romanian",
	"ru": "Russian", "sr": "Serbian", "sd": "Sindhi", "si": "Sinhala", "sk": "Slovak",
	"sl": "Slovenian", "so": "Somali", "es": "Spanish", "sw": "Swahili", "sv": "Swedish",
	"tg": "Tajik", "ta": "Tamil", "te": "Telugu", "th": "Thai", "tr": "Turkish",
	"uk": "Ukrainian", "ur": "Urdu", "uz": "Uzbek", "vi": "Vietnamese", "cy": "Welsh",
	"xh": "Xhosa", "yi": "Yiddish", "yo": "Yoruba", "zu": "Zulu",
}

var byLowerName, byLowerCode = func() (map[string]string, map[string]string) {
	n := make(map[string]string, len(names))
	c := make(map[string]string, len(names))
	for code, name := range names {
		n[strings.ToLower(name)] = code
		c[strings.ToLower(code)] = code
	}
	return n, c
}()

// Name returns the English name of a known code.
func Name(code string) (string, bool) {
	n, ok := names[code]
	return n, ok
}

// Display renders a code as "Name (code)"; unknown codes are returned as is.
func Display(code string) string {
	if n, ok := names[code]; ok {
		return fmt.Sprintf("%s (%s)", n, code)
	}
	return code
}

// Resolve maps a code, a name or a "Name (code)" display string to a
// catalog code. ok is false when nothing matched; the trimmed input is then
// returned unchanged so callers can still pass it to a backend verbatim.
func Resolve(s string) (code string, ok bool) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, Auto) {
		return Auto, true
	}

	low := strings.ToLower(s)
	if c, found := byLowerCode[low]; found {
		return c, true
	}
	if c, found := byLowerName[low]; found {
		return c, true
	}

	if open := strings.LastIndex(s, "("); open > 0 && strings.HasSuffix(s, ")") {
		inner := strings.ToLower(strings.TrimSpace(s[open+1 : len(s)-1]))
		if c, found := byLowerCode[inner]; found {
			return c, true
		}
	}

	return s, false
}

// Codes returns every catalog code sorted by display name.
func Codes() []string {
	out := make([]string, 0, len(names))
	for code := range names {
		out = append(out, code)
	}
	sort.Slice(out, func(i, j int) bool { return names[out[i]] < names[out[j]] })
	return out
}
