package fontres

import (
	"strings"
	"unicode"
)

// diacriticHints maps characteristic accented-Latin letters to a language.
// Checked in fixed order; several languages share letters, so the first
// matching entry wins.
var diacriticHints = []struct {
	lang string
	set  string
}{
	{"fr", "àâæèéêëîïôùûÿœ"},
	{"es", "áíñóú¿¡"},
	{"de", "äöüß"},
	{"it", "àèìòù"},
	{"pt", "ãõçê"},
}

// DetectLanguage guesses the language of a text from its Unicode code-point
// ranges. CJK scripts are checked before Latin diacritics: kana means
// Japanese, hangul Korean, and han ideographs without kana Chinese. Text with
// no signal defaults to "en".
func DetectLanguage(text string) string {
	var hasKana, hasHangul, hasHan bool
	for _, r := range text {
		switch {
		case unicode.In(r, unicode.Hiragana, unicode.Katakana):
			hasKana = true
		case unicode.Is(unicode.Hangul, r):
			hasHangul = true
		case unicode.Is(unicode.Han, r):
			hasHan = true
		}
	}
	switch {
	case hasKana:
		return "ja"
	case hasHangul:
		return "ko"
	case hasHan:
		return "zh"
	}

	lower := strings.ToLower(text)
	for _, hint := range diacriticHints {
		if strings.ContainsAny(lower, hint.set) {
			return hint.lang
		}
	}
	return "en"
}
