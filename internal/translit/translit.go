package translit

import (
	"sort"
	"strings"
	"unicode"
)

// table maps Cyrillic Crimean Tatar letters and digraphs to Latin equivalents.
// Loaded once at init into an ordered replacer; never mutated afterwards.
var table = map[string]string{
	"А": "A", "а": "a",
	"Б": "B", "б": "b",
	"В": "V", "в": "v",
	"Г": "G", "г": "g",
	"ГЪ": "Ğ", "Гъ": "Ğ", "гъ": "ğ",
	"Д": "D", "д": "d",
	"ДЖ": "C", "Дж": "C", "дж": "c",
	"Е": "E", "е": "e",
	"Ё": "Yo", "ё": "yo",
	"Ж": "J", "ж": "j",
	"З": "Z", "з": "z",
	"И": "İ", "и": "i",
	"Й": "Y", "й": "y",
	"К": "K", "к": "k",
	"КЪ": "Q", "Къ": "Q", "къ": "q",
	"Л": "L", "л": "l",
	"М": "M", "м": "m",
	"Н": "N", "н": "n",
	"НЪ": "Ñ", "Нъ": "Ñ", "нъ": "ñ",
	"О": "O", "о": "o",
	"П": "P", "п": "p",
	"Р": "R", "р": "r",
	"С": "S", "с": "s",
	"Т": "T", "т": "t",
	"У": "U", "у": "u",
	"Ф": "F", "ф": "f",
	"Х": "H", "х": "h",
	"Ц": "Ts", "ц": "ts",
	"Ч": "Ç", "ч": "ç",
	"Ш": "Ş", "ш": "ş",
	"Щ": "Şç", "щ": "şç",
	"Ъ": "", "ъ": "",
	"Ы": "I", "ы": "ı",
	"Ь": "", "ь": "",
	"Э": "E", "э": "e",
	"Ю": "Yu", "ю": "yu",
	"Я": "Ya", "я": "ya",
	"І": "İ", "і": "i",
	"Ї": "Yi", "ї": "yi",
	"Ґ": "G", "ґ": "g",
}

// replacer applies the table with digraph keys ahead of their single-letter
// prefixes. strings.Replacer tries patterns in argument order at each input
// position, so sorting keys by descending length preserves digraph priority.
var replacer = newReplacer()

func newReplacer() *strings.Replacer {
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	pairs := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		pairs = append(pairs, key, table[key])
	}
	return strings.NewReplacer(pairs...)
}

// Transliterate converts Cyrillic Crimean Tatar text to Latin script.
// Characters without a table entry are returned unchanged.
func Transliterate(text string) string {
	if text == "" {
		return ""
	}
	return replacer.Replace(text)
}

// HasCyrillic reports whether text contains at least one Cyrillic code point.
func HasCyrillic(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Cyrillic, r) {
			return true
		}
	}
	return false
}
