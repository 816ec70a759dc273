package language

import (
	"strings"
	"unicode"

	xlang "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Languages WhisperX reliably detects; English names of these resolve to codes.
var supported = []xlang.Tag{
	xlang.English, xlang.Spanish, xlang.French, xlang.German, xlang.Italian,
	xlang.Portuguese, xlang.Japanese, xlang.Korean, xlang.Chinese, xlang.Russian,
	xlang.Arabic, xlang.Hindi, xlang.Dutch, xlang.Polish, xlang.Swedish,
	xlang.Danish, xlang.Norwegian, xlang.Finnish, xlang.Turkish, xlang.Ukrainian,
}

// ISO 639-2/B codes that x/text does not map.
var bibliographic = map[string]string{
	"fre": "fr",
	"ger": "de",
	"chi": "zh",
	"dut": "nl",
}

var byName = func() map[string]string {
	names := display.English.Languages()
	out := make(map[string]string, len(supported))
	for _, tag := range supported {
		base, _ := tag.Base()
		out[strings.ToLower(names.Name(tag))] = base.String()
	}
	return out
}()

// ToISO2 converts a code, tag, or English name to ISO 639-1. Unrecognized
// input returns "" except two-letter codes, which pass through lowercased.
// "auto" means detection and also returns "".
func ToISO2(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || code == "auto" {
		return ""
	}
	if mapped, ok := bibliographic[code]; ok {
		return mapped
	}
	if mapped, ok := byName[code]; ok {
		return mapped
	}
	if tag, err := xlang.Parse(code); err == nil {
		if base, conf := tag.Base(); conf != xlang.No {
			if iso := base.String(); len(iso) == 2 {
				return iso
			}
		}
	}
	if len(code) == 2 && isLetters(code) {
		return code
	}
	return ""
}

// DisplayName returns the English name for code, "Unknown" for empty input,
// or the uppercased input when it cannot be resolved.
func DisplayName(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "Unknown"
	}
	if iso := ToISO2(trimmed); iso != "" {
		if tag, err := xlang.Parse(iso); err == nil {
			if name := display.English.Languages().Name(tag); name != "" {
				return name
			}
		}
	}
	return strings.ToUpper(trimmed)
}

func isLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
