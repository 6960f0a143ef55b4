// Package langcodec parses the stringified language lists found in content
// exports and maps language names to ISO 639-1 codes and back.
package langcodec

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// NoLanguage is the placeholder token exports use for silent titles
const NoLanguage = "No Language"

var quoteStripper = strings.NewReplacer("'", "", `"`, "")

// Parse turns a bracketed, quoted list such as "['English', 'Français']"
// into its tokens. Empty tokens, NoLanguage and tokens with a '?' (lost
// encoding) are dropped. The result is not de-duplicated.
func Parse(raw string) []string {
	s := strings.Trim(strings.TrimSpace(raw), "[]")
	s = quoteStripper.Replace(s)
	if strings.TrimSpace(s) == "" {
		return []string{}
	}

	parts := strings.Split(s, ", ")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || p == NoLanguage || strings.Contains(p, "?") {
			continue
		}
		tokens = append(tokens, p)
	}
	return tokens
}

// ParseAndNormalize is Parse followed by Normalize on every token.
func ParseAndNormalize(raw string) []string {
	tokens := Parse(raw)
	for i, t := range tokens {
		tokens[i] = Normalize(t)
	}
	return tokens
}

// Normalize returns the ISO 639-1 code for a language name (English or
// native) or code. Anything it cannot resolve comes back unchanged.
func Normalize(token string) string {
	key := strings.ToLower(strings.TrimSpace(token))
	if key == "" {
		return token
	}

	if code, ok := nameIndex()[key]; ok {
		return code
	}

	if base, err := language.ParseBase(key); err == nil {
		if code := base.String(); len(code) == 2 {
			return code
		}
	}
	return token
}

// Denormalize returns the English name for a language code, or the code
// itself when it is not a known language.
func Denormalize(code string) string {
	base, err := language.ParseBase(strings.ToLower(strings.TrimSpace(code)))
	if err != nil {
		return code
	}
	if name := display.English.Languages().Name(base); name != "" {
		return name
	}
	return code
}

// Variants returns token followed by its ISO 639-1 code, English name and
// native name when it resolves to a known language. Duplicates and empty
// names are dropped.
func Variants(token string) []string {
	out := []string{token}
	code := Normalize(token)
	if len(code) == 2 {
		if _, err := language.ParseBase(code); err == nil {
			out = append(out, code, Denormalize(code), display.Self.Name(language.Make(code)))
		}
	}

	kept := out[:0]
	for _, v := range Unique(out) {
		if v != "" {
			kept = append(kept, v)
		}
	}
	return kept
}

// Unique removes repeated tokens, keeping first occurrences in order.
func Unique(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

var (
	indexOnce sync.Once
	byName    map[string]string
)

// nameIndex maps lower-cased English and self names to two-letter codes.
// Built once from the CLDR data shipped with x/text.
func nameIndex() map[string]string {
	indexOnce.Do(func() {
		bases := display.Supported.BaseLanguages()
		byName = make(map[string]string, len(bases)*2)
		english := display.English.Languages()

		for _, b := range bases {
			code := b.String()
			if len(code) != 2 {
				continue
			}
			tag := language.Make(code)
			for _, name := range []string{english.Name(tag), display.Self.Name(tag)} {
				name = strings.ToLower(name)
				if name == "" {
					continue
				}
				if _, exists := byName[name]; !exists {
					byName[name] = code
				}
			}
		}
	})
	return byName
}
