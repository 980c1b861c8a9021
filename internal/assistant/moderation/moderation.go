// internal/assistant/moderation/moderation.go

// Package moderation screens assistant prompts before they leave the
// server. Two independent strategies are exposed: the default whole-word
// check used on the chat path, and a stricter substring variant for callers
// that prefer false positives over misses.
package moderation

import (
	"regexp"
	"strings"
)

var (
	punctuation  = regexp.MustCompile(`[.,/#!$%^&*;:{}=\-_` + "`" + `~()]`)
	multiSpace   = regexp.MustCompile(`\s+`)
	regexEscaper = strings.NewReplacer(
		`\`, `\\`, `.`, `\.`, `*`, `\*`, `+`, `\+`, `?`, `\?`,
		`^`, `\^`, `$`, `\$`, `{`, `\{`, `}`, `\}`,
		`(`, `\(`, `)`, `\)`, `|`, `\|`, `[`, `\[`, `]`, `\]`,
	)

	// Compiled once; each entry matches the block word as a whole word.
	wordPatterns = compileWordPatterns()

	leetPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)[a@4][s$5]{2,}`),
		regexp.MustCompile(`(?i)[s$5][h#]i[t7]`),
		regexp.MustCompile(`(?i)[fF][uUvV@][cCkK]`),
		regexp.MustCompile(`(?i)[bB][i1!][tT7][cC][hH]`),
		regexp.MustCompile(`(?i)[nN][i1!]+[gG6]+[e3a@]?[rR]?`),
	}
)

func compileWordPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(blockWords))
	for _, word := range blockWords {
		escaped := regexEscaper.Replace(word)
		patterns = append(patterns, regexp.MustCompile(`(?i)\b`+escaped+`\b`))
	}
	return patterns
}

// ContainsAbusive reports whether text contains a blocked term as a whole
// word. Punctuation is treated as whitespace so "idiot!!!" still matches,
// while innocent substrings ("assessment", "classic") do not.
func ContainsAbusive(text string) bool {
	normalized := strings.ToLower(strings.TrimSpace(text))
	normalized = punctuation.ReplaceAllString(normalized, " ")
	normalized = strings.TrimSpace(multiSpace.ReplaceAllString(normalized, " "))

	for _, pattern := range wordPatterns {
		if pattern.MatchString(normalized) {
			return true
		}
	}
	return false
}

// ContainsAbusiveStrict flags any substring occurrence of a blocked term
// plus a handful of leet-speak disguises. Not used on the default chat path.
func ContainsAbusiveStrict(text string) bool {
	lowered := strings.ToLower(text)

	for _, word := range blockWords {
		if strings.Contains(lowered, word) {
			return true
		}
	}

	for _, pattern := range leetPatterns {
		if pattern.MatchString(lowered) {
			return true
		}
	}
	return false
}
