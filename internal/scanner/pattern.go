package scanner

import (
	"context"
	"regexp"
	"strings"
)

// PatternScanner is the built-in screener: word lists plus regexes for
// contact details. It is deliberately simple; the remote scanner exists
// for anything smarter.
type PatternScanner struct{}

func NewPatternScanner() *PatternScanner {
	return &PatternScanner{}
}

var (
	profanityWords = []string{"damn", "hell", "ass", "crap"}

	hateSpeechPatterns = []string{"hate", "stupid people", "idiots"}

	toxicPatterns = []string{"terrible", "awful", "worst", "hate", "fire everyone"}

	// Compiled once; profanity needs word boundaries so "class" does not
	// match "ass".
	profanityRegexps = compileWordRegexps(profanityWords)

	emailRegexp = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	phoneRegexp = regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}|\(\d{3}\)\s*\d{3}[-.\s]?\d{4}|\d{3}[-.\s]?\d{4}`)
)

func compileWordRegexps(words []string) map[string]*regexp.Regexp {
	compiled := make(map[string]*regexp.Regexp, len(words))
	for _, word := range words {
		compiled[word] = regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `\b`)
	}
	return compiled
}

func (s *PatternScanner) Scan(_ context.Context, text string) (*Result, error) {
	result := emptyResult()
	lower := strings.ToLower(text)

	for _, word := range profanityWords {
		if profanityRegexps[word].MatchString(lower) {
			result.Findings[CategoryProfanity] = append(result.Findings[CategoryProfanity], word)
		}
	}

	for _, pattern := range hateSpeechPatterns {
		if strings.Contains(lower, pattern) {
			result.Findings[CategoryHateSpeech] = append(result.Findings[CategoryHateSpeech], pattern)
		}
	}

	if matches := emailRegexp.FindAllString(text, -1); len(matches) > 0 {
		result.Findings[CategoryPersonalInfo] = append(result.Findings[CategoryPersonalInfo], matches...)
	}
	if matches := phoneRegexp.FindAllString(text, -1); len(matches) > 0 {
		result.Findings[CategoryPersonalInfo] = append(result.Findings[CategoryPersonalInfo], matches...)
	}

	for _, pattern := range toxicPatterns {
		if strings.Contains(lower, pattern) {
			result.Findings[CategoryToxic] = append(result.Findings[CategoryToxic], pattern)
		}
	}

	return result, nil
}
