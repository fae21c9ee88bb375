package scanner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scan(t *testing.T, text string) *Result {
	t.Helper()
	result, err := NewPatternScanner().Scan(context.Background(), text)
	require.NoError(t, err)
	return result
}

func TestPatternScanner_CleanTextIsSafe(t *testing.T) {
	result := scan(t, "Great place to work, supportive management and fair pay.")
	assert.True(t, result.IsSafe())
	assert.Empty(t, result.Findings[CategoryProfanity])
}

func TestPatternScanner_Profanity(t *testing.T) {
	result := scan(t, "The commute was hell every single day")
	assert.False(t, result.IsSafe())
	assert.Contains(t, result.Findings[CategoryProfanity], "hell")
}

func TestPatternScanner_ProfanityRequiresWordBoundary(t *testing.T) {
	// "class" and "assistant" contain "ass" but are not matches.
	result := scan(t, "World class assistance from my assistant")
	assert.Empty(t, result.Findings[CategoryProfanity])

	result = scan(t, "management treated us like crap")
	assert.Contains(t, result.Findings[CategoryProfanity], "crap")
}

func TestPatternScanner_HateSpeechSubstring(t *testing.T) {
	result := scan(t, "Full of idiots at the top")
	assert.Contains(t, result.Findings[CategoryHateSpeech], "idiots")
}

func TestPatternScanner_EmailDetected(t *testing.T) {
	result := scan(t, "Contact my old boss at john.doe@example.com for details")
	assert.Contains(t, result.Findings[CategoryPersonalInfo], "john.doe@example.com")
}

func TestPatternScanner_PhoneDetected(t *testing.T) {
	result := scan(t, "Call HR at 555-123-4567 if you want the truth")
	assert.False(t, result.IsSafe())
	assert.NotEmpty(t, result.Findings[CategoryPersonalInfo])
}

func TestPatternScanner_ToxicPhrases(t *testing.T) {
	result := scan(t, "New management wants to fire everyone, worst decision ever")
	assert.Contains(t, result.Findings[CategoryToxic], "fire everyone")
	assert.Contains(t, result.Findings[CategoryToxic], "worst")
}

func TestPatternScanner_HateOverlapsToxic(t *testing.T) {
	// "hate" sits in both lists, so one occurrence flags two categories.
	result := scan(t, "I hate the open office")
	assert.Contains(t, result.Findings[CategoryHateSpeech], "hate")
	assert.Contains(t, result.Findings[CategoryToxic], "hate")
}

func TestPatternScanner_CaseInsensitive(t *testing.T) {
	result := scan(t, "TERRIBLE culture, AWFUL benefits")
	assert.Contains(t, result.Findings[CategoryToxic], "terrible")
	assert.Contains(t, result.Findings[CategoryToxic], "awful")
}

func TestResult_MergeAccumulates(t *testing.T) {
	a := &Result{Findings: map[Category][]string{CategoryToxic: {"worst"}}}
	b := &Result{Findings: map[Category][]string{
		CategoryToxic:     {"awful"},
		CategoryProfanity: {"damn"},
	}}
	a.Merge(b)
	assert.ElementsMatch(t, []string{"worst", "awful"}, a.Findings[CategoryToxic])
	assert.Equal(t, []string{"damn"}, a.Findings[CategoryProfanity])
}
