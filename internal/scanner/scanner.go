package scanner

import "context"

// Category names a class of policy finding.
type Category string

const (
	CategoryProfanity    Category = "profanity"
	CategoryHateSpeech   Category = "hate_speech"
	CategoryPersonalInfo Category = "personal_info"
	CategoryToxic        Category = "toxic"
)

// Categories lists every category in a stable order, used when rendering
// results and when building flag rows.
var Categories = []Category{
	CategoryProfanity,
	CategoryHateSpeech,
	CategoryPersonalInfo,
	CategoryToxic,
}

// Result holds the findings of one scan. A category absent from Findings
// or mapped to an empty slice produced no findings.
type Result struct {
	Findings map[Category][]string
}

// IsSafe reports whether the scan produced no findings at all.
func (r *Result) IsSafe() bool {
	for _, matches := range r.Findings {
		if len(matches) > 0 {
			return false
		}
	}
	return true
}

// Merge folds other's findings into r.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	for category, matches := range other.Findings {
		if len(matches) == 0 {
			continue
		}
		if r.Findings == nil {
			r.Findings = make(map[Category][]string)
		}
		r.Findings[category] = append(r.Findings[category], matches...)
	}
}

func emptyResult() *Result {
	return &Result{Findings: make(map[Category][]string)}
}

// Scanner screens user-submitted text for policy violations. Errors mean
// the scan could not run; callers in the moderation pipeline treat that as
// "no findings" and log, so screening never blocks a submission.
type Scanner interface {
	Scan(ctx context.Context, text string) (*Result, error)
}

// Descriptions maps each category to the human-readable explanation stored
// on flag rows.
var Descriptions = map[Category]string{
	CategoryProfanity:    "Contains profanity or inappropriate language",
	CategoryHateSpeech:   "Contains potential hate speech",
	CategoryPersonalInfo: "Contains personal information (email or phone number)",
	CategoryToxic:        "Contains toxic or hostile content",
}
