package verification

import (
	"fmt"
	"strings"

	sliceutil "taskproof/pkg/platform/strings"
)

// maxSummaryItems caps how many strengths and concerns the employer summary
// carries from each side.
const maxSummaryItems = 5

// buildSummary renders the employer-facing summary: the pass/fail line plus
// up to five strengths and five concerns gathered across phases.
func buildSummary(overall int, passed bool, phases []PhaseResult) string {
	var strengths, concerns []string
	for _, p := range phases {
		strengths = append(strengths, p.Strengths...)
		concerns = append(concerns, p.Concerns...)
		if !p.Passed && p.Note != "" {
			concerns = append(concerns, p.Note)
		}
	}
	strengths = cap5(sliceutil.DedupeAndTrim(strengths))
	concerns = cap5(sliceutil.DedupeAndTrim(concerns))

	verdict := "did not pass"
	if passed {
		verdict = "passed"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Submission %s verification with a score of %d/100.", verdict, overall)
	if len(strengths) > 0 {
		b.WriteString(" Strengths: " + strings.Join(strengths, "; ") + ".")
	}
	if len(concerns) > 0 {
		b.WriteString(" Concerns: " + strings.Join(concerns, "; ") + ".")
	}
	return b.String()
}

func cap5(items []string) []string {
	if len(items) > maxSummaryItems {
		return items[:maxSummaryItems]
	}
	return items
}
