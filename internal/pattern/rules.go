package pattern

import (
	"regexp"
	"strings"

	sliceutil "taskproof/pkg/platform/strings"
)

// Rule tags derived from submission text and vision detections. These
// predicates are intentionally simple and order-stable: stored patterns
// reference the tags, so changing a predicate invalidates prior learning.
const (
	RuleSocialFollow        = "social_follow"
	RuleUsernameMentioned   = "username_mentioned"
	RuleContainsLink        = "contains_link"
	RuleContainsIDOrNumber  = "contains_id_or_number"
	RuleDetailedExplanation = "detailed_explanation"
	RuleVisualProof         = "visual_proof"

	RuleHasUsernames      = "has_usernames"
	RuleHasURLs           = "has_urls"
	RuleHasVisualElements = "has_visual_elements"
)

var (
	handleRe = regexp.MustCompile(`@\w+`)
	numberRe = regexp.MustCompile(`\d{2,}`)
)

// ExtractRules derives rule tags from a submission text plus optional vision
// detections, deduplicated with first occurrence winning.
func ExtractRules(text string, vision *VisionSignals) []string {
	var rules []string

	lowered := strings.ToLower(text)
	if strings.Contains(lowered, "follow") {
		rules = append(rules, RuleSocialFollow)
	}
	if handleRe.MatchString(text) {
		rules = append(rules, RuleUsernameMentioned)
	}
	if strings.Contains(lowered, "http") {
		rules = append(rules, RuleContainsLink)
	}
	if numberRe.MatchString(text) {
		rules = append(rules, RuleContainsIDOrNumber)
	}
	if len(text) > 100 {
		rules = append(rules, RuleDetailedExplanation)
	}

	if vision != nil {
		if len(vision.Usernames) > 0 {
			rules = append(rules, RuleHasUsernames)
		}
		if len(vision.URLs) > 0 {
			rules = append(rules, RuleHasURLs)
		}
		if len(vision.Objects) > 0 {
			rules = append(rules, RuleHasVisualElements)
		}
	}

	return sliceutil.DedupeAndTrim(rules)
}
