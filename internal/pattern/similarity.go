package pattern

import "strings"

// Jaccard computes |A∩B| / |A∪B| over two word sets. Symmetric, in [0,1].
// Empty-versus-empty is defined as 0 to avoid division by zero.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for w := range a {
		if _, ok := b[w]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// WordSet lowercases text and splits it into its set of whitespace-separated
// words.
func WordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = struct{}{}
	}
	return set
}

// visionBonusPerRule is added per pattern rule satisfied by vision
// detections.
const visionBonusPerRule = 0.1

// similarity scores one pattern against a submission: the maximum Jaccard
// similarity across the pattern's examples, plus a capped vision bonus for
// each declared rule the detections satisfy.
func similarity(text string, p *EvidencePattern, vision *VisionSignals) float64 {
	words := WordSet(text)

	best := 0.0
	for _, example := range p.Examples {
		if s := Jaccard(words, WordSet(example)); s > best {
			best = s
		}
	}

	if vision != nil {
		for _, rule := range p.Rules {
			switch rule {
			case RuleUsernameMentioned:
				if len(vision.Usernames) > 0 {
					best += visionBonusPerRule
				}
			case RuleContainsLink:
				if len(vision.URLs) > 0 {
					best += visionBonusPerRule
				}
			case RuleVisualProof:
				if len(vision.Objects) > 0 {
					best += visionBonusPerRule
				}
			}
		}
	}

	if best > 1.0 {
		best = 1.0
	}
	return best
}
