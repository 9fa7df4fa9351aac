package pattern

import "strings"

// categoryBucket maps trigger keywords to a task category. Buckets are
// checked in declaration order and the first hit wins; the stored patterns
// depend on this classification staying stable, so do not reorder.
type categoryBucket struct {
	category string
	keywords []string
}

var categoryBuckets = []categoryBucket{
	{category: "social", keywords: []string{"follow", "twitter", "retweet", "like", "subscribe"}},
	{category: "code", keywords: []string{"code", "commit", "github", "pull request", "repository"}},
	{category: "content", keywords: []string{"article", "blog", "post", "write", "review"}},
}

// DefaultCategory is assigned when no bucket keyword matches.
const DefaultCategory = "general"

// InferCategory classifies a submission text into a task category using
// first-match-wins keyword buckets.
func InferCategory(text string) string {
	lowered := strings.ToLower(text)
	for _, bucket := range categoryBuckets {
		for _, kw := range bucket.keywords {
			if strings.Contains(lowered, kw) {
				return bucket.category
			}
		}
	}
	return DefaultCategory
}
