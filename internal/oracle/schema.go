package oracle

// Response schemas in the generateContent responseSchema format. Field names
// must stay in sync with the json tags on the signal structs.

var imageSchema = objectSchema(map[string]any{
	"content_relevance": numberProp,
	"quality":           numberProp,
	"authenticity":      numberProp,
	"completeness":      numberProp,
}, []string{"content_relevance", "quality", "authenticity", "completeness"})

var linkSchema = objectSchema(map[string]any{
	"relevance":            numberProp,
	"indicates_completion": boolProp,
}, []string{"relevance", "indicates_completion"})

var descriptionSchema = objectSchema(map[string]any{
	"requirement_coverage": numberProp,
	"clarity":              numberProp,
	"technical_accuracy":   numberProp,
	"professionalism":      numberProp,
	"evidence_quality":     numberProp,
	"requirements_met":     stringArrayProp,
	"requirements_missing": stringArrayProp,
	"concerns":             stringArrayProp,
	"strengths":            stringArrayProp,
}, []string{"requirement_coverage", "clarity", "technical_accuracy", "professionalism", "evidence_quality"})

var crossValidationSchema = objectSchema(map[string]any{
	"consistency":    numberProp,
	"authenticity":   numberProp,
	"completeness":   numberProp,
	"confidence":     map[string]any{"type": "string", "enum": []string{"low", "medium", "high"}},
	"recommendation": map[string]any{"type": "string"},
}, []string{"consistency", "authenticity", "completeness", "confidence"})

var mediaSchema = objectSchema(map[string]any{
	"usernames":    stringArrayProp,
	"urls":         stringArrayProp,
	"objects":      stringArrayProp,
	"authenticity": numberProp,
	"relevance":    numberProp,
}, []string{"authenticity", "relevance"})

var (
	numberProp      = map[string]any{"type": "number"}
	boolProp        = map[string]any{"type": "boolean"}
	stringArrayProp = map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
)

func objectSchema(properties map[string]any, required []string) map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}
