// Package oracle defines the content relevance oracle boundary: the external
// capability that turns raw submission content into structured relevance and
// quality signals.
//
// The engine depends only on the one-method Client interface. Any failure a
// Client returns is absorbed by the calling phase and never aborts a
// verification.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"
)

// Request is a single structured-analysis request. Schema constrains the
// model output; the raw JSON result is unmarshaled by the typed wrappers.
type Request struct {
	Prompt    string
	ImageURIs []string
	Schema    map[string]any
}

// Client is the inference backend boundary. Generate returns the raw JSON
// document conforming to req.Schema, or an error when the backend is
// unreachable or produced unusable output. Callers must treat errors as a
// degraded-signal condition, not a fatal one.
type Client interface {
	Generate(ctx context.Context, req Request) (json.RawMessage, error)
}

// ImageSignals are the four 0-1 signals of the image phase.
type ImageSignals struct {
	ContentRelevance float64 `json:"content_relevance"`
	Quality          float64 `json:"quality"`
	Authenticity     float64 `json:"authenticity"`
	Completeness     float64 `json:"completeness"`
}

// LinkSignals score one accessible link's extracted content.
type LinkSignals struct {
	Relevance           float64 `json:"relevance"`
	IndicatesCompletion bool    `json:"indicates_completion"`
}

// DescriptionSignals are the five 0-1 signals of the description phase plus
// the structured feedback lists.
type DescriptionSignals struct {
	RequirementCoverage float64  `json:"requirement_coverage"`
	Clarity             float64  `json:"clarity"`
	TechnicalAccuracy   float64  `json:"technical_accuracy"`
	Professionalism     float64  `json:"professionalism"`
	EvidenceQuality     float64  `json:"evidence_quality"`
	RequirementsMet     []string `json:"requirements_met"`
	RequirementsMissing []string `json:"requirements_missing"`
	Concerns            []string `json:"concerns"`
	Strengths           []string `json:"strengths"`
}

// CrossValidationSignals assess all evidence together.
type CrossValidationSignals struct {
	Consistency    float64 `json:"consistency"`
	Authenticity   float64 `json:"authenticity"`
	Completeness   float64 `json:"completeness"`
	Confidence     string  `json:"confidence"`
	Recommendation string  `json:"recommendation"`
}

// MediaSignals describe a single submitted file: detected entities plus
// authenticity/relevance scores. The pattern matcher uses the detections as
// its vision bonus input.
type MediaSignals struct {
	Usernames    []string `json:"usernames"`
	URLs         []string `json:"urls"`
	Objects      []string `json:"objects"`
	Authenticity float64  `json:"authenticity"`
	Relevance    float64  `json:"relevance"`
}

// Oracle provides the typed analyses the verification engine needs, built on
// a single structured-generation client.
type Oracle struct {
	client Client
}

func New(client Client) *Oracle {
	return &Oracle{client: client}
}

// AnalyzeImages scores submitted photos against the task requirements.
func (o *Oracle) AnalyzeImages(ctx context.Context, taskDescription string, photoURIs []string) (*ImageSignals, error) {
	prompt := fmt.Sprintf(`You are verifying a worker's photo evidence for a paid task.

Task requirements:
%s

Rate the attached photos on four dimensions, each from 0.0 to 1.0:
- content_relevance: do the photos show what the task asked for
- quality: are the photos clear and legible
- authenticity: do the photos look like genuine captures rather than edits or stock images
- completeness: do the photos cover all visual proof the task requires`, taskDescription)

	raw, err := o.client.Generate(ctx, Request{
		Prompt:    prompt,
		ImageURIs: photoURIs,
		Schema:    imageSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("analyze images: %w", err)
	}

	var signals ImageSignals
	if err := json.Unmarshal(raw, &signals); err != nil {
		return nil, fmt.Errorf("decode image signals: %w", err)
	}
	return &signals, nil
}

// ScoreLink scores one fetched link's extracted text against the task.
func (o *Oracle) ScoreLink(ctx context.Context, taskDescription, linkContent string) (*LinkSignals, error) {
	prompt := fmt.Sprintf(`You are verifying a worker's link evidence for a paid task.

Task requirements:
%s

Content retrieved from the submitted link:
%s

Rate relevance from 0.0 to 1.0 (how strongly this content supports the claim that the task was completed) and set indicates_completion to true only if the content directly evidences completion.`, taskDescription, linkContent)

	raw, err := o.client.Generate(ctx, Request{
		Prompt: prompt,
		Schema: linkSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("score link: %w", err)
	}

	var signals LinkSignals
	if err := json.Unmarshal(raw, &signals); err != nil {
		return nil, fmt.Errorf("decode link signals: %w", err)
	}
	return &signals, nil
}

// AssessDescription scores the worker's free-text description.
func (o *Oracle) AssessDescription(ctx context.Context, taskDescription, description string) (*DescriptionSignals, error) {
	prompt := fmt.Sprintf(`You are verifying a worker's written completion report for a paid task.

Task requirements:
%s

Worker's description of the completed work:
%s

Rate five dimensions from 0.0 to 1.0: requirement_coverage, clarity, technical_accuracy, professionalism, evidence_quality.
Also list which requirements are met, which are missing, any concerns, and any strengths.`, taskDescription, description)

	raw, err := o.client.Generate(ctx, Request{
		Prompt: prompt,
		Schema: descriptionSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("assess description: %w", err)
	}

	var signals DescriptionSignals
	if err := json.Unmarshal(raw, &signals); err != nil {
		return nil, fmt.Errorf("decode description signals: %w", err)
	}
	return &signals, nil
}

// CrossValidate checks all evidence categories against each other.
func (o *Oracle) CrossValidate(ctx context.Context, taskDescription string, photoURIs []string, linkSummaries []string, description string) (*CrossValidationSignals, error) {
	prompt := fmt.Sprintf(`You are cross-checking all evidence a worker submitted for a paid task.

Task requirements:
%s

Worker's description:
%s

Link evidence summaries:
%s

The worker's photos are attached. Rate three dimensions from 0.0 to 1.0:
- consistency: do photos, links and description tell the same story
- authenticity: does the combined evidence look genuine
- completeness: does the combined evidence fully cover the requirements
Give a confidence label (low, medium, high) and a short recommendation for the reviewer.`,
		taskDescription, description, joinSummaries(linkSummaries))

	raw, err := o.client.Generate(ctx, Request{
		Prompt:    prompt,
		ImageURIs: photoURIs,
		Schema:    crossValidationSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("cross validate: %w", err)
	}

	var signals CrossValidationSignals
	if err := json.Unmarshal(raw, &signals); err != nil {
		return nil, fmt.Errorf("decode cross-validation signals: %w", err)
	}
	return &signals, nil
}

// AnalyzeMedia describes one submitted file for the media verification flow:
// detected usernames, URLs and objects plus authenticity/relevance signals.
func (o *Oracle) AnalyzeMedia(ctx context.Context, fileURI, fileType, userText, enhancedText string) (*MediaSignals, error) {
	prompt := fmt.Sprintf(`You are analyzing a worker's submitted proof file.

File type: %s
Worker's note: %s
Extracted content: %s

List every username handle, URL and visible object you can detect in the file and the extracted content.
Rate authenticity and relevance from 0.0 to 1.0.`, fileType, userText, enhancedText)

	var imageURIs []string
	if fileURI != "" {
		imageURIs = []string{fileURI}
	}

	raw, err := o.client.Generate(ctx, Request{
		Prompt:    prompt,
		ImageURIs: imageURIs,
		Schema:    mediaSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("analyze media: %w", err)
	}

	var signals MediaSignals
	if err := json.Unmarshal(raw, &signals); err != nil {
		return nil, fmt.Errorf("decode media signals: %w", err)
	}
	return &signals, nil
}

func joinSummaries(summaries []string) string {
	if len(summaries) == 0 {
		return "(no link evidence)"
	}
	out := ""
	for i, s := range summaries {
		if i > 0 {
			out += "\n"
		}
		out += "- " + s
	}
	return out
}
