package gemini

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/datar-psa/textmetrics/api"
)

// IntentLabeler asks an LLM to pick one label out of a fixed set, e.g. the
// intent of a chatbot utterance
type IntentLabeler struct {
	llm         api.LLMGenerator
	labels      []string
	description string
}

// IntentLabelerOption configures an IntentLabeler
type IntentLabelerOption func(*IntentLabeler)

// WithTaskDescription describes what the labels mean, e.g. "the intent of a student's question to a campus assistant"
func WithTaskDescription(description string) IntentLabelerOption {
	return func(l *IntentLabeler) {
		l.description = description
	}
}

// NewIntentLabeler creates a labeler restricted to labels
func NewIntentLabeler(llm api.LLMGenerator, labels []string, opts ...IntentLabelerOption) *IntentLabeler {
	l := &IntentLabeler{
		llm:         llm,
		labels:      slices.Clone(labels),
		description: "the intent of the text",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

const intentPromptTemplate = `You are classifying %s.

[BEGIN DATA]
[Text]: %s
[END DATA]

Choose exactly one label from this list:
%s

Answer with the label only.`

// Label implements api.Labeler
func (l *IntentLabeler) Label(ctx context.Context, text string) (string, error) {
	if l.llm == nil {
		return "", fmt.Errorf("%w: LLM generator is required", api.ErrLabelingFailed)
	}
	if len(l.labels) == 0 {
		return "", fmt.Errorf("%w: at least one label is required", api.ErrLabelingFailed)
	}

	var list strings.Builder
	for _, label := range l.labels {
		list.WriteString("- " + label + "\n")
	}
	prompt := fmt.Sprintf(intentPromptTemplate, l.description, text, strings.TrimRight(list.String(), "\n"))

	schema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"label": map[string]interface{}{
				"type":        "string",
				"enum":        l.labels,
				"description": "The chosen label",
			},
		},
		"required": []string{"label"},
	}

	resp, err := l.llm.StructuredGenerate(ctx, prompt, schema)
	if err != nil {
		return "", fmt.Errorf("%w: %v", api.ErrLLMGenerationFailed, err)
	}

	label, ok := resp["label"].(string)
	if !ok {
		return "", fmt.Errorf("%w: failed to extract label from structured response", api.ErrLabelingFailed)
	}
	if !slices.Contains(l.labels, label) {
		return "", fmt.Errorf("%w: unknown label %q", api.ErrLabelingFailed, label)
	}
	return label, nil
}

var _ api.Labeler = (*IntentLabeler)(nil)
