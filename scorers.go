package textmetrics

import (
	language "cloud.google.com/go/language/apiv1"
	"github.com/datar-psa/textmetrics/api"
	"github.com/datar-psa/textmetrics/gemini"
	"github.com/datar-psa/textmetrics/heuristic"
	"google.golang.org/genai"
)

type Score = api.Score
type ScoreInputs = api.ScoreInputs
type Scorer = api.Scorer

// Labeling wraps labeling providers and exposes convenient constructors for labelers.
// It allows creating an intent labeler or a content classifier without passing the providers each time.
type Labeling struct {
	llm        api.LLMGenerator
	langClient *language.Client
}

// LabelingOptions configures Labeling creation
type LabelingOptions struct {
	llm        api.LLMGenerator
	langClient *language.Client
}

// WithLLMGenerator sets the LLM generator used by intent labelers
func WithLLMGenerator(llm api.LLMGenerator) func(*LabelingOptions) {
	return func(opts *LabelingOptions) {
		opts.llm = llm
	}
}

// NewLabeling creates a new Labeling wrapper using functional options.
func NewLabeling(opts ...func(*LabelingOptions)) *Labeling {
	options := &LabelingOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return &Labeling{
		llm:        options.llm,
		langClient: options.langClient,
	}
}

// GeminiOptions configures Gemini Labeling creation
type GeminiOptions struct {
	genaiClient *genai.Client
	modelName   string
	langClient  *language.Client
}

// WithGenaiClient sets the Gemini client
func WithGenaiClient(client *genai.Client) func(*GeminiOptions) {
	return func(opts *GeminiOptions) {
		opts.genaiClient = client
	}
}

// WithModelName sets the Gemini model name
func WithModelName(modelName string) func(*GeminiOptions) {
	return func(opts *GeminiOptions) {
		opts.modelName = modelName
	}
}

// WithLanguageClient sets the Google Cloud Language client for content classification
func WithLanguageClient(langClient *language.Client) func(*GeminiOptions) {
	return func(opts *GeminiOptions) {
		opts.langClient = langClient
	}
}

// NewGeminiGenerator creates an LLM generator from a Gemini client and model name.
// It returns nil when either is missing.
func NewGeminiGenerator(opts ...func(*GeminiOptions)) api.LLMGenerator {
	options := &GeminiOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if options.genaiClient == nil || options.modelName == "" {
		return nil
	}
	return gemini.NewGenerator(options.genaiClient, options.modelName)
}

// NewGeminiLabeling creates a Labeling using Gemini and Cloud Natural Language clients.
// Example model: "publishers/google/models/gemini-2.5-flash".
func NewGeminiLabeling(opts ...func(*GeminiOptions)) *Labeling {
	options := &GeminiOptions{}
	for _, opt := range opts {
		opt(options)
	}

	var labelingOptions []func(*LabelingOptions)

	// Only add LLM generator if genaiClient is provided
	if llm := NewGeminiGenerator(opts...); llm != nil {
		labelingOptions = append(labelingOptions, WithLLMGenerator(llm))
	}

	// Only add content classification if langClient is provided
	if options.langClient != nil {
		labelingOptions = append(labelingOptions, func(o *LabelingOptions) {
			o.langClient = options.langClient
		})
	}

	return NewLabeling(labelingOptions...)
}

type IntentLabelerOption = gemini.IntentLabelerOption

// WithTaskDescription describes what the intent labels mean.
var WithTaskDescription = gemini.WithTaskDescription

// Intent returns a labeler that asks the LLM to pick one of labels.
func (l *Labeling) Intent(labels []string, opts ...IntentLabelerOption) api.Labeler {
	return gemini.NewIntentLabeler(l.llm, labels, opts...)
}

type ContentClassifierOptions = gemini.ContentClassifierOptions

// Content returns a labeler that uses Cloud Natural Language content categories.
func (l *Labeling) Content(opts ContentClassifierOptions) api.Labeler {
	return gemini.NewContentClassifier(l.langClient, opts)
}

// Heuristic exposes convenient constructors for heuristic scorers.
type Heuristic struct{}

// NewHeuristic creates a new Heuristic.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

type ExactMatchOptions = heuristic.ExactMatchOptions

// ExactMatch returns a scorer that checks if the output exactly matches the expected value.
func (h *Heuristic) ExactMatch(opts ExactMatchOptions) api.Scorer {
	return heuristic.ExactMatch(opts)
}

type ErrorRateOptions = heuristic.ErrorRateOptions

// WER returns a scorer rating the output by its word error rate against the expected value.
func (h *Heuristic) WER(opts ErrorRateOptions) api.Scorer {
	return heuristic.WER(opts)
}

// CER returns a scorer rating the output by its character error rate against the expected value.
func (h *Heuristic) CER(opts ErrorRateOptions) api.Scorer {
	return heuristic.CER(opts)
}

type BLEUOptions = heuristic.BLEUOptions

// BLEU returns a scorer rating the output by its BLEU score against the expected value.
func (h *Heuristic) BLEU(opts BLEUOptions) api.Scorer {
	return heuristic.BLEU(opts)
}
