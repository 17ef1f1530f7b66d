package textmetrics

import "github.com/datar-psa/textmetrics/api"

var (
	// ErrNoExpectedValue is returned when an expected value is required but not provided
	ErrNoExpectedValue = api.ErrNoExpectedValue
	// ErrLLMGenerationFailed is returned when LLM generation fails
	ErrLLMGenerationFailed = api.ErrLLMGenerationFailed
	// ErrLabelingFailed is returned when a labeler cannot produce a label
	ErrLabelingFailed = api.ErrLabelingFailed
	// ErrLengthMismatch is returned when parallel inputs have different lengths
	ErrLengthMismatch = api.ErrLengthMismatch
)
