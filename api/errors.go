package api

import "errors"

var (
	// ErrNoExpectedValue is returned when an expected value is required but not provided
	ErrNoExpectedValue = errors.New("expected value is required for this scorer")
	// ErrLLMGenerationFailed is returned when LLM generation fails
	ErrLLMGenerationFailed = errors.New("LLM generation failed")
	// ErrLabelingFailed is returned when a labeler cannot produce a label
	ErrLabelingFailed = errors.New("labeling failed")
	// ErrLengthMismatch is returned when parallel inputs have different lengths
	ErrLengthMismatch = errors.New("parallel inputs have different lengths")
)
