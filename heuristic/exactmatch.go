package heuristic

import (
	"context"
	"strings"

	"github.com/datar-psa/textmetrics/api"
	"github.com/datar-psa/textmetrics/textnorm"
)

// ExactMatchOptions configures the ExactMatch scorer
type ExactMatchOptions struct {
	// CaseInsensitive determines if the comparison should ignore case
	CaseInsensitive bool
	// TrimWhitespace determines if leading and trailing whitespace should be trimmed
	TrimWhitespace bool
	// Normalize compares the texts after WER-style normalization (case, punctuation, whitespace)
	Normalize bool
}

// canonical applies the enabled transformations in a fixed order.
func (o ExactMatchOptions) canonical(s string) string {
	if o.TrimWhitespace {
		s = strings.TrimSpace(s)
	}
	if o.CaseInsensitive {
		s = strings.ToLower(s)
	}
	if o.Normalize {
		s = textnorm.Normalize(s)
	}
	return s
}

// ExactMatch returns a scorer that checks if the output exactly matches the
// expected value, e.g. a predicted intent label or a short transcript
func ExactMatch(opts ExactMatchOptions) api.Scorer {
	return &exactMatchScorer{opts: opts}
}

type exactMatchScorer struct {
	opts ExactMatchOptions
}

func (s *exactMatchScorer) Score(ctx context.Context, in api.ScoreInputs) api.Score {
	result := api.Score{
		Name:     "ExactMatch",
		Metadata: make(map[string]any),
	}

	if in.Expected == "" {
		result.Error = api.ErrNoExpectedValue
		return result
	}

	output := s.opts.canonical(in.Output)
	expected := s.opts.canonical(in.Expected)
	if output == expected {
		result.Score = 1.0
	}

	result.Metadata["case_insensitive"] = s.opts.CaseInsensitive
	result.Metadata["trim_whitespace"] = s.opts.TrimWhitespace
	result.Metadata["normalize"] = s.opts.Normalize
	result.Metadata["compared_output"] = output
	result.Metadata["compared_expected"] = expected

	return result
}
