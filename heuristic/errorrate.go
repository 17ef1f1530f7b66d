package heuristic

import (
	"context"

	"github.com/datar-psa/textmetrics/api"
	"github.com/datar-psa/textmetrics/errorrate"
)

// ErrorRateOptions configures the WER and CER scorers
type ErrorRateOptions struct {
	// SkipNormalization compares the texts verbatim, only split on whitespace
	SkipNormalization bool
}

// WER returns a scorer that rates a transcript by its word error rate against Expected.
// The score is 1 - WER clamped to [0, 1]; an undefined WER scores 0.
func WER(opts ErrorRateOptions) api.Scorer {
	return &errorRateScorer{name: "WER", opts: opts, pick: func(r errorrate.Record) (float64, bool) {
		return r.WER.Value()
	}}
}

// CER returns a scorer that rates a transcript by its character error rate against Expected.
// The score is 1 - CER clamped to [0, 1].
func CER(opts ErrorRateOptions) api.Scorer {
	return &errorRateScorer{name: "CER", opts: opts, pick: func(r errorrate.Record) (float64, bool) {
		return r.CER, true
	}}
}

type errorRateScorer struct {
	name string
	opts ErrorRateOptions
	pick func(errorrate.Record) (float64, bool)
}

func (s *errorRateScorer) Score(ctx context.Context, in api.ScoreInputs) api.Score {
	result := api.Score{
		Name:     s.name,
		Metadata: make(map[string]any),
	}

	if in.Expected == "" {
		result.Error = api.ErrNoExpectedValue
		result.Score = 0
		return result
	}

	rec := errorrate.Compute(in.Expected, in.Output, errorrate.Options{SkipNormalization: s.opts.SkipNormalization})

	rate, ok := s.pick(rec)
	if ok {
		result.Score = clamp01(1 - rate)
	}

	result.Metadata["wer"] = rec.WER.Float64()
	result.Metadata["wer_undefined"] = rec.WER.IsUndefined()
	result.Metadata["cer"] = rec.CER
	result.Metadata["substitutions"] = rec.Substitutions
	result.Metadata["insertions"] = rec.Insertions
	result.Metadata["deletions"] = rec.Deletions
	result.Metadata["ref_length"] = rec.RefLength
	result.Metadata["hyp_length"] = rec.HypLength

	return result
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
