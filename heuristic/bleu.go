package heuristic

import (
	"context"

	"github.com/datar-psa/textmetrics/api"
	"github.com/datar-psa/textmetrics/bleu"
)

// BLEUOptions configures the BLEU scorer
type BLEUOptions struct {
	// MaxN is the highest n-gram order (default 4)
	MaxN int
	// Weights holds one weight per n-gram order (default uniform)
	Weights []float64
}

// BLEU returns a scorer that rates a translation by its sentence BLEU against Expected
func BLEU(opts BLEUOptions) api.Scorer {
	return &bleuScorer{opts: bleu.Options{MaxN: opts.MaxN, Weights: opts.Weights}}
}

type bleuScorer struct {
	opts bleu.Options
}

func (s *bleuScorer) Score(ctx context.Context, in api.ScoreInputs) api.Score {
	result := api.Score{
		Name:     "BLEU",
		Metadata: make(map[string]any),
	}

	if in.Expected == "" {
		result.Error = api.ErrNoExpectedValue
		result.Score = 0
		return result
	}

	res, err := bleu.Compute(in.Expected, in.Output, s.opts)
	if err != nil {
		result.Error = err
		result.Score = 0
		return result
	}

	result.Score = res.Score
	result.Metadata["precisions"] = res.Precisions
	result.Metadata["brevity_penalty"] = res.BrevityPenalty
	result.Metadata["ref_len"] = res.RefLength
	result.Metadata["hyp_len"] = res.HypLength

	return result
}
