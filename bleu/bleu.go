// Package bleu implements sentence and corpus BLEU: clipped n-gram precision
// combined with a brevity penalty.
package bleu

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/datar-psa/textmetrics/api"
	"github.com/datar-psa/textmetrics/stats"
)

// DefaultMaxN is the n-gram order of BLEU-4.
const DefaultMaxN = 4

var (
	// ErrInvalidOrder is returned when the n-gram order is not positive
	ErrInvalidOrder = errors.New("bleu: n-gram order must be positive")
	// ErrInvalidWeights is returned when the weights do not match the n-gram order
	ErrInvalidWeights = errors.New("bleu: one weight per n-gram order is required")
)

// Options configures BLEU computation
type Options struct {
	// MaxN is the highest n-gram order; 0 means DefaultMaxN
	MaxN int
	// Weights holds one weight per order 1..MaxN; nil means uniform 1/MaxN
	Weights []float64
}

// Validate reports ErrInvalidOrder or ErrInvalidWeights for unusable options.
func (o Options) Validate() error {
	_, _, err := o.resolve()
	return err
}

func (o Options) resolve() (int, []float64, error) {
	maxN := o.MaxN
	if maxN == 0 {
		maxN = DefaultMaxN
	}
	if maxN < 0 {
		return 0, nil, fmt.Errorf("%w: %d", ErrInvalidOrder, maxN)
	}

	if o.Weights == nil {
		w := make([]float64, maxN)
		for i := range w {
			w[i] = 1.0 / float64(maxN)
		}
		return maxN, w, nil
	}
	if len(o.Weights) != maxN {
		return 0, nil, fmt.Errorf("%w: got %d weights for order %d", ErrInvalidWeights, len(o.Weights), maxN)
	}
	return maxN, o.Weights, nil
}

// Result is the BLEU score of one hypothesis.
type Result struct {
	Score          float64   `json:"bleu"`
	Precisions     []float64 `json:"precisions"`
	BrevityPenalty float64   `json:"brevity_penalty"`
	RefLength      int       `json:"ref_len"`
	HypLength      int       `json:"hyp_len"`
}

// Compute scores hypothesis against a single reference.
//
// Texts are lower-cased and split on whitespace. An empty hypothesis scores
// 0 with a brevity penalty of 0. When some order has no matching n-gram the
// score is 0; the precisions computed so far are reported, padded with zeros.
func Compute(reference, hypothesis string, opts Options) (Result, error) {
	maxN, weights, err := opts.resolve()
	if err != nil {
		return Result{}, err
	}

	ref := tokenize(reference)
	hyp := tokenize(hypothesis)

	res := Result{
		Precisions: make([]float64, maxN),
		RefLength:  len(ref),
		HypLength:  len(hyp),
	}
	if len(hyp) == 0 {
		return res, nil
	}

	bp := brevityPenalty(len(ref), len(hyp))
	res.BrevityPenalty = stats.Round(bp)

	var logAvg float64
	for n := 1; n <= maxN; n++ {
		clipped, total := clippedCounts(ref, hyp, n)
		var p float64
		if total > 0 {
			p = float64(clipped) / float64(total)
		}
		res.Precisions[n-1] = stats.Round(p)

		if p == 0 {
			return res, nil
		}
		logAvg += weights[n-1] * math.Log(p)
	}

	res.Score = stats.Round(bp * math.Exp(logAvg))
	return res, nil
}

// CorpusResult holds per-sentence results in input order, the summary of the
// sentence scores and the corpus BLEU computed from pooled counts.
type CorpusResult struct {
	Results []Result       `json:"results"`
	Summary *stats.Summary `json:"bleu_stats,omitempty"`
	// Score is corpus BLEU: n-gram counts and lengths are summed over all
	// sentences before precisions and the brevity penalty are taken
	Score float64 `json:"corpus_bleu"`
}

// ComputeCorpus scores hypotheses[i] against references[i] for every i.
func ComputeCorpus(references, hypotheses []string, opts Options) (CorpusResult, error) {
	if len(references) != len(hypotheses) {
		return CorpusResult{}, fmt.Errorf("%w: %d references, %d hypotheses", api.ErrLengthMismatch, len(references), len(hypotheses))
	}
	maxN, weights, err := opts.resolve()
	if err != nil {
		return CorpusResult{}, err
	}

	res := CorpusResult{Results: make([]Result, 0, len(references))}
	scores := make([]float64, 0, len(references))

	clipped := make([]int, maxN)
	total := make([]int, maxN)
	var refLen, hypLen int

	for i := range references {
		r, err := Compute(references[i], hypotheses[i], opts)
		if err != nil {
			return CorpusResult{}, err
		}
		res.Results = append(res.Results, r)
		scores = append(scores, r.Score)

		ref, hyp := tokenize(references[i]), tokenize(hypotheses[i])
		refLen += len(ref)
		hypLen += len(hyp)
		for n := 1; n <= maxN; n++ {
			c, t := clippedCounts(ref, hyp, n)
			clipped[n-1] += c
			total[n-1] += t
		}
	}

	if s, ok := stats.Summarize(scores); ok {
		res.Summary = &s
	}
	res.Score = pooledScore(clipped, total, weights, refLen, hypLen)
	return res, nil
}

func pooledScore(clipped, total []int, weights []float64, refLen, hypLen int) float64 {
	if hypLen == 0 {
		return 0
	}
	var logAvg float64
	for i := range clipped {
		if clipped[i] == 0 || total[i] == 0 {
			return 0
		}
		logAvg += weights[i] * math.Log(float64(clipped[i])/float64(total[i]))
	}
	return stats.Round(brevityPenalty(refLen, hypLen) * math.Exp(logAvg))
}

func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// clippedCounts returns the number of hypothesis n-grams found in the
// reference, each capped at its reference count, and the number of
// hypothesis n-grams.
func clippedCounts(ref, hyp []string, n int) (clipped, total int) {
	refCounts := ngramCounts(ref, n)
	for ng, count := range ngramCounts(hyp, n) {
		clipped += min(count, refCounts[ng])
		total += count
	}
	return clipped, total
}

func ngramCounts(tokens []string, n int) map[string]int {
	counts := make(map[string]int)
	for i := 0; i+n <= len(tokens); i++ {
		// Tokens never contain whitespace, so a space joins them unambiguously.
		counts[strings.Join(tokens[i:i+n], " ")]++
	}
	return counts
}

func brevityPenalty(refLen, hypLen int) float64 {
	if hypLen == 0 {
		return 0
	}
	if hypLen >= refLen {
		return 1
	}
	return math.Exp(1 - float64(refLen)/float64(hypLen))
}
