// Package errorrate computes Word Error Rate and Character Error Rate of a
// hypothesis transcript against a reference, one pair at a time or in batches.
package errorrate

import (
	"github.com/datar-psa/textmetrics/editdist"
	"github.com/datar-psa/textmetrics/stats"
	"github.com/datar-psa/textmetrics/textnorm"
)

// UndefinedPolicy decides how a batch folds undefined WER values into its summary.
type UndefinedPolicy int

const (
	// ExcludeUndefined leaves undefined values out of the WER summary.
	ExcludeUndefined UndefinedPolicy = iota
	// CapUndefined replaces undefined values with Options.Cap.
	CapUndefined
	// PropagateUndefined drops the WER summary if any value is undefined.
	PropagateUndefined
)

// DefaultCap is the value used by CapUndefined when Options.Cap is not set.
const DefaultCap = 1.0

// Options configures error rate computation
type Options struct {
	// SkipNormalization uses the texts verbatim, only split on whitespace
	SkipNormalization bool
	// Undefined selects how batches summarize undefined WER values
	Undefined UndefinedPolicy
	// Cap is the substitute for undefined WER values under CapUndefined; <= 0 means DefaultCap
	Cap float64
}

func (o Options) normalize() bool { return !o.SkipNormalization }

func (o Options) capValue() float64 {
	if o.Cap <= 0 {
		return DefaultCap
	}
	return o.Cap
}

// Record holds the error rates of one reference/hypothesis pair.
// The edit counts and lengths are word level.
type Record struct {
	WER           Rate    `json:"wer"`
	CER           float64 `json:"cer"`
	Substitutions int     `json:"substitutions"`
	Insertions    int     `json:"insertions"`
	Deletions     int     `json:"deletions"`
	RefLength     int     `json:"ref_length"`
	HypLength     int     `json:"hyp_length"`

	Word editdist.Result `json:"word"`
	Char editdist.Result `json:"char"`
}

// Compute scores hypothesis against reference.
//
// WER is the word edit distance over the reference word count. It is 0 when
// both texts are empty and undefined when only the reference is empty.
// CER is the character edit distance, with whitespace removed, over the
// reference character count floored at 1.
// Rates are rounded to 4 decimal digits.
func Compute(reference, hypothesis string, opts Options) Record {
	refWords := textnorm.Words(reference, opts.normalize())
	hypWords := textnorm.Words(hypothesis, opts.normalize())
	word := editdist.Align(refWords, hypWords)

	refChars := textnorm.Chars(reference, opts.normalize())
	hypChars := textnorm.Chars(hypothesis, opts.normalize())
	char := editdist.Align(refChars, hypChars)

	return Record{
		WER:           wordRate(word.Distance, len(refWords), len(hypWords)),
		CER:           stats.Round(float64(char.Distance) / float64(max(len(refChars), 1))),
		Substitutions: word.Substitutions,
		Insertions:    word.Insertions,
		Deletions:     word.Deletions,
		RefLength:     len(refWords),
		HypLength:     len(hypWords),
		Word:          word,
		Char:          char,
	}
}

func wordRate(distance, refLen, hypLen int) Rate {
	if refLen == 0 {
		if hypLen == 0 {
			return Finite(0)
		}
		return Undefined()
	}
	return Finite(stats.Round(float64(distance) / float64(refLen)))
}

// Pair is a reference transcript and the hypothesis scored against it.
type Pair struct {
	Reference  string `json:"reference"`
	Hypothesis string `json:"hypothesis"`
}

// Batch holds per-pair records in input order and summaries of their rates.
// A nil summary means there was nothing to summarize.
type Batch struct {
	Records    []Record       `json:"results"`
	WERSummary *stats.Summary `json:"wer_stats,omitempty"`
	CERSummary *stats.Summary `json:"cer_stats,omitempty"`
	// UndefinedWER counts records whose WER is undefined
	UndefinedWER int `json:"undefined_wer"`
}

// ComputeBatch scores every pair independently and summarizes the results.
// Degenerate pairs never abort the batch; undefined WER values are folded
// according to opts.Undefined.
func ComputeBatch(pairs []Pair, opts Options) Batch {
	b := Batch{Records: make([]Record, 0, len(pairs))}

	wers := make([]float64, 0, len(pairs))
	cers := make([]float64, 0, len(pairs))
	for _, p := range pairs {
		r := Compute(p.Reference, p.Hypothesis, opts)
		b.Records = append(b.Records, r)
		cers = append(cers, r.CER)

		v, ok := r.WER.Value()
		if !ok {
			b.UndefinedWER++
			if opts.Undefined == CapUndefined {
				wers = append(wers, opts.capValue())
			}
			continue
		}
		wers = append(wers, v)
	}

	if !(opts.Undefined == PropagateUndefined && b.UndefinedWER > 0) {
		b.WERSummary = summarize(wers)
	}
	b.CERSummary = summarize(cers)
	return b
}

func summarize(values []float64) *stats.Summary {
	s, ok := stats.Summarize(values)
	if !ok {
		return nil
	}
	return &s
}
