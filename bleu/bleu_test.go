package bleu

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/datar-psa/textmetrics/api"
	"github.com/datar-psa/textmetrics/stats"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name       string
		opts       Options
		reference  string
		hypothesis string
		want       Result
	}{
		{
			name:       "identical",
			reference:  "the cat sat on the mat",
			hypothesis: "the cat sat on the mat",
			want:       Result{Score: 1, Precisions: []float64{1, 1, 1, 1}, BrevityPenalty: 1, RefLength: 6, HypLength: 6},
		},
		{
			name:       "no matching 4-gram",
			reference:  "the cat sat on the mat",
			hypothesis: "the cat is on the mat",
			want:       Result{Score: 0, Precisions: []float64{0.8333, 0.6, 0.25, 0}, BrevityPenalty: 1, RefLength: 6, HypLength: 6},
		},
		{
			name:       "short hypothesis keeps brevity penalty",
			reference:  "the lecture will be in hall a",
			hypothesis: "lecture is in hall a",
			want:       Result{Score: 0, Precisions: []float64{0.8, 0.5, 0.3333, 0}, BrevityPenalty: 0.6703, RefLength: 7, HypLength: 5},
		},
		{
			name:       "zero unigram precision pads remaining orders",
			reference:  "the cat",
			hypothesis: "dog",
			want:       Result{Score: 0, Precisions: []float64{0, 0, 0, 0}, BrevityPenalty: 0.3679, RefLength: 2, HypLength: 1},
		},
		{
			name:       "longer hypothesis",
			reference:  "a b c d",
			hypothesis: "a b c d e",
			want:       Result{Score: 0.6687, Precisions: []float64{0.8, 0.75, 0.6667, 0.5}, BrevityPenalty: 1, RefLength: 4, HypLength: 5},
		},
		{
			name:       "case insensitive",
			reference:  "The Cat",
			hypothesis: "the cat",
			opts:       Options{MaxN: 2},
			want:       Result{Score: 1, Precisions: []float64{1, 1}, BrevityPenalty: 1, RefLength: 2, HypLength: 2},
		},
		{
			name:       "empty hypothesis",
			reference:  "a b c d",
			hypothesis: "",
			want:       Result{Score: 0, Precisions: []float64{0, 0, 0, 0}, BrevityPenalty: 0, RefLength: 4, HypLength: 0},
		},
		{
			name:       "bigram",
			reference:  "the cat sat on the mat",
			hypothesis: "the cat is on the mat",
			opts:       Options{MaxN: 2},
			want:       Result{Score: 0.7071, Precisions: []float64{0.8333, 0.6}, BrevityPenalty: 1, RefLength: 6, HypLength: 6},
		},
		{
			name:       "custom weights",
			reference:  "the cat sat on the mat",
			hypothesis: "the cat sat on mat",
			opts:       Options{MaxN: 2, Weights: []float64{0.75, 0.25}},
			want:       Result{Score: 0.7619, Precisions: []float64{1, 0.75}, BrevityPenalty: 0.8187, RefLength: 6, HypLength: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(tt.reference, tt.hypothesis, tt.opts)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Compute() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompute_InvalidOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr error
	}{
		{name: "negative order", opts: Options{MaxN: -1}, wantErr: ErrInvalidOrder},
		{name: "too few weights", opts: Options{MaxN: 3, Weights: []float64{0.5, 0.5}}, wantErr: ErrInvalidWeights},
		{name: "weights for default order", opts: Options{Weights: []float64{1}}, wantErr: ErrInvalidWeights},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute("a b", "a b", tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Compute() error = %v, want %v", err, tt.wantErr)
			}
			if err := tt.opts.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if err := (Options{}).Validate(); err != nil {
		t.Errorf("Validate() of zero options error = %v", err)
	}
}

func TestComputeCorpus(t *testing.T) {
	refs := []string{"a b c d", "the cat sat on the mat"}
	hyps := []string{"a b c d e", "the cat sat on mat"}

	got, err := ComputeCorpus(refs, hyps, Options{})
	if err != nil {
		t.Fatalf("ComputeCorpus() error = %v", err)
	}

	want := CorpusResult{
		Results: []Result{
			{Score: 0.6687, Precisions: []float64{0.8, 0.75, 0.6667, 0.5}, BrevityPenalty: 1, RefLength: 4, HypLength: 5},
			{Score: 0.5789, Precisions: []float64{1, 0.75, 0.6667, 0.5}, BrevityPenalty: 0.8187, RefLength: 6, HypLength: 5},
		},
		Summary: &stats.Summary{Count: 2, Mean: 0.6238, Median: 0.6238, StdDev: 0.0449, Min: 0.5789, Max: 0.6687},
		Score:   0.6887,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ComputeCorpus() mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeCorpus_Degenerate(t *testing.T) {
	t.Run("empty corpus", func(t *testing.T) {
		got, err := ComputeCorpus(nil, nil, Options{})
		if err != nil {
			t.Fatalf("ComputeCorpus() error = %v", err)
		}
		if got.Summary != nil || got.Score != 0 || len(got.Results) != 0 {
			t.Errorf("ComputeCorpus(nil, nil) = %+v, want empty result", got)
		}
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := ComputeCorpus([]string{"a"}, nil, Options{})
		if !errors.Is(err, api.ErrLengthMismatch) {
			t.Errorf("ComputeCorpus() error = %v, want %v", err, api.ErrLengthMismatch)
		}
	})

	t.Run("pooled order without matches", func(t *testing.T) {
		got, err := ComputeCorpus([]string{"the cat sat on the mat"}, []string{"the cat is on the mat"}, Options{})
		if err != nil {
			t.Fatalf("ComputeCorpus() error = %v", err)
		}
		if got.Score != 0 {
			t.Errorf("Score = %v, want 0", got.Score)
		}
	})
}
