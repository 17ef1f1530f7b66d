package heuristic

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/datar-psa/textmetrics/api"
	"github.com/datar-psa/textmetrics/bleu"
)

func TestWER(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		opts      ErrorRateOptions
		output    string
		expected  string
		wantErr   error
		wantScore float64
	}{
		{name: "perfect transcript", output: "this is a test", expected: "this is a test", wantScore: 1.0},
		{name: "one deletion", output: "this is test", expected: "this is a test", wantScore: 0.75},
		{name: "worse than reference length clamps to zero", output: "a b c d e", expected: "x", wantScore: 0.0},
		{name: "verbatim case mismatch", opts: ErrorRateOptions{SkipNormalization: true}, output: "Hello world", expected: "hello world", wantScore: 0.5},
		{name: "reference normalizes to empty", output: "hello", expected: "...", wantScore: 0.0},
		{name: "no expected value", output: "hello", expected: "", wantErr: api.ErrNoExpectedValue, wantScore: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WER(tt.opts).Score(ctx, api.ScoreInputs{Output: tt.output, Expected: tt.expected})

			if result.Error != tt.wantErr {
				t.Errorf("WER.Score() error = %v, wantErr %v", result.Error, tt.wantErr)
			}
			if result.Score != tt.wantScore {
				t.Errorf("WER.Score() score = %v, wantScore %v", result.Score, tt.wantScore)
			}
			if result.Name != "WER" {
				t.Errorf("WER.Score() name = %v, want 'WER'", result.Name)
			}
			if result.Metadata == nil {
				t.Error("WER.Score() metadata is nil")
			}
		})
	}
}

func TestWER_UndefinedMetadata(t *testing.T) {
	result := WER(ErrorRateOptions{}).Score(context.Background(), api.ScoreInputs{Output: "hello", Expected: "?!"})

	if undefined, _ := result.Metadata["wer_undefined"].(bool); !undefined {
		t.Errorf("metadata wer_undefined = %v, want true", result.Metadata["wer_undefined"])
	}
	if wer, _ := result.Metadata["wer"].(float64); !math.IsInf(wer, 1) {
		t.Errorf("metadata wer = %v, want +Inf", result.Metadata["wer"])
	}
}

func TestCER(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		output    string
		expected  string
		wantScore float64
	}{
		{name: "identical", output: "cat", expected: "cat", wantScore: 1.0},
		{name: "one substitution", output: "cot", expected: "cat", wantScore: 0.6667},
		{name: "spaces ignored", output: "c a t", expected: "cat", wantScore: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CER(ErrorRateOptions{}).Score(ctx, api.ScoreInputs{Output: tt.output, Expected: tt.expected})
			if result.Error != nil {
				t.Fatalf("CER.Score() error = %v", result.Error)
			}
			if math.Abs(result.Score-tt.wantScore) > 1e-9 {
				t.Errorf("CER.Score() score = %v, wantScore %v", result.Score, tt.wantScore)
			}
			if result.Name != "CER" {
				t.Errorf("CER.Score() name = %v, want 'CER'", result.Name)
			}
			if got := result.Metadata["cer"]; got == nil {
				t.Error("CER.Score() metadata missing cer")
			}
		})
	}
}

func TestBLEU(t *testing.T) {
	ctx := context.Background()

	t.Run("pairs", func(t *testing.T) {
		tests := []struct {
			name      string
			opts      BLEUOptions
			output    string
			expected  string
			wantScore float64
		}{
			{name: "identical", output: "the cat sat on the mat", expected: "the cat sat on the mat", wantScore: 1.0},
			{name: "bigram", opts: BLEUOptions{MaxN: 2}, output: "the cat is on the mat", expected: "the cat sat on the mat", wantScore: 0.7071},
			{name: "empty output", output: "", expected: "the cat", wantScore: 0.0},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				result := BLEU(tt.opts).Score(ctx, api.ScoreInputs{Output: tt.output, Expected: tt.expected})
				if result.Error != nil {
					t.Fatalf("BLEU.Score() error = %v", result.Error)
				}
				if result.Score != tt.wantScore {
					t.Errorf("BLEU.Score() score = %v, wantScore %v", result.Score, tt.wantScore)
				}
				if _, ok := result.Metadata["precisions"].([]float64); !ok {
					t.Error("BLEU.Score() metadata missing precisions")
				}
			})
		}
	})

	t.Run("invalid weights", func(t *testing.T) {
		result := BLEU(BLEUOptions{MaxN: 2, Weights: []float64{1}}).Score(ctx, api.ScoreInputs{Output: "a", Expected: "a"})
		if !errors.Is(result.Error, bleu.ErrInvalidWeights) {
			t.Errorf("BLEU.Score() error = %v, want %v", result.Error, bleu.ErrInvalidWeights)
		}
	})

	t.Run("no expected value", func(t *testing.T) {
		result := BLEU(BLEUOptions{}).Score(ctx, api.ScoreInputs{Output: "a"})
		if result.Error != api.ErrNoExpectedValue {
			t.Errorf("BLEU.Score() error = %v, want %v", result.Error, api.ErrNoExpectedValue)
		}
	})
}
