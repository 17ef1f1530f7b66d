package textmetrics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/datar-psa/textmetrics"
)

func TestHeuristic(t *testing.T) {
	ctx := context.Background()
	h := textmetrics.NewHeuristic()
	in := textmetrics.ScoreInputs{Expected: "is hall b free", Output: "Is hall B free"}

	scorers := []textmetrics.Scorer{
		h.ExactMatch(textmetrics.ExactMatchOptions{Normalize: true}),
		h.WER(textmetrics.ErrorRateOptions{}),
		h.CER(textmetrics.ErrorRateOptions{}),
		h.BLEU(textmetrics.BLEUOptions{}),
	}
	for _, s := range scorers {
		score := s.Score(ctx, in)
		if score.Error != nil {
			t.Errorf("%s: unexpected error = %v", score.Name, score.Error)
			continue
		}
		if score.Score != 1 {
			t.Errorf("%s: Score = %v, want 1", score.Name, score.Score)
		}
	}

	score := h.WER(textmetrics.ErrorRateOptions{}).Score(ctx, textmetrics.ScoreInputs{Output: "x"})
	if !errors.Is(score.Error, textmetrics.ErrNoExpectedValue) {
		t.Errorf("WER without expected error = %v, want %v", score.Error, textmetrics.ErrNoExpectedValue)
	}
}

func TestGeminiLabeling_WithoutClients(t *testing.T) {
	ctx := context.Background()

	if llm := textmetrics.NewGeminiGenerator(textmetrics.WithModelName("gemini-2.5-flash")); llm != nil {
		t.Errorf("NewGeminiGenerator() without client = %v, want nil", llm)
	}

	labeling := textmetrics.NewGeminiLabeling(textmetrics.WithModelName("gemini-2.5-flash"))

	var intent textmetrics.Labeler = labeling.Intent([]string{"greeting"}, textmetrics.WithTaskDescription("greetings"))
	if _, err := intent.Label(ctx, "hi"); !errors.Is(err, textmetrics.ErrLabelingFailed) {
		t.Errorf("Intent().Label() error = %v, want %v", err, textmetrics.ErrLabelingFailed)
	}

	content := labeling.Content(textmetrics.ContentClassifierOptions{Fallback: "other"})
	if _, err := content.Label(ctx, "hi"); !errors.Is(err, textmetrics.ErrLabelingFailed) {
		t.Errorf("Content().Label() error = %v, want %v", err, textmetrics.ErrLabelingFailed)
	}
}
