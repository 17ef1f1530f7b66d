// Package runner evaluates datasets of cases with a set of scorers and
// summarizes every scorer over the whole dataset.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/datar-psa/textmetrics/api"
	"github.com/datar-psa/textmetrics/classification"
	"github.com/datar-psa/textmetrics/stats"
)

// Case is one evaluation example.
// An empty Output is generated from Input when the runner has a generator.
type Case struct {
	Name     string `json:"name,omitempty"`
	Input    string `json:"input,omitempty"`
	Expected string `json:"expected"`
	Output   string `json:"output,omitempty"`
}

// CaseResult holds the scores of one case, in scorer order.
type CaseResult struct {
	Case   Case        `json:"case"`
	Scores []api.Score `json:"scores"`
	// Error is set when the output could not be generated; Scores is empty then
	Error error `json:"-"`
}

// ScorerSummary aggregates one scorer over all cases it scored without error.
type ScorerSummary struct {
	Name    string         `json:"name"`
	Summary *stats.Summary `json:"summary"`
	Errors  int            `json:"errors"`
}

// Result is the outcome of a run.
type Result struct {
	Cases     []CaseResult    `json:"cases"`
	Summaries []ScorerSummary `json:"summaries"`
}

// Runner scores cases sequentially.
type Runner struct {
	scorers   []api.Scorer
	generator api.LLMGenerator
	logger    *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithGenerator fills in missing case outputs by prompting llm with the case input.
func WithGenerator(llm api.LLMGenerator) Option {
	return func(r *Runner) {
		r.generator = llm
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Runner applying scorers to every case.
func New(scorers []api.Scorer, opts ...Option) *Runner {
	r := &Runner{
		scorers: scorers,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run scores every case. It stops at the first case boundary after ctx is
// done and returns the cases scored so far along with ctx.Err().
func (r *Runner) Run(ctx context.Context, cases []Case) (*Result, error) {
	start := time.Now()
	res := &Result{Cases: make([]CaseResult, 0, len(cases))}

	var runErr error
	for i, c := range cases {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		res.Cases = append(res.Cases, r.runCase(ctx, i, c))
	}

	res.Summaries = r.summarize(ctx, res.Cases)
	r.logger.Info("evaluation finished",
		"cases", len(res.Cases),
		"scorers", len(r.scorers),
		"duration", time.Since(start).Round(time.Millisecond))
	return res, runErr
}

func (r *Runner) runCase(ctx context.Context, i int, c Case) CaseResult {
	log := r.logger.With("case", caseName(i, c))

	if c.Output == "" && r.generator != nil {
		out, err := r.generator.Generate(ctx, c.Input)
		if err != nil {
			log.Warn("output generation failed", "error", err)
			return CaseResult{Case: c, Error: fmt.Errorf("%w: %v", api.ErrLLMGenerationFailed, err)}
		}
		c.Output = out
	}

	in := api.ScoreInputs{Output: c.Output, Expected: c.Expected, Input: c.Input}
	scores := make([]api.Score, 0, len(r.scorers))
	for _, s := range r.scorers {
		score := s.Score(ctx, in)
		if score.Error != nil {
			log.Warn("scorer failed", "scorer", score.Name, "error", score.Error)
		} else {
			log.Debug("scored", "scorer", score.Name, "score", score.Score)
		}
		scores = append(scores, score)
	}
	return CaseResult{Case: c, Scores: scores}
}

func (r *Runner) summarize(ctx context.Context, cases []CaseResult) []ScorerSummary {
	summaries := make([]ScorerSummary, len(r.scorers))
	values := make([][]float64, len(r.scorers))

	for _, cr := range cases {
		for k, score := range cr.Scores {
			if summaries[k].Name == "" {
				summaries[k].Name = score.Name
			}
			if score.Error != nil {
				summaries[k].Errors++
				continue
			}
			values[k] = append(values[k], score.Score)
		}
		if cr.Error != nil {
			for k := range summaries {
				summaries[k].Errors++
			}
		}
	}

	for k := range summaries {
		if summaries[k].Name == "" {
			// no case reached the scorer; scorers name their score even on error
			summaries[k].Name = r.scorers[k].Score(ctx, api.ScoreInputs{}).Name
		}
		if s, ok := stats.Summarize(values[k]); ok {
			summaries[k].Summary = &s
		}
	}
	return summaries
}

// LabeledExample is a text with its gold label.
// A non-empty Predicted is used as is instead of asking the labeler.
type LabeledExample struct {
	Text      string `json:"text"`
	Label     string `json:"label"`
	Predicted string `json:"predicted,omitempty"`
}

// EvaluateLabeler labels every example with labeler and scores the
// predictions against the gold labels. labels fixes the class order of the
// report; nil means the sorted union of gold and predicted labels.
func (r *Runner) EvaluateLabeler(ctx context.Context, labeler api.Labeler, examples []LabeledExample, labels []string) (*classification.Report, error) {
	yTrue := make([]string, 0, len(examples))
	yPred := make([]string, 0, len(examples))

	for i, ex := range examples {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pred := ex.Predicted
		if pred == "" {
			if labeler == nil {
				return nil, fmt.Errorf("%w: example %d has no prediction and no labeler is configured", api.ErrLabelingFailed, i)
			}
			var err error
			pred, err = labeler.Label(ctx, ex.Text)
			if err != nil {
				return nil, fmt.Errorf("example %d: %w", i, err)
			}
			r.logger.Debug("labeled", "example", i, "label", ex.Label, "predicted", pred)
		}
		yTrue = append(yTrue, ex.Label)
		yPred = append(yPred, pred)
	}

	report, err := classification.Compute(yTrue, yPred, labels)
	if err != nil {
		return nil, err
	}
	r.logger.Info("labeler evaluated", "examples", report.TotalSamples, "accuracy", report.Accuracy, "macro_f1", report.Macro.F1)
	return report, nil
}

func caseName(i int, c Case) string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("#%d", i)
}
