package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	language "cloud.google.com/go/language/apiv1"
	"google.golang.org/genai"

	"github.com/datar-psa/textmetrics"
	"github.com/datar-psa/textmetrics/bleu"
	"github.com/datar-psa/textmetrics/errorrate"
	"github.com/datar-psa/textmetrics/internal/config"
	"github.com/datar-psa/textmetrics/internal/dataset"
	"github.com/datar-psa/textmetrics/runner"
	"github.com/datar-psa/textmetrics/stats"
)

const usage = `Usage: textmetrics [flags] <command> <dataset.jsonl>

Commands:
  wer       word and character error rates of {"reference","hypothesis"} lines
  bleu      sentence and corpus BLEU of {"reference","hypothesis"} lines
  classify  precision, recall and F1 of {"text","label","predicted"} lines
  eval      heuristic scorers over {"input","expected","output"} lines

Flags:
`

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	cfg      *config.Config
	align    bool
	generate bool
	logger   *slog.Logger
	stdout   io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("textmetrics", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to YAML config file")
	envFile := fs.String("env", ".env", "path to .env file with GOOGLE_PROJECT_ID and GOOGLE_REGION")
	output := fs.String("output", "", "output format, json or text (overrides config)")
	align := fs.Bool("align", false, "wer: print the word alignment of every pair (text output)")
	generate := fs.Bool("generate", false, "eval: generate missing outputs from inputs with Gemini")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(stderr, "config: %v\n", err)
			return 1
		}
	}
	cfg.ApplyEnv(*envFile)
	if *output != "" {
		cfg.Output = *output
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "config validation: %v\n", err)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: config.ParseLogLevel(cfg.LogLevel)}))
	opts := options{cfg: cfg, align: *align, generate: *generate, logger: logger, stdout: stdout}

	command, path := fs.Arg(0), fs.Arg(1)
	var err error
	switch command {
	case "wer":
		err = runWER(path, opts)
	case "bleu":
		err = runBLEU(path, opts)
	case "classify":
		err = runClassify(ctx, path, opts)
	case "eval":
		err = runEval(ctx, path, opts)
	default:
		err = fmt.Errorf("%w: unknown command %q", errUsage, command)
	}

	if err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, err)
			fs.Usage()
			return 2
		}
		logger.Error("command failed", "command", command, "error", err)
		return 1
	}
	return 0
}

func runWER(path string, opts options) error {
	pairs, err := dataset.LoadPairs(path)
	if err != nil {
		return err
	}
	ropts := opts.cfg.ErrorRateOptions()
	batch := errorrate.ComputeBatch(pairs, ropts)
	opts.logger.Debug("error rates computed", "pairs", len(pairs), "undefined_wer", batch.UndefinedWER)

	if opts.cfg.Output == "json" {
		return writeJSON(opts.stdout, batch)
	}

	w := opts.stdout
	fmt.Fprintf(w, "pairs: %d  undefined WER: %d\n", len(batch.Records), batch.UndefinedWER)
	writeSummary(w, "WER", batch.WERSummary)
	writeSummary(w, "CER", batch.CERSummary)
	if opts.align {
		for i, p := range pairs {
			rec := batch.Records[i]
			fmt.Fprintf(w, "\n#%d WER %s  CER %.4f  S=%d I=%d D=%d\n", i, rec.WER, rec.CER, rec.Substitutions, rec.Insertions, rec.Deletions)
			fmt.Fprintln(w, errorrate.AlignWords(p.Reference, p.Hypothesis, ropts))
		}
	}
	return nil
}

func runBLEU(path string, opts options) error {
	pairs, err := dataset.LoadPairs(path)
	if err != nil {
		return err
	}
	refs := make([]string, len(pairs))
	hyps := make([]string, len(pairs))
	for i, p := range pairs {
		refs[i], hyps[i] = p.Reference, p.Hypothesis
	}

	res, err := bleu.ComputeCorpus(refs, hyps, opts.cfg.BLEUOptions())
	if err != nil {
		return err
	}

	if opts.cfg.Output == "json" {
		return writeJSON(opts.stdout, res)
	}
	fmt.Fprintf(opts.stdout, "sentences: %d  corpus BLEU: %.4f\n", len(res.Results), res.Score)
	writeSummary(opts.stdout, "BLEU", res.Summary)
	return nil
}

func runClassify(ctx context.Context, path string, opts options) error {
	examples, err := dataset.LoadLabeled(path)
	if err != nil {
		return err
	}

	labeler, closeLabeler, err := newLabeler(ctx, opts.cfg)
	if err != nil {
		return err
	}
	defer closeLabeler()

	r := runner.New(nil, runner.WithLogger(opts.logger))
	var labels []string
	if len(opts.cfg.Classify.Labels) > 0 {
		labels = opts.cfg.Classify.Labels
	}
	report, err := r.EvaluateLabeler(ctx, labeler, examples, labels)
	if err != nil {
		return err
	}

	if opts.cfg.Output == "json" {
		return writeJSON(opts.stdout, report)
	}
	return report.WriteText(opts.stdout)
}

func runEval(ctx context.Context, path string, opts options) error {
	cases, err := dataset.LoadCases(path)
	if err != nil {
		return err
	}

	h := textmetrics.NewHeuristic()
	rate := textmetrics.ErrorRateOptions{SkipNormalization: opts.cfg.ErrorRate.SkipNormalization}
	scorers := []textmetrics.Scorer{
		h.ExactMatch(textmetrics.ExactMatchOptions{Normalize: !opts.cfg.ErrorRate.SkipNormalization}),
		h.WER(rate),
		h.CER(rate),
		h.BLEU(textmetrics.BLEUOptions{MaxN: opts.cfg.BLEU.MaxN, Weights: opts.cfg.BLEU.Weights}),
	}

	runOpts := []runner.Option{runner.WithLogger(opts.logger)}
	if opts.generate {
		client, err := newGenaiClient(ctx, opts.cfg)
		if err != nil {
			return err
		}
		llm := textmetrics.NewGeminiGenerator(textmetrics.WithGenaiClient(client), textmetrics.WithModelName(opts.cfg.Gemini.Model))
		runOpts = append(runOpts, runner.WithGenerator(llm))
	}

	// a canceled run still reports the cases scored before it stopped
	res, runErr := runner.New(scorers, runOpts...).Run(ctx, cases)
	if res == nil {
		return runErr
	}

	if opts.cfg.Output == "json" {
		if err := writeJSON(opts.stdout, res.Summaries); err != nil {
			return err
		}
		return runErr
	}
	fmt.Fprintf(opts.stdout, "cases: %d\n", len(res.Cases))
	for _, s := range res.Summaries {
		writeSummary(opts.stdout, s.Name, s.Summary)
		if s.Errors > 0 {
			fmt.Fprintf(opts.stdout, "  %s errors: %d\n", s.Name, s.Errors)
		}
	}
	return runErr
}

// newLabeler builds the configured labeler. A nil labeler means every
// example must carry its own prediction.
func newLabeler(ctx context.Context, cfg *config.Config) (textmetrics.Labeler, func(), error) {
	noop := func() {}

	switch cfg.Classify.Labeler {
	case "gemini":
		client, err := newGenaiClient(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		var intentOpts []textmetrics.IntentLabelerOption
		if cfg.Classify.TaskDescription != "" {
			intentOpts = append(intentOpts, textmetrics.WithTaskDescription(cfg.Classify.TaskDescription))
		}
		labeling := textmetrics.NewGeminiLabeling(textmetrics.WithGenaiClient(client), textmetrics.WithModelName(cfg.Gemini.Model))
		return labeling.Intent(cfg.Classify.Labels, intentOpts...), noop, nil

	case "language":
		client, err := language.NewClient(ctx)
		if err != nil {
			return nil, noop, fmt.Errorf("creating language client: %w", err)
		}
		labeling := textmetrics.NewGeminiLabeling(textmetrics.WithLanguageClient(client))
		content := labeling.Content(textmetrics.ContentClassifierOptions{
			MinConfidence: cfg.Classify.MinConfidence,
			Fallback:      cfg.Classify.Fallback,
		})
		return content, func() { _ = client.Close() }, nil

	default:
		return nil, noop, nil
	}
}

func newGenaiClient(ctx context.Context, cfg *config.Config) (*genai.Client, error) {
	if cfg.Gemini.Project == "" {
		return nil, fmt.Errorf("gemini.project must be set (or GOOGLE_PROJECT_ID)")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend:  genai.BackendVertexAI,
		Project:  cfg.Gemini.Project,
		Location: cfg.Gemini.Location,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return client, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSummary(w io.Writer, name string, s *stats.Summary) {
	if s == nil {
		fmt.Fprintf(w, "%-10s n/a\n", name)
		return
	}
	fmt.Fprintf(w, "%-10s mean %.4f  median %.4f  std %.4f  min %.4f  max %.4f  (n=%d)\n",
		name, s.Mean, s.Median, s.StdDev, s.Min, s.Max, s.Count)
}
