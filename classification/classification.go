// Package classification computes confusion matrices and precision, recall
// and F1 per label, with macro and support-weighted averages.
package classification

import (
	"fmt"
	"slices"

	"github.com/datar-psa/textmetrics/api"
	"github.com/datar-psa/textmetrics/stats"
)

// ClassMetrics are the metrics of a single label.
type ClassMetrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1_score"`
	// Support is the number of samples whose true label is this label
	Support int `json:"support"`
}

// Averages aggregates per-label metrics.
type Averages struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1_score"`
}

// Report is the outcome of scoring predicted labels against true labels.
type Report struct {
	Labels []string `json:"labels"`
	// ConfusionMatrix rows are true labels and columns predicted labels, both in Labels order
	ConfusionMatrix [][]int                 `json:"confusion_matrix"`
	PerClass        map[string]ClassMetrics `json:"per_class"`
	Macro           Averages                `json:"macro_avg"`
	Weighted        Averages                `json:"weighted_avg"`
	Accuracy        float64                 `json:"accuracy"`
	TotalSamples    int                     `json:"total_samples"`
}

// Compute scores yPred against yTrue. labels fixes the label set and its
// order; nil means the sorted union of all observed labels. Samples whose
// true or predicted label is outside the label set are not counted.
func Compute(yTrue, yPred, labels []string) (*Report, error) {
	if len(yTrue) != len(yPred) {
		return nil, fmt.Errorf("%w: %d true labels, %d predictions", api.ErrLengthMismatch, len(yTrue), len(yPred))
	}
	if labels == nil {
		labels = observedLabels(yTrue, yPred)
	}

	cm := ConfusionMatrix(yTrue, yPred, labels)
	r := &Report{
		Labels:          labels,
		ConfusionMatrix: cm,
		PerClass:        make(map[string]ClassMetrics, len(labels)),
	}

	var totalTP int
	for idx, label := range labels {
		tp := cm[idx][idx]
		var predicted, support int
		for k := range labels {
			predicted += cm[k][idx]
			support += cm[idx][k]
		}

		m := scores(tp, predicted-tp, support-tp)
		m.Support = support
		r.PerClass[label] = m

		totalTP += tp
		r.TotalSamples += support
	}

	var macro, weighted Averages
	for _, label := range labels {
		m := r.PerClass[label]
		macro.Precision += m.Precision
		macro.Recall += m.Recall
		macro.F1 += m.F1
		weighted.Precision += m.Precision * float64(m.Support)
		weighted.Recall += m.Recall * float64(m.Support)
		weighted.F1 += m.F1 * float64(m.Support)
	}
	r.Macro = scaled(macro, max(len(labels), 1))
	r.Weighted = scaled(weighted, max(r.TotalSamples, 1))
	r.Accuracy = stats.Round(float64(totalTP) / float64(max(r.TotalSamples, 1)))

	return r, nil
}

// ConfusionMatrix counts (true, predicted) pairs by label index. Pairs with a
// label outside labels are skipped; extra elements of the longer slice are ignored.
func ConfusionMatrix(yTrue, yPred, labels []string) [][]int {
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}

	cm := make([][]int, len(labels))
	for i := range cm {
		cm[i] = make([]int, len(labels))
	}

	for i := range min(len(yTrue), len(yPred)) {
		t, okT := index[yTrue[i]]
		p, okP := index[yPred[i]]
		if okT && okP {
			cm[t][p]++
		}
	}
	return cm
}

func observedLabels(yTrue, yPred []string) []string {
	labels := slices.Concat(yTrue, yPred)
	if len(labels) == 0 {
		return []string{}
	}
	slices.Sort(labels)
	return slices.Compact(labels)
}

func scores(tp, fp, fn int) ClassMetrics {
	var m ClassMetrics
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	m.Precision = stats.Round(m.Precision)
	m.Recall = stats.Round(m.Recall)
	m.F1 = stats.Round(m.F1)
	return m
}

func scaled(a Averages, n int) Averages {
	return Averages{
		Precision: stats.Round(a.Precision / float64(n)),
		Recall:    stats.Round(a.Recall / float64(n)),
		F1:        stats.Round(a.F1 / float64(n)),
	}
}
