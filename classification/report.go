package classification

import (
	"fmt"
	"io"
	"strings"
)

const ruleWidth = 72

// WriteText writes the report as a table of label, precision, recall, F1 and
// support, followed by the macro and weighted averages and the accuracy.
func (r *Report) WriteText(w io.Writer) error {
	rule := strings.Repeat("-", ruleWidth)

	var b strings.Builder
	fmt.Fprintf(&b, "%-30s %10s %10s %10s %10s\n", "Label", "Precision", "Recall", "F1", "Support")
	b.WriteString(rule + "\n")
	for _, label := range r.Labels {
		m := r.PerClass[label]
		fmt.Fprintf(&b, "%-30s %10.4f %10.4f %10.4f %10d\n", label, m.Precision, m.Recall, m.F1, m.Support)
	}
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "%-30s %10.4f %10.4f %10.4f\n", "Macro Avg", r.Macro.Precision, r.Macro.Recall, r.Macro.F1)
	fmt.Fprintf(&b, "%-30s %10.4f %10.4f %10.4f\n", "Weighted Avg", r.Weighted.Precision, r.Weighted.Recall, r.Weighted.F1)
	fmt.Fprintf(&b, "\nAccuracy: %.4f  |  Total samples: %d\n", r.Accuracy, r.TotalSamples)

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Report) String() string {
	var b strings.Builder
	_ = r.WriteText(&b)
	return b.String()
}
