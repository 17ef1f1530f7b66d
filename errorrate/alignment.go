package errorrate

import (
	"strings"
	"unicode/utf8"

	"github.com/datar-psa/textmetrics/editdist"
	"github.com/datar-psa/textmetrics/textnorm"
)

// gap stands in for the missing side of an insertion or deletion.
const gap = "***"

// Alignment is the word-level alignment behind a Record.
type Alignment struct {
	Ref   []string
	Hyp   []string
	Steps []editdist.Step
}

// AlignWords returns the word alignment Compute uses for its edit counts.
func AlignWords(reference, hypothesis string, opts Options) Alignment {
	ref := textnorm.Words(reference, opts.normalize())
	hyp := textnorm.Words(hypothesis, opts.normalize())
	return Alignment{Ref: ref, Hyp: hyp, Steps: editdist.Backtrace(ref, hyp)}
}

// String renders the alignment as REF, HYP and OPS rows with one padded
// column per step. OPS marks substitutions S, insertions I and deletions D.
//
//	REF: is  hall b  free ***
//	HYP: *** hall be free now
//	OPS: D        S       I
func (a Alignment) String() string {
	var ref, hyp, ops strings.Builder
	ref.WriteString("REF:")
	hyp.WriteString("HYP:")
	ops.WriteString("OPS:")

	for _, s := range a.Steps {
		r, h, mark := gap, gap, " "
		if s.Ref >= 0 {
			r = a.Ref[s.Ref]
		}
		if s.Hyp >= 0 {
			h = a.Hyp[s.Hyp]
		}
		switch s.Op {
		case editdist.Substitution:
			mark = "S"
		case editdist.Insertion:
			mark = "I"
		case editdist.Deletion:
			mark = "D"
		}

		width := max(utf8.RuneCountInString(r), utf8.RuneCountInString(h))
		writeCell(&ref, r, width)
		writeCell(&hyp, h, width)
		writeCell(&ops, mark, width)
	}

	return strings.Join([]string{
		strings.TrimRight(ref.String(), " "),
		strings.TrimRight(hyp.String(), " "),
		strings.TrimRight(ops.String(), " "),
	}, "\n")
}

func writeCell(b *strings.Builder, s string, width int) {
	b.WriteByte(' ')
	b.WriteString(s)
	b.WriteString(strings.Repeat(" ", width-utf8.RuneCountInString(s)))
}
