// Package editdist computes minimum edit distance alignments between token
// sequences and classifies every edit as a substitution, insertion or deletion.
package editdist

import "fmt"

// Op is a single alignment operation.
type Op uint8

const (
	// Match pairs two equal tokens; it costs nothing.
	Match Op = iota
	// Substitution replaces a reference token with a different hypothesis token.
	Substitution
	// Insertion is a hypothesis token with no reference counterpart.
	Insertion
	// Deletion is a reference token missing from the hypothesis.
	Deletion
)

func (o Op) String() string {
	switch o {
	case Match:
		return "match"
	case Substitution:
		return "substitution"
	case Insertion:
		return "insertion"
	case Deletion:
		return "deletion"
	default:
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
}

// Result is the outcome of aligning a reference against a hypothesis.
// Distance always equals Substitutions + Insertions + Deletions.
type Result struct {
	Distance      int `json:"distance"`
	Substitutions int `json:"substitutions"`
	Insertions    int `json:"insertions"`
	Deletions     int `json:"deletions"`
}

// Step is one entry of an alignment log. Ref and Hyp index into the
// reference and hypothesis; the side an operation does not consume is -1.
type Step struct {
	Op  Op
	Ref int
	Hyp int
}

// Align returns the minimum edit distance between ref and hyp together with
// its decomposition into substitutions, insertions and deletions.
//
// When several optimal alignments exist the decomposition follows the fixed
// precedence match, substitution, insertion, deletion while walking back from
// the end of both sequences.
func Align[T comparable](ref, hyp []T) Result {
	t := newTable(ref, hyp)

	var res Result
	backtrack(t, ref, hyp, func(op Op, _, _ int) {
		switch op {
		case Substitution:
			res.Substitutions++
		case Insertion:
			res.Insertions++
		case Deletion:
			res.Deletions++
		}
	})
	res.Distance = t.at(len(ref), len(hyp))

	if sum := res.Substitutions + res.Insertions + res.Deletions; sum != res.Distance {
		panic(fmt.Sprintf("editdist: backtrace counted %d edits for distance %d", sum, res.Distance))
	}
	return res
}

// Backtrace returns the alignment chosen by Align as an operation log in
// forward order, matches included.
func Backtrace[T comparable](ref, hyp []T) []Step {
	t := newTable(ref, hyp)

	steps := make([]Step, 0, max(len(ref), len(hyp)))
	backtrack(t, ref, hyp, func(op Op, i, j int) {
		s := Step{Op: op, Ref: i - 1, Hyp: j - 1}
		switch op {
		case Insertion:
			s.Ref = -1
		case Deletion:
			s.Hyp = -1
		}
		steps = append(steps, s)
	})

	for l, r := 0, len(steps)-1; l < r; l, r = l+1, r-1 {
		steps[l], steps[r] = steps[r], steps[l]
	}
	return steps
}

// Distance returns the minimum edit distance between ref and hyp using two
// rows of the cost table. Use Align when the decomposition is needed.
func Distance[T comparable](ref, hyp []T) int {
	m := len(hyp)
	prev := make([]int, m+1)
	curr := make([]int, m+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ref); i++ {
		curr[0] = i
		for j := 1; j <= m; j++ {
			if ref[i-1] == hyp[j-1] {
				curr[j] = prev[j-1]
				continue
			}
			curr[j] = 1 + min(prev[j], curr[j-1], prev[j-1])
		}
		prev, curr = curr, prev
	}
	return prev[m]
}

// table is the full (n+1)x(m+1) cost table stored row-major.
type table struct {
	cost []int
	cols int
}

func newTable[T comparable](ref, hyp []T) *table {
	n, m := len(ref), len(hyp)
	t := &table{cost: make([]int, (n+1)*(m+1)), cols: m + 1}

	for i := 0; i <= n; i++ {
		t.set(i, 0, i)
	}
	for j := 0; j <= m; j++ {
		t.set(0, j, j)
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if ref[i-1] == hyp[j-1] {
				t.set(i, j, t.at(i-1, j-1))
				continue
			}
			t.set(i, j, 1+min(
				t.at(i-1, j),   // deletion
				t.at(i, j-1),   // insertion
				t.at(i-1, j-1), // substitution
			))
		}
	}
	return t
}

func (t *table) at(i, j int) int { return t.cost[i*t.cols+j] }
func (t *table) set(i, j, v int) { t.cost[i*t.cols+j] = v }

// backtrack walks t from (len(ref), len(hyp)) to (0, 0) and reports every
// operation together with the cell it leaves. The checks are ordered and
// their order is the tie-break policy.
func backtrack[T comparable](t *table, ref, hyp []T, visit func(op Op, i, j int)) {
	i, j := len(ref), len(hyp)
	for i > 0 || j > 0 {
		cur := t.at(i, j)
		switch {
		case i > 0 && j > 0 && ref[i-1] == hyp[j-1]:
			visit(Match, i, j)
			i, j = i-1, j-1
		case i > 0 && j > 0 && cur == t.at(i-1, j-1)+1:
			visit(Substitution, i, j)
			i, j = i-1, j-1
		case j > 0 && cur == t.at(i, j-1)+1:
			visit(Insertion, i, j)
			j--
		default:
			visit(Deletion, i, j)
			i--
		}
	}
}
