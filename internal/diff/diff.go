// Package diff computes minimal line-level edit scripts with the Myers algorithm.
package diff

import (
	"fmt"

	"dircmp/internal/hash"
)

// Op is the kind of a single edit.
type Op int

const (
	// Delete marks a line present only in the old sequence
	Delete Op = iota
	// Add marks a line present only in the new sequence
	Add
	// Same marks a line common to both
	Same
)

// String returns the string representation of an op.
func (o Op) String() string {
	switch o {
	case Delete:
		return "delete"
	case Add:
		return "add"
	case Same:
		return "same"
	default:
		return "unknown"
	}
}

// Prefix returns the unified-diff prefix character for this op.
func (o Op) Prefix() string {
	switch o {
	case Delete:
		return "-"
	case Add:
		return "+"
	default:
		return " "
	}
}

// LineOp is one step of an edit script.
type LineOp struct {
	Op      Op     `json:"type"`
	Content string `json:"content"`
}

// Lines returns a shortest edit script turning a into b.
//
// It runs the greedy O((N+M)·D) Myers search and backtracks through a
// snapshot of the furthest-reaching paths kept for every edit distance.
// When several shortest scripts exist, deletions are preferred first.
func Lines(a, b []string) []LineOp {
	n, m := len(a), len(b)

	switch {
	case n == 0 && m == 0:
		return []LineOp{}
	case n == 0:
		return allOf(Add, b)
	case m == 0:
		return allOf(Delete, a)
	}

	ha := lineHashes(a)
	hb := lineHashes(b)
	equal := func(x, y int) bool {
		return ha[x] == hb[y] && a[x] == b[y]
	}

	maxD := n + m
	offset := maxD + 1
	v := make([]int, 2*maxD+3)
	var trace []snapshot

search:
	for d := 0; d <= maxD; d++ {
		trace = append(trace, takeSnapshot(v, offset, d))

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1] // down: insertion
			} else {
				x = v[offset+k-1] + 1 // right: deletion
			}
			y := x - k

			for x < n && y < m && equal(x, y) {
				x++
				y++
			}
			v[offset+k] = x

			if x >= n && y >= m {
				break search
			}
		}
	}

	return backtrack(a, b, trace)
}

// snapshot holds V[-d-1 .. d+1] as it was at the start of round d.
type snapshot struct {
	d int
	v []int
}

func takeSnapshot(v []int, offset, d int) snapshot {
	s := snapshot{d: d, v: make([]int, 2*d+3)}
	copy(s.v, v[offset-d-1:offset+d+2])
	return s
}

func (s snapshot) at(k int) int {
	return s.v[k+s.d+1]
}

func backtrack(a, b []string, trace []snapshot) []LineOp {
	x, y := len(a), len(b)
	ops := make([]LineOp, 0, x+y)

	for d := len(trace) - 1; d >= 0; d-- {
		s := trace[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && s.at(k-1) < s.at(k+1)) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := s.at(prevK)
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			ops = append(ops, LineOp{Op: Same, Content: a[x]})
		}

		if d > 0 {
			if x == prevX {
				y--
				ops = append(ops, LineOp{Op: Add, Content: b[y]})
			} else {
				x--
				ops = append(ops, LineOp{Op: Delete, Content: a[x]})
			}
		}
	}

	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
	return ops
}

func lineHashes(lines []string) []uint64 {
	out := make([]uint64, len(lines))
	for i, line := range lines {
		out[i] = hash.Line(line)
	}
	return out
}

func allOf(op Op, lines []string) []LineOp {
	ops := make([]LineOp, len(lines))
	for i, line := range lines {
		ops[i] = LineOp{Op: op, Content: line}
	}
	return ops
}

// Apply replays ops against a and returns the resulting sequence. Same and
// Delete ops must match the lines they consume.
func Apply(a []string, ops []LineOp) ([]string, error) {
	out := make([]string, 0, len(a))
	i := 0

	for n, op := range ops {
		switch op.Op {
		case Same, Delete:
			if i >= len(a) {
				return nil, fmt.Errorf("op %d (%s) runs past the end of the input", n, op.Op)
			}
			if a[i] != op.Content {
				return nil, fmt.Errorf("op %d (%s) expects %q, input has %q", n, op.Op, op.Content, a[i])
			}
			if op.Op == Same {
				out = append(out, a[i])
			}
			i++
		case Add:
			out = append(out, op.Content)
		default:
			return nil, fmt.Errorf("op %d has unknown type %d", n, op.Op)
		}
	}

	if i != len(a) {
		return nil, fmt.Errorf("script leaves %d input lines unconsumed", len(a)-i)
	}
	return out, nil
}

// Stats counts the edits in a script.
type Stats struct {
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
	Unchanged int `json:"unchanged"`
}

func Count(ops []LineOp) Stats {
	var s Stats
	for _, op := range ops {
		switch op.Op {
		case Add:
			s.Additions++
		case Delete:
			s.Deletions++
		case Same:
			s.Unchanged++
		}
	}
	return s
}
