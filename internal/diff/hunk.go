package diff

import "fmt"

// Line is an edit script entry with its 1-based positions. OldLine is 0 for
// additions and NewLine is 0 for deletions.
type Line struct {
	Op      Op
	Content string
	OldLine int
	NewLine int
}

// Hunk is a contiguous run of changes plus surrounding context.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// Header returns the unified-diff range header.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
}

// Number attaches old/new line numbers to every op.
func Number(ops []LineOp) []Line {
	lines := make([]Line, len(ops))
	oldLine, newLine := 0, 0

	for i, op := range ops {
		lines[i] = Line{Op: op.Op, Content: op.Content}
		if op.Op != Add {
			oldLine++
			lines[i].OldLine = oldLine
		}
		if op.Op != Delete {
			newLine++
			lines[i].NewLine = newLine
		}
	}
	return lines
}

// Hunks groups an edit script into hunks with up to context unchanged lines
// around each change. Changes separated by at most 2*context unchanged lines
// share a hunk. A script without changes yields no hunks.
func Hunks(ops []LineOp, context int) []Hunk {
	if context < 0 {
		context = 0
	}

	lines := Number(ops)

	// oldSeen[i] and newSeen[i] count lines consumed before index i
	oldSeen := make([]int, len(lines)+1)
	newSeen := make([]int, len(lines)+1)
	for i, l := range lines {
		oldSeen[i+1] = oldSeen[i]
		newSeen[i+1] = newSeen[i]
		if l.Op != Add {
			oldSeen[i+1]++
		}
		if l.Op != Delete {
			newSeen[i+1]++
		}
	}

	var hunks []Hunk
	i := 0
	for i < len(lines) {
		for i < len(lines) && lines[i].Op == Same {
			i++
		}
		if i == len(lines) {
			break
		}

		start := i - context
		if start < 0 {
			start = 0
		}

		last := i
		j := i + 1
		for j < len(lines) {
			if lines[j].Op != Same {
				last = j
				j++
				continue
			}
			k := j
			for k < len(lines) && lines[k].Op == Same {
				k++
			}
			if k == len(lines) || k-j > 2*context {
				break
			}
			j = k
		}

		stop := last + context + 1
		if stop > len(lines) {
			stop = len(lines)
		}

		h := Hunk{
			OldStart: oldSeen[start] + 1,
			OldCount: oldSeen[stop] - oldSeen[start],
			NewStart: newSeen[start] + 1,
			NewCount: newSeen[stop] - newSeen[start],
			Lines:    lines[start:stop],
		}
		// Unified diffs point an empty range at the line before it
		if h.OldCount == 0 {
			h.OldStart--
		}
		if h.NewCount == 0 {
			h.NewStart--
		}

		hunks = append(hunks, h)
		i = stop
	}

	return hunks
}
