package diff

// SegmentKind classifies a piece of a changed line.
type SegmentKind int

const (
	SegmentEqual SegmentKind = iota
	SegmentDelete
	SegmentInsert
	SegmentReplace
)

// Segment is a run of runes inside one side of a changed line pair.
// Start and End are rune offsets, End exclusive.
type Segment struct {
	Kind  SegmentKind
	Text  string
	Start int
	End   int
}

// Chars splits a replaced line pair into a common prefix, the differing middle
// and a common suffix. It is a highlight aid, not a minimal character diff.
func Chars(left, right string) (leftSegs, rightSegs []Segment) {
	l, r := []rune(left), []rune(right)

	switch {
	case len(l) == 0 && len(r) == 0:
		return nil, nil
	case len(l) == 0:
		return nil, []Segment{{SegmentInsert, right, 0, len(r)}}
	case len(r) == 0:
		return []Segment{{SegmentDelete, left, 0, len(l)}}, nil
	case left == right:
		return []Segment{{SegmentEqual, left, 0, len(l)}}, []Segment{{SegmentEqual, right, 0, len(r)}}
	}

	minLen := len(l)
	if len(r) < minLen {
		minLen = len(r)
	}

	prefix := 0
	for prefix < minLen && l[prefix] == r[prefix] {
		prefix++
	}

	suffix := 0
	for suffix < minLen-prefix && l[len(l)-1-suffix] == r[len(r)-1-suffix] {
		suffix++
	}

	if prefix > 0 {
		text := string(l[:prefix])
		leftSegs = append(leftSegs, Segment{SegmentEqual, text, 0, prefix})
		rightSegs = append(rightSegs, Segment{SegmentEqual, text, 0, prefix})
	}

	lMid := l[prefix : len(l)-suffix]
	rMid := r[prefix : len(r)-suffix]
	switch {
	case len(lMid) > 0 && len(rMid) > 0:
		leftSegs = append(leftSegs, Segment{SegmentReplace, string(lMid), prefix, prefix + len(lMid)})
		rightSegs = append(rightSegs, Segment{SegmentReplace, string(rMid), prefix, prefix + len(rMid)})
	case len(lMid) > 0:
		leftSegs = append(leftSegs, Segment{SegmentDelete, string(lMid), prefix, prefix + len(lMid)})
	case len(rMid) > 0:
		rightSegs = append(rightSegs, Segment{SegmentInsert, string(rMid), prefix, prefix + len(rMid)})
	}

	if suffix > 0 {
		leftSegs = append(leftSegs, Segment{SegmentEqual, string(l[len(l)-suffix:]), len(l) - suffix, len(l)})
		rightSegs = append(rightSegs, Segment{SegmentEqual, string(r[len(r)-suffix:]), len(r) - suffix, len(r)})
	}

	return leftSegs, rightSegs
}
