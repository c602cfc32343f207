package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChars_Replace(t *testing.T) {
	left, right := Chars("value := 10", "value := 20")

	assert.Equal(t, []Segment{
		{SegmentEqual, "value := ", 0, 9},
		{SegmentReplace, "1", 9, 10},
		{SegmentEqual, "0", 10, 11},
	}, left)
	assert.Equal(t, []Segment{
		{SegmentEqual, "value := ", 0, 9},
		{SegmentReplace, "2", 9, 10},
		{SegmentEqual, "0", 10, 11},
	}, right)
}

func TestChars_InsertOnly(t *testing.T) {
	left, right := Chars("abc", "abXc")

	assert.Equal(t, []Segment{{SegmentEqual, "ab", 0, 2}, {SegmentEqual, "c", 2, 3}}, left)
	assert.Equal(t, []Segment{
		{SegmentEqual, "ab", 0, 2},
		{SegmentInsert, "X", 2, 3},
		{SegmentEqual, "c", 3, 4},
	}, right)
}

func TestChars_DeleteOnly(t *testing.T) {
	left, right := Chars("abXc", "abc")

	assert.Equal(t, SegmentDelete, left[1].Kind)
	assert.Equal(t, "X", left[1].Text)
	assert.Len(t, right, 2)
}

func TestChars_EmptySides(t *testing.T) {
	left, right := Chars("", "")
	assert.Nil(t, left)
	assert.Nil(t, right)

	left, right = Chars("", "new")
	assert.Nil(t, left)
	assert.Equal(t, []Segment{{SegmentInsert, "new", 0, 3}}, right)

	left, right = Chars("old", "")
	assert.Equal(t, []Segment{{SegmentDelete, "old", 0, 3}}, left)
	assert.Nil(t, right)
}

func TestChars_Identical(t *testing.T) {
	left, right := Chars("same", "same")
	assert.Equal(t, []Segment{{SegmentEqual, "same", 0, 4}}, left)
	assert.Equal(t, left, right)
}

func TestChars_Multibyte(t *testing.T) {
	left, right := Chars("héllo wörld", "héllo world")

	assert.Equal(t, "ö", left[1].Text)
	assert.Equal(t, "o", right[1].Text)
	assert.Equal(t, 7, left[1].Start)
}

func TestChars_OverlappingPrefixSuffix(t *testing.T) {
	// "aa" -> "aaa": suffix must not reuse characters consumed by the prefix
	left, right := Chars("aa", "aaa")

	assert.Equal(t, []Segment{{SegmentEqual, "aa", 0, 2}}, left)
	assert.Equal(t, []Segment{{SegmentEqual, "aa", 0, 2}, {SegmentInsert, "a", 2, 3}}, right)
}
