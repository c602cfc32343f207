package compare

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"dircmp/internal/apperr"
	"dircmp/internal/classify"
	"dircmp/internal/diff"
	"dircmp/internal/hash"
)

const (
	identicalBinary = "Binary file is identical"
	binaryA         = "Binary file A: "
	binaryB         = "Binary file B: "
)

// FileDiff is the line-level comparison of two files. Binary pairs get a
// one- or two-entry verdict instead of a line script.
type FileDiff struct {
	RelativePath string        `json:"relativePath"`
	IsText       bool          `json:"isText"`
	Diffs        []diff.LineOp `json:"diffs"`
	Error        string        `json:"error,omitempty"`
}

// HasChanges reports whether the diff holds anything other than Same entries.
func (d *FileDiff) HasChanges() bool {
	for _, op := range d.Diffs {
		if op.Op != diff.Same {
			return true
		}
	}
	return false
}

// CompareFiles diffs two files. Text pairs get a minimal line script; any
// other pair is compared by checksum. Failures land in the Error field.
func (c *Comparator) CompareFiles(pathA, pathB string) FileDiff {
	result := FileDiff{Diffs: make([]diff.LineOp, 0)}

	if !c.isRegular(pathA) {
		result.Error = "File A not exists: " + pathA
		return result
	}
	if !c.isRegular(pathB) {
		result.Error = "File B not exists: " + pathB
		return result
	}

	result.RelativePath = filepath.Base(pathA)

	textA, err := classify.File(c.fs, pathA)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	textB, err := classify.File(c.fs, pathB)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.IsText = textA && textB

	if result.IsText {
		linesA, err := c.readLines(pathA)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		linesB, err := c.readLines(pathB)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		result.Diffs = diff.Lines(linesA, linesB)
		return result
	}

	sumA, err := hash.File(c.fs, pathA)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	sumB, err := hash.File(c.fs, pathB)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	if sumA == sumB {
		result.Diffs = append(result.Diffs, diff.LineOp{Op: diff.Same, Content: identicalBinary})
	} else {
		result.Diffs = append(result.Diffs,
			diff.LineOp{Op: diff.Delete, Content: binaryA + filepath.Base(pathA)},
			diff.LineOp{Op: diff.Add, Content: binaryB + filepath.Base(pathB)},
		)
	}
	return result
}

func (c *Comparator) isRegular(path string) bool {
	info, err := c.fs.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (c *Comparator) readLines(path string) ([]string, error) {
	rc, err := c.fs.Open(path)
	if err != nil {
		return nil, apperr.IO("open", path, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, apperr.IO("read", path, fmt.Errorf("failed to read file: %w", err))
	}
	return SplitLines(string(data)), nil
}

// SplitLines splits on "\n". A trailing newline does not start an extra empty
// line; a final line without one is kept. Carriage returns are preserved.
func SplitLines(content string) []string {
	if content == "" {
		return []string{}
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}
