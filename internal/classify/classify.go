// Package classify decides whether a file is compared line by line or by checksum.
package classify

import (
	"bytes"
	"io"

	"dircmp/internal/apperr"
	"dircmp/internal/vfs"
)

// SampleSize is how many leading bytes are inspected.
const SampleSize = 1024

// File reports whether the file at path is text. Empty files are text; a NUL
// byte anywhere in the first SampleSize bytes makes the file binary.
func File(fsys vfs.FS, path string) (bool, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return false, apperr.IO("open", path, err)
	}
	defer file.Close()

	isText, err := Reader(file)
	if err != nil {
		return false, apperr.IO("read", path, err)
	}
	return isText, nil
}

// Reader applies the same rule to the first SampleSize bytes of r.
func Reader(r io.Reader) (bool, error) {
	sample, err := Sample(r)
	if err != nil {
		return false, err
	}
	return IsText(sample), nil
}

// Sample reads up to SampleSize bytes from r. A short read is not an error.
func Sample(r io.Reader) ([]byte, error) {
	buf := make([]byte, SampleSize)
	n, err := io.ReadFull(r, buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = nil
	}
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// IsText is the classification rule over an already read sample.
func IsText(sample []byte) bool {
	if len(sample) > SampleSize {
		sample = sample[:SampleSize]
	}
	return bytes.IndexByte(sample, 0) < 0
}
