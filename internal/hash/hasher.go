package hash

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/cespare/xxhash/v2"

	"dircmp/internal/apperr"
	"dircmp/internal/vfs"
)

const bufferSize = 8 * 1024 // 8KB read chunks

// File computes the CRC-32 (IEEE, zlib compatible) checksum of a file as 8 lowercase hex digits.
func File(fsys vfs.FS, path string) (string, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return "", apperr.IO("open", path, err)
	}
	defer file.Close()

	sum, err := Reader(file)
	if err != nil {
		return "", apperr.IO("read", path, err)
	}
	return sum, nil
}

// Reader computes the CRC-32 checksum of everything remaining in r.
func Reader(r io.Reader) (string, error) {
	h := crc32.NewIEEE()
	buf := make([]byte, bufferSize)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read: %w", err)
		}
	}

	return fmt.Sprintf("%08x", h.Sum32()), nil
}

// Line returns a fast 64-bit fingerprint of a line. Equal fingerprints do not
// imply equal lines; callers must confirm with a string comparison.
func Line(s string) uint64 {
	return xxhash.Sum64String(s)
}

// XXHashFunc is a custom hash function adapter for go-merkletree
// It converts []byte input to xxHash []byte output
func XXHashFunc(data []byte) ([]byte, error) {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, xxhash.Sum64(data))
	return buf, nil
}
