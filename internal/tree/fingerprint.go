// Package tree reduces a scan to a single Merkle root so whole trees can be
// compared for equality without walking both listings.
package tree

import (
	"encoding/hex"
	"fmt"
	"sort"

	mt "github.com/txaty/go-merkletree"

	"dircmp/internal/hash"
	"dircmp/internal/walker"
)

// Summary describes a scanned tree.
type Summary struct {
	Root      string `json:"root"`
	Files     int    `json:"files"`
	TotalSize uint64 `json:"totalSize"`
}

// leaf binds a relative path to its content checksum so renames change the
// root as well as edits.
type leaf struct {
	path     string
	checksum string
}

func (l leaf) Serialize() ([]byte, error) {
	return []byte(l.path + "\x00" + l.checksum), nil
}

// Build creates a Merkle tree over the scan's records sorted by relative path
// and returns its root along with file and byte totals.
func Build(scan walker.ScanResult) (*Summary, error) {
	paths := make([]string, 0, len(scan))
	var totalSize uint64
	for relPath, rec := range scan {
		paths = append(paths, relPath)
		totalSize += rec.Size
	}
	sort.Strings(paths)

	root, err := rootOf(paths, scan)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Root:      root,
		Files:     len(paths),
		TotalSize: totalSize,
	}, nil
}

func rootOf(paths []string, scan walker.ScanResult) (string, error) {
	switch len(paths) {
	case 0:
		rootHash, err := hash.XXHashFunc([]byte("empty-tree"))
		if err != nil {
			return "", fmt.Errorf("failed to create empty tree hash: %w", err)
		}
		return hex.EncodeToString(rootHash), nil
	case 1:
		// go-merkletree needs at least two blocks
		data, _ := leaf{paths[0], scan[paths[0]].Checksum}.Serialize()
		rootHash, err := hash.XXHashFunc(data)
		if err != nil {
			return "", fmt.Errorf("failed to hash leaf: %w", err)
		}
		return hex.EncodeToString(rootHash), nil
	}

	blocks := make([]mt.DataBlock, len(paths))
	for i, p := range paths {
		blocks[i] = leaf{p, scan[p].Checksum}
	}

	tree, err := mt.New(&mt.Config{
		HashFunc: hash.XXHashFunc,
		Mode:     mt.ModeTreeBuild,
	}, blocks)
	if err != nil {
		return "", fmt.Errorf("failed to build merkle tree: %w", err)
	}
	return hex.EncodeToString(tree.Root), nil
}

// FormatSize renders a byte count with a binary unit.
func FormatSize(bytes uint64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
