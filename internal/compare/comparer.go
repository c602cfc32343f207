// Package compare classifies the differences between two directory trees and
// between two individual files.
package compare

import (
	"io"
	"log"
	"sort"

	"golang.org/x/sync/errgroup"

	"dircmp/internal/pool"
	"dircmp/internal/vfs"
	"dircmp/internal/walker"
)

type Options struct {
	Workers  int // 0 picks the CPU count, never fewer than pool.MinWorkers
	Exclude  []string
	Logger   *log.Logger
	Observer walker.Observer
	FS       vfs.FS
}

// Comparator owns a worker pool shared by every scan it issues. It holds no
// state between calls and is safe for concurrent use. Call Close when done.
type Comparator struct {
	pool   *pool.Pool
	walker *walker.Walker
	fs     vfs.FS
	logger *log.Logger
}

func New(opts Options) *Comparator {
	if opts.FS == nil {
		opts.FS = vfs.OS{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}

	p := pool.New(opts.Workers)
	return &Comparator{
		pool: p,
		walker: walker.New(p, walker.Options{
			FS:       opts.FS,
			Exclude:  opts.Exclude,
			Logger:   opts.Logger,
			Observer: opts.Observer,
		}),
		fs:     opts.FS,
		logger: opts.Logger,
	}
}

// Close drains pending work and stops the workers.
func (c *Comparator) Close() {
	c.pool.Close()
}

// Workers reports the size of the underlying pool.
func (c *Comparator) Workers() int {
	return c.pool.Size()
}

// Scan fingerprints every regular file below root.
func (c *Comparator) Scan(root string, ignoreHidden bool) (walker.ScanResult, error) {
	return c.walker.Scan(root, ignoreHidden)
}

// FolderDiff partitions the union of two trees' relative paths. Records in
// Deleted, Modified and Same come from tree A, records in Added from tree B.
type FolderDiff struct {
	Added      []walker.FileRecord `json:"added"`
	Deleted    []walker.FileRecord `json:"deleted"`
	Modified   []walker.FileRecord `json:"modified"`
	Same       []walker.FileRecord `json:"same"`
	TotalFiles uint64              `json:"totalFiles"`
	Error      string              `json:"error,omitempty"`
}

func (d *FolderDiff) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Modified) > 0 || len(d.Deleted) > 0
}

func emptyFolderDiff() FolderDiff {
	return FolderDiff{
		Added:    make([]walker.FileRecord, 0),
		Deleted:  make([]walker.FileRecord, 0),
		Modified: make([]walker.FileRecord, 0),
		Same:     make([]walker.FileRecord, 0),
	}
}

// CompareFolders scans both roots concurrently and classifies every path.
// A scan failure is reported in the Error field with all lists empty.
func (c *Comparator) CompareFolders(rootA, rootB string, ignoreHidden bool) FolderDiff {
	var scanA, scanB walker.ScanResult

	var g errgroup.Group
	g.Go(func() error {
		var err error
		scanA, err = c.walker.Scan(rootA, ignoreHidden)
		return err
	})
	g.Go(func() error {
		var err error
		scanB, err = c.walker.Scan(rootB, ignoreHidden)
		return err
	})

	if err := g.Wait(); err != nil {
		result := emptyFolderDiff()
		result.Error = err.Error()
		return result
	}

	return Classify(scanA, scanB)
}

// Classify computes the folder diff of two completed scans. scanB is consumed.
func Classify(scanA, scanB walker.ScanResult) FolderDiff {
	result := emptyFolderDiff()

	for relPath, recA := range scanA {
		recB, exists := scanB[relPath]
		switch {
		case !exists:
			result.Deleted = append(result.Deleted, recA)
		case recA.Checksum != recB.Checksum:
			result.Modified = append(result.Modified, recA)
		default:
			result.Same = append(result.Same, recA)
		}
		if exists {
			delete(scanB, relPath)
		}
	}

	for _, recB := range scanB {
		result.Added = append(result.Added, recB)
	}

	result.TotalFiles = uint64(len(scanA) + len(result.Added))

	// Sort for deterministic output
	for _, list := range [][]walker.FileRecord{result.Added, result.Deleted, result.Modified, result.Same} {
		sortRecords(list)
	}

	return result
}

func sortRecords(records []walker.FileRecord) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].RelativePath < records[j].RelativePath
	})
}
