package walker

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"dircmp/internal/apperr"
	"dircmp/internal/classify"
	"dircmp/internal/hash"
	"dircmp/internal/pool"
	"dircmp/internal/vfs"
)

// FileRecord describes one regular file found by a scan.
type FileRecord struct {
	AbsolutePath string `json:"absolutePath"`
	RelativePath string `json:"relativePath"`
	Size         uint64 `json:"size"`
	Checksum     string `json:"checksum"`
	IsText       bool   `json:"isText"`
}

// ScanResult maps slash-separated relative paths to their records.
type ScanResult map[string]FileRecord

// Observer is notified as files are dispatched to and completed by the pool.
// Methods are called from multiple goroutines.
type Observer interface {
	Dispatched(relPath string)
	Completed(relPath string, ok bool)
}

type Options struct {
	FS       vfs.FS      // defaults to vfs.OS
	Exclude  []string    // glob patterns, "dir/" prunes directories
	Logger   *log.Logger // receives skipped files and directories
	Observer Observer
}

// Walker scans directory trees, hashing files on a shared pool.
type Walker struct {
	pool     *pool.Pool
	fs       vfs.FS
	exclude  []string
	logger   *log.Logger
	observer Observer
}

func New(p *pool.Pool, opts Options) *Walker {
	w := &Walker{
		pool:     p,
		fs:       opts.FS,
		exclude:  opts.Exclude,
		logger:   opts.Logger,
		observer: opts.Observer,
	}
	if w.fs == nil {
		w.fs = vfs.OS{}
	}
	if w.logger == nil {
		w.logger = log.New(io.Discard, "", 0)
	}
	return w
}

// scan is the state of a single Scan call.
type scan struct {
	root         string
	ignoreHidden bool

	mu     sync.Mutex
	result ScanResult
	wg     sync.WaitGroup
}

// Scan walks root depth-first and returns a record for every regular file.
//
// Directories that cannot be listed for lack of permission are skipped, and
// files that cannot be read are dropped from the result. Any other listing
// failure aborts the scan. Scan returns only after every file it dispatched
// has been processed.
func (w *Walker) Scan(root string, ignoreHidden bool) (ScanResult, error) {
	info, err := w.fs.Stat(root)
	if err != nil {
		return nil, apperr.InvalidPath("scan", root, err)
	}
	if !info.IsDir() {
		return nil, apperr.InvalidPath("scan", root, errors.New("not a directory"))
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	s := &scan{
		root:         absRoot,
		ignoreHidden: ignoreHidden,
		result:       make(ScanResult),
	}

	walkErr := w.walk(s)

	// Even on failure, dispatched work still touches s.result
	s.wg.Wait()

	if walkErr != nil {
		return nil, walkErr
	}
	return s.result, nil
}

func (w *Walker) walk(s *scan) error {
	stack := []string{s.root}

	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := w.fs.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrPermission) || errors.Is(err, apperr.ErrPermissionDenied) {
				w.logger.Printf("skipping subtree: %v", apperr.Permission("list", dir, err))
				continue
			}
			return fmt.Errorf("failed to walk directory: %w", err)
		}

		var subdirs []string
		for _, entry := range entries {
			name := entry.Name()
			fullPath := filepath.Join(dir, name)

			if s.ignoreHidden && w.fs.IsHidden(fullPath, name) {
				continue
			}

			relPath, err := filepath.Rel(s.root, fullPath)
			if err != nil {
				return fmt.Errorf("failed to get relative path: %w", err)
			}
			relPath = filepath.ToSlash(relPath)

			if shouldExclude(relPath, w.exclude) {
				continue
			}

			isDir, isFile := w.entryKind(fullPath, entry)
			switch {
			case isDir:
				subdirs = append(subdirs, fullPath)
			case isFile:
				if err := w.dispatch(s, fullPath, relPath); err != nil {
					return err
				}
			}
		}

		// Push in reverse so subdirectories are visited in listing order
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}

	return nil
}

// entryKind resolves symlinks to regular files; symlinked directories are not
// followed so a link cycle cannot trap the walk.
func (w *Walker) entryKind(fullPath string, entry fs.DirEntry) (isDir, isFile bool) {
	mode := entry.Type()
	switch {
	case mode.IsDir():
		return true, false
	case mode.IsRegular():
		return false, true
	case mode&fs.ModeSymlink != 0:
		info, err := w.fs.Stat(fullPath)
		if err != nil {
			w.logger.Printf("skipping broken symlink %s: %v", fullPath, err)
			return false, false
		}
		return false, info.Mode().IsRegular()
	}
	return false, false
}

func (w *Walker) dispatch(s *scan, fullPath, relPath string) error {
	if w.observer != nil {
		w.observer.Dispatched(relPath)
	}

	s.wg.Add(1)
	_, err := w.pool.Submit(func() {
		defer s.wg.Done()

		record, err := w.inspect(fullPath, relPath)
		if err != nil {
			w.logger.Printf("skipping %s: %v", relPath, err)
			if w.observer != nil {
				w.observer.Completed(relPath, false)
			}
			return
		}

		s.mu.Lock()
		s.result[relPath] = record
		s.mu.Unlock()

		if w.observer != nil {
			w.observer.Completed(relPath, true)
		}
	})
	if err != nil {
		s.wg.Done()
		if w.observer != nil {
			w.observer.Completed(relPath, false)
		}
		return fmt.Errorf("failed to dispatch %s: %w", relPath, err)
	}
	return nil
}

// inspect runs on a pool worker, outside the result lock.
func (w *Walker) inspect(fullPath, relPath string) (FileRecord, error) {
	info, err := w.fs.Stat(fullPath)
	if err != nil {
		return FileRecord{}, apperr.IO("stat", fullPath, err)
	}

	checksum, err := hash.File(w.fs, fullPath)
	if err != nil {
		return FileRecord{}, err
	}

	isText, err := classify.File(w.fs, fullPath)
	if err != nil {
		return FileRecord{}, err
	}

	return FileRecord{
		AbsolutePath: fullPath,
		RelativePath: relPath,
		Size:         uint64(info.Size()),
		Checksum:     checksum,
		IsText:       isText,
	}, nil
}

// Excluded reports whether fullPath, located below root, matches one of the
// exclusion patterns. Paths outside root are never excluded.
func Excluded(root, fullPath string, exclusions []string) bool {
	relPath, err := filepath.Rel(root, fullPath)
	if err != nil || relPath == "." || strings.HasPrefix(relPath, "..") {
		return false
	}
	return shouldExclude(filepath.ToSlash(relPath), exclusions)
}

// Hidden reports whether fullPath, or any directory between root and it, is
// hidden. Paths outside root are never hidden.
func Hidden(root, fullPath string) bool {
	relPath, err := filepath.Rel(root, fullPath)
	if err != nil || relPath == "." || strings.HasPrefix(relPath, "..") {
		return false
	}

	current := root
	for _, name := range strings.Split(relPath, string(filepath.Separator)) {
		current = filepath.Join(current, name)
		if vfs.IsHidden(current, name) {
			return true
		}
	}
	return false
}

// shouldExclude matches a slash-separated relative path against the patterns.
func shouldExclude(relPath string, exclusions []string) bool {
	for _, pattern := range exclusions {
		// Handle directory exclusions (patterns ending with /)
		if strings.HasSuffix(pattern, "/") {
			dirPattern := strings.TrimSuffix(pattern, "/")
			// Check if the current path or any parent matches the directory pattern
			for _, part := range strings.Split(relPath, "/") {
				if matched, _ := path.Match(dirPattern, part); matched {
					return true
				}
			}
		} else {
			// Handle file pattern exclusions
			matched, err := path.Match(pattern, path.Base(relPath))
			if err == nil && matched {
				return true
			}
			// Also try matching against the full relative path for patterns with /
			if strings.Contains(pattern, "/") {
				matched, err := path.Match(pattern, relPath)
				if err == nil && matched {
					return true
				}
			}
		}
	}
	return false
}
