package progress

import (
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// Bar renders scan progress on a single terminal line. It satisfies
// walker.Observer: the total grows as files are dispatched and the bar
// advances as they complete.
type Bar struct {
	total      int64
	current    int64
	failed     int64
	width      int
	writer     io.Writer
	mu         sync.Mutex
	activeDirs map[string]int
	enabled    bool
	lastUpdate time.Time
	interval   time.Duration
}

func New(w io.Writer, enabled bool) *Bar {
	return &Bar{
		width:      40,
		writer:     w,
		activeDirs: make(map[string]int),
		enabled:    enabled,
		interval:   100 * time.Millisecond,
	}
}

// ForTerminal returns a bar on f that only draws when f is a terminal.
func ForTerminal(f *os.File) *Bar {
	return New(f, term.IsTerminal(int(f.Fd())))
}

func (b *Bar) Dispatched(relPath string) {
	if !b.enabled {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.total++
	b.activeDirs[path.Dir(relPath)]++
	b.maybeRender()
}

func (b *Bar) Completed(relPath string, ok bool) {
	if !b.enabled {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.current++
	if !ok {
		b.failed++
	}

	dir := path.Dir(relPath)
	if b.activeDirs[dir]--; b.activeDirs[dir] <= 0 {
		delete(b.activeDirs, dir)
	}

	b.maybeRender()
}

// maybeRender must be called with mu already locked
func (b *Bar) maybeRender() {
	// Update at most every interval to reduce flickering
	now := time.Now()
	if now.Sub(b.lastUpdate) >= b.interval || b.current == b.total {
		b.lastUpdate = now
		b.render()
	}
}

// render must be called with mu already locked
func (b *Bar) render() {
	if b.total == 0 {
		return
	}

	percent := float64(b.current) / float64(b.total) * 100
	filledWidth := int(float64(b.width) * float64(b.current) / float64(b.total))

	if filledWidth > b.width {
		filledWidth = b.width
	}

	bar := strings.Repeat("█", filledWidth) + strings.Repeat("░", b.width-filledWidth)

	dirs := make([]string, 0, len(b.activeDirs))
	for dir := range b.activeDirs {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	var dirDisplay string
	if len(dirs) > 0 {
		if len(dirs) > 3 {
			dirDisplay = fmt.Sprintf(" | %s, %s, %s +%d more", dirs[0], dirs[1], dirs[2], len(dirs)-3)
		} else {
			dirDisplay = " | " + strings.Join(dirs, ", ")
		}
	}

	var failedDisplay string
	if b.failed > 0 {
		failedDisplay = fmt.Sprintf(" %d skipped", b.failed)
	}

	// Clear the line and write progress
	fmt.Fprintf(b.writer, "\r\033[K[%s] %3d%% (%d/%d)%s%s",
		bar, int(percent), b.current, b.total, failedDisplay, dirDisplay)
}

// Finish draws the final state and ends the line.
func (b *Bar) Finish() {
	if !b.enabled {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.activeDirs = make(map[string]int)
	if b.total > 0 {
		b.render()
	}
	fmt.Fprintf(b.writer, "\n")
}

// Reset clears the counters so the bar can track another scan.
func (b *Bar) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.total, b.current, b.failed = 0, 0, 0
	b.activeDirs = make(map[string]int)
	b.lastUpdate = time.Time{}
}
