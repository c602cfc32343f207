// Package render formats comparison results for the terminal.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"dircmp/internal/classify"
	"dircmp/internal/compare"
	"dircmp/internal/config"
	"dircmp/internal/diff"
	"dircmp/internal/tree"
	"dircmp/internal/walker"
)

// Renderer holds the styles for one output stream. Without a color profile
// folder reports and text diffs fall back to the plain listings of package
// compare.
type Renderer struct {
	plain    bool
	header   lipgloss.Style
	hunk     lipgloss.Style
	added    lipgloss.Style
	deleted  lipgloss.Style
	modified lipgloss.Style
	same     lipgloss.Style
	muted    lipgloss.Style
	failure  lipgloss.Style
	addHi    lipgloss.Style
	delHi    lipgloss.Style
}

// New builds styles for w. color is one of the config color modes; auto
// leaves profile detection to the terminal behind w.
func New(w io.Writer, color string) *Renderer {
	lr := lipgloss.NewRenderer(w)
	switch color {
	case config.ColorNever:
		lr.SetColorProfile(termenv.Ascii)
	case config.ColorAlways:
		lr.SetColorProfile(termenv.ANSI256)
	}

	style := func() lipgloss.Style {
		return lr.NewStyle().TabWidth(lipgloss.NoTabConversion)
	}

	return &Renderer{
		plain:    lr.ColorProfile() == termenv.Ascii,
		header:   style().Bold(true).Foreground(lipgloss.Color("63")),
		hunk:     style().Foreground(lipgloss.Color("81")),
		added:    style().Foreground(lipgloss.Color("78")),
		deleted:  style().Foreground(lipgloss.Color("204")),
		modified: style().Foreground(lipgloss.Color("214")),
		same:     style(),
		muted:    style().Faint(true),
		failure:  style().Bold(true).Foreground(lipgloss.Color("197")),
		addHi:    style().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("78")),
		delHi:    style().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("204")),
	}
}

// Error renders a failure message.
func (r *Renderer) Error(msg string) string {
	return r.failure.Render("Error: "+msg) + "\n"
}

// Scan lists the records of a scan sorted by path, followed by the tree summary.
func (r *Renderer) Scan(root string, scan walker.ScanResult, summary *tree.Summary) string {
	paths := make([]string, 0, len(scan))
	for p := range scan {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var b strings.Builder
	b.WriteString(r.header.Render("Scanned "+root) + "\n\n")
	for _, p := range paths {
		rec := scan[p]
		kind := "text"
		if !rec.IsText {
			kind = "binary"
		}
		fmt.Fprintf(&b, "  %s  %s %s\n", rec.Checksum, p,
			r.muted.Render(fmt.Sprintf("(%s, %s)", kind, tree.FormatSize(rec.Size))))
	}

	fmt.Fprintf(&b, "\n%d files, %s\n", summary.Files, tree.FormatSize(summary.TotalSize))
	fmt.Fprintf(&b, "Merkle root: %s\n", summary.Root)
	return b.String()
}

// Folders renders a folder comparison grouped by category.
func (r *Renderer) Folders(d *compare.FolderDiff) string {
	if d.Error != "" {
		return r.Error(d.Error)
	}
	if r.plain {
		return compare.FormatReport(d)
	}
	if !d.HasChanges() {
		return r.same.Render(fmt.Sprintf("No changes detected (%d files identical).", len(d.Same))) + "\n"
	}

	var b strings.Builder
	b.WriteString(r.header.Render("Changes detected:") + "\n\n")

	section := func(title, marker string, style lipgloss.Style, records []walker.FileRecord) {
		if len(records) == 0 {
			return
		}
		b.WriteString(style.Bold(true).Render(fmt.Sprintf("%s (%d files):", title, len(records))) + "\n")
		for _, rec := range records {
			b.WriteString(style.Render(fmt.Sprintf("  %s %s", marker, rec.RelativePath)))
			b.WriteString(" " + r.muted.Render(fmt.Sprintf("(crc32: %s, size: %s)", rec.Checksum, tree.FormatSize(rec.Size))))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	section("ADDED", "+", r.added, d.Added)
	section("MODIFIED", "~", r.modified, d.Modified)
	section("DELETED", "-", r.deleted, d.Deleted)

	fmt.Fprintf(&b, "Summary: %s, %s, %s, %d same (%d files total)\n",
		r.added.Render(fmt.Sprintf("%d added", len(d.Added))),
		r.modified.Render(fmt.Sprintf("%d modified", len(d.Modified))),
		r.deleted.Render(fmt.Sprintf("%d deleted", len(d.Deleted))),
		len(d.Same), d.TotalFiles)
	return b.String()
}

// Binary labels the two sides of a binary comparison.
type Binary struct {
	KindA classify.Kind
	KindB classify.Kind
}

// File renders a file comparison. Text diffs are grouped into hunks with
// context lines; paired deletions and additions get intra-line highlights.
func (r *Renderer) File(d *compare.FileDiff, context int, kinds Binary) string {
	if d.Error != "" {
		return r.Error(d.Error)
	}

	var b strings.Builder
	if !d.IsText {
		for _, op := range d.Diffs {
			switch op.Op {
			case diff.Same:
				b.WriteString(r.same.Render(op.Content) + "\n")
			case diff.Delete:
				b.WriteString(r.deleted.Render("- "+op.Content) + " " + r.muted.Render("["+label(kinds.KindA)+"]") + "\n")
			case diff.Add:
				b.WriteString(r.added.Render("+ "+op.Content) + " " + r.muted.Render("["+label(kinds.KindB)+"]") + "\n")
			}
		}
		return b.String()
	}
	if r.plain {
		return compare.FormatFileDiff(d, context)
	}

	hunks := diff.Hunks(d.Diffs, context)
	if len(hunks) == 0 {
		return r.same.Render(d.RelativePath+": no differences") + "\n"
	}

	b.WriteString(r.header.Render(d.RelativePath) + "\n")
	for _, h := range hunks {
		b.WriteString(r.hunk.Render(h.Header()) + "\n")
		r.hunkLines(&b, h.Lines)
	}

	stats := diff.Count(d.Diffs)
	fmt.Fprintf(&b, "%s, %s\n",
		r.added.Render(fmt.Sprintf("%d additions", stats.Additions)),
		r.deleted.Render(fmt.Sprintf("%d deletions", stats.Deletions)))
	return b.String()
}

func (r *Renderer) hunkLines(b *strings.Builder, lines []diff.Line) {
	for i := 0; i < len(lines); {
		if lines[i].Op == diff.Same {
			r.line(b, lines[i], r.same.Render(lines[i].Content))
			i++
			continue
		}

		// Collect a change block: deletions then additions
		delStart := i
		for i < len(lines) && lines[i].Op == diff.Delete {
			i++
		}
		addStart := i
		for i < len(lines) && lines[i].Op == diff.Add {
			i++
		}
		dels := lines[delStart:addStart]
		adds := lines[addStart:i]

		delText := make([]string, len(dels))
		addText := make([]string, len(adds))
		for j, l := range dels {
			delText[j] = r.deleted.Render(l.Content)
		}
		for j, l := range adds {
			addText[j] = r.added.Render(l.Content)
		}

		for j := 0; j < len(dels) && j < len(adds); j++ {
			left, right := diff.Chars(dels[j].Content, adds[j].Content)
			delText[j] = r.segments(left, r.deleted, r.delHi)
			addText[j] = r.segments(right, r.added, r.addHi)
		}

		for j, l := range dels {
			r.line(b, l, delText[j])
		}
		for j, l := range adds {
			r.line(b, l, addText[j])
		}
	}
}

func (r *Renderer) segments(segs []diff.Segment, base, hi lipgloss.Style) string {
	var out strings.Builder
	for _, s := range segs {
		if s.Kind == diff.SegmentEqual {
			out.WriteString(base.Render(s.Text))
		} else {
			out.WriteString(hi.Render(s.Text))
		}
	}
	return out.String()
}

func (r *Renderer) line(b *strings.Builder, l diff.Line, content string) {
	prefix := l.Op.Prefix()
	switch l.Op {
	case diff.Delete:
		prefix = r.deleted.Render(prefix)
	case diff.Add:
		prefix = r.added.Render(prefix)
	}
	fmt.Fprintf(b, "%s %s %s%s\n", r.muted.Render(lineNo(l.OldLine)), r.muted.Render(lineNo(l.NewLine)), prefix, content)
}

func lineNo(n int) string {
	if n == 0 {
		return "    "
	}
	return fmt.Sprintf("%4d", n)
}

func label(k classify.Kind) string {
	if k == (classify.Kind{}) {
		k = classify.Unknown
	}
	return k.String()
}
