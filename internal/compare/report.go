package compare

import (
	"fmt"
	"strings"

	"dircmp/internal/diff"
)

// FormatReport renders a folder diff as plain text.
func FormatReport(result *FolderDiff) string {
	if result.Error != "" {
		return fmt.Sprintf("Comparison failed: %s\n", result.Error)
	}
	if !result.HasChanges() {
		return fmt.Sprintf("No changes detected (%d files identical).\n", len(result.Same))
	}

	var report strings.Builder
	report.WriteString("Changes detected:\n\n")

	if len(result.Added) > 0 {
		fmt.Fprintf(&report, "ADDED (%d files):\n", len(result.Added))
		for _, rec := range result.Added {
			fmt.Fprintf(&report, "  + %s (crc32: %s, size: %d bytes)\n", rec.RelativePath, rec.Checksum, rec.Size)
		}
		report.WriteString("\n")
	}

	if len(result.Modified) > 0 {
		fmt.Fprintf(&report, "MODIFIED (%d files):\n", len(result.Modified))
		for _, rec := range result.Modified {
			fmt.Fprintf(&report, "  ~ %s (%s)\n", rec.RelativePath, kindOf(rec.IsText))
		}
		report.WriteString("\n")
	}

	if len(result.Deleted) > 0 {
		fmt.Fprintf(&report, "DELETED (%d files):\n", len(result.Deleted))
		for _, rec := range result.Deleted {
			fmt.Fprintf(&report, "  - %s (crc32: %s, size: %d bytes)\n", rec.RelativePath, rec.Checksum, rec.Size)
		}
		report.WriteString("\n")
	}

	fmt.Fprintf(&report, "Summary: %d added, %d modified, %d deleted, %d same (%d files total)\n",
		len(result.Added), len(result.Modified), len(result.Deleted), len(result.Same), result.TotalFiles)

	return report.String()
}

// FormatFileDiff renders a file diff as a plain unified-style listing.
func FormatFileDiff(result *FileDiff, context int) string {
	if result.Error != "" {
		return fmt.Sprintf("Comparison failed: %s\n", result.Error)
	}

	var out strings.Builder
	if !result.IsText {
		for _, op := range result.Diffs {
			fmt.Fprintf(&out, "%s%s\n", op.Op.Prefix(), op.Content)
		}
		return out.String()
	}

	hunks := diff.Hunks(result.Diffs, context)
	if len(hunks) == 0 {
		return fmt.Sprintf("%s: no differences\n", result.RelativePath)
	}

	out.WriteString(result.RelativePath + "\n")
	for _, h := range hunks {
		out.WriteString(h.Header())
		out.WriteString("\n")
		for _, l := range h.Lines {
			fmt.Fprintf(&out, "%s%s\n", l.Op.Prefix(), l.Content)
		}
	}

	stats := diff.Count(result.Diffs)
	fmt.Fprintf(&out, "%d additions, %d deletions\n", stats.Additions, stats.Deletions)
	return out.String()
}

func kindOf(isText bool) string {
	if isText {
		return "text"
	}
	return "binary"
}
