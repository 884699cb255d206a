// Package formatter renders rewrite matches and diffs for terminal
// output.
package formatter

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/colref/colref/rewrite"
)

var (
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	calleeStyle  = color.New(color.FgYellow, color.Bold)
	nativeStyle  = color.New(color.FgGreen, color.Bold)
	markerStyle  = color.New(color.FgMagenta)
	removedStyle = color.New(color.FgRed)
	addedStyle   = color.New(color.FgGreen)
	noStyle      = color.New(color.FgWhite)
)

// FormatMatches renders the capture sites found in one file, with the
// offending source line and a caret under each site.
func FormatMatches(filename, src string, matches []rewrite.Match) string {
	if len(matches) == 0 {
		return ""
	}
	lines := strings.Split(src, "\n")
	var b strings.Builder
	for _, m := range matches {
		b.WriteString(fmt.Sprintf("%s:%s: %s -> %s %s\n",
			fileStyle.Sprint(filename),
			lineStyle.Sprintf("%d:%d", m.Line, m.Col),
			calleeStyle.Sprint(m.Callee),
			nativeStyle.Sprint(m.Native),
			markerStyle.Sprintf("(%s under %s marker)", m.Variant, m.Marker),
		))
		if m.Line-1 < len(lines) {
			srcLine := lines[m.Line-1]
			b.WriteString(fmt.Sprintf("  %s\n", noStyle.Sprint(srcLine)))
			width := len(m.Text)
			if rest := len(srcLine) - (m.Col - 1); rest < width {
				width = rest
			}
			b.WriteString(fmt.Sprintf("  %s%s\n",
				strings.Repeat(" ", displayOffset(srcLine, m.Col-1)),
				calleeStyle.Sprint(strings.Repeat("^", maxInt(1, width)))))
		}
	}
	return b.String()
}

// FormatDiff renders a line diff of one rewritten file. Rewriting never
// adds or removes lines, so lines pair up positionally.
func FormatDiff(filename, before, after string) string {
	if before == after {
		return ""
	}
	oldLines := strings.Split(before, "\n")
	newLines := strings.Split(after, "\n")

	var b strings.Builder
	b.WriteString(fileStyle.Sprint(filename) + "\n")
	for i := 0; i < len(oldLines) && i < len(newLines); i++ {
		if oldLines[i] == newLines[i] {
			continue
		}
		b.WriteString(lineStyle.Sprintf("@ line %d\n", i+1))
		b.WriteString(removedStyle.Sprintf("- %s\n", oldLines[i]))
		b.WriteString(addedStyle.Sprintf("+ %s\n", newLines[i]))
	}
	return b.String()
}

// displayOffset widens the caret offset for tabs so the marker lines up
// under the site in a terminal with 8-column tab stops.
func displayOffset(line string, col int) int {
	offset := 0
	for i := 0; i < col && i < len(line); i++ {
		if line[i] == '\t' {
			offset += 8 - offset%8
		} else {
			offset++
		}
	}
	return offset
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
