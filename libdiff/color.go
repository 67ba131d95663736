package libdiff

import (
	"strings"

	"github.com/fatih/color"
)

// Colorize colors the lines of a unified diff: removals red, additions
// green and hunk headers cyan.
func Colorize(diff string) string {
	buf := &strings.Builder{}
	for _, ln := range splitLines(diff) {
		body := strings.TrimSuffix(ln, "\n")
		nl := ln[len(body):]
		switch {
		case strings.HasPrefix(ln, "---"), strings.HasPrefix(ln, "+++"):
			buf.WriteString(color.New(color.Bold).Sprint(body))
		case strings.HasPrefix(ln, "@@"):
			buf.WriteString(color.CyanString("%s", body))
		case strings.HasPrefix(ln, "-"):
			buf.WriteString(color.RedString("%s", body))
		case strings.HasPrefix(ln, "+"):
			buf.WriteString(color.GreenString("%s", body))
		default:
			buf.WriteString(body)
		}
		buf.WriteString(nl)
	}
	return buf.String()
}
