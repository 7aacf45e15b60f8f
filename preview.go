package edubridge

import (
	"strings"

	"github.com/rivo/uniseg"
)

// PreviewLength is the number of grapheme clusters kept by Preview in log lines.
const PreviewLength = 50

// Preview returns the first n grapheme clusters of s on a single line,
// followed by "..." when s was cut.
func Preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if n <= 0 {
		return ""
	}
	if uniseg.GraphemeClusterCount(s) <= n {
		return s
	}
	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for i := 0; i < n && g.Next(); i++ {
		b.WriteString(g.Str())
	}
	return strings.TrimRight(b.String(), " ") + "..."
}
