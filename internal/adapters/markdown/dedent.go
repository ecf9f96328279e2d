package markdown

import (
	"regexp"
	"strings"
	"unicode"
)

// fenceOpen matches a code fence opened behind list-item indentation: two or
// more spaces, then the fence with an optional info string. Tab indentation
// is deliberately not recognized.
var fenceOpen = regexp.MustCompile("^( {2,})(```.*)$")

// DedentFences strips list-item indentation from fenced code blocks so the
// converter treats them as fences rather than indented literal blocks.
//
// A single forward pass with one piece of state: whether the scan is inside
// an indented fence, and the indent prefix to strip. Opening fences lose
// their indent, content lines lose the same prefix when they carry it, blank
// lines stay as truly empty lines, and a closing fence is recognized at any
// indentation. Running the pass again over its own output changes nothing.
func DedentFences(src string) string {
	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines))

	inside := false
	prefix := ""

	for _, line := range lines {
		switch {
		case !inside:
			m := fenceOpen.FindStringSubmatch(strings.TrimRightFunc(line, unicode.IsSpace))
			if m == nil {
				out = append(out, line)
				continue
			}
			prefix = m[1]
			out = append(out, m[2])
			inside = true
		case strings.TrimSpace(line) == "```":
			out = append(out, "```")
			inside = false
			prefix = ""
		case strings.HasPrefix(line, prefix):
			out = append(out, line[len(prefix):])
		case strings.TrimSpace(line) == "":
			out = append(out, "")
		default:
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
