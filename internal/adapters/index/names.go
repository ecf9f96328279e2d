package index

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/docview/docview/internal/domain/entities"
)

// headingPattern matches a top-level heading and captures its text.
var headingPattern = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// decorations are symbols stripped from derived descriptions.
const decorations = "⭐🏗🔧📋❓🔍📊📖️"

// descriptionLines caps how far into a file describe reads.
const descriptionLines = 5

// FormatDisplayName turns a document filename into its sidebar label.
// README keeps its conventional spelling regardless of case. A leading
// all-caps token of at most five runes followed by further tokens is treated
// as an abbreviation and joined to the title-cased remainder with a dash, so
// HLD_System_Design.md becomes "HLD - System Design". Everything else is
// title-cased per underscore segment: ZZZ.md becomes "Zzz".
func FormatDisplayName(filename string) string {
	stem := entities.Stem(filename)
	if strings.EqualFold(stem, "README") {
		return "README"
	}

	parts := strings.Split(stem, "_")
	if len(parts) > 1 && isAbbrev(parts[0]) {
		rest := make([]string, 0, len(parts)-1)
		for _, p := range parts[1:] {
			rest = append(rest, titleSegment(p))
		}
		return parts[0] + " - " + strings.Join(rest, " ")
	}

	for i, p := range parts {
		parts[i] = titleSegment(p)
	}
	return strings.Join(parts, " ")
}

// isAbbrev reports whether s is a short all-caps token such as HLD or API.
func isAbbrev(s string) bool {
	if s == "" || utf8.RuneCountInString(s) > 5 {
		return false
	}
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// titleSegment upper-cases the first rune and lower-cases the rest.
func titleSegment(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// describe derives the sidebar tooltip for a document from its first
// top-level heading. It reads a handful of lines at most, never the whole
// file, and falls back to the filename stem when the file is unreadable or
// carries no usable heading. A bad file degrades to the fallback rather than
// failing the listing.
func (d *DirIndex) describe(name string) string {
	fallback := entities.Stem(name)

	f, err := os.Open(filepath.Join(d.root, name))
	if err != nil {
		return fallback
	}
	defer f.Close()

	var head strings.Builder
	scanner := bufio.NewScanner(f)
	for i := 0; i < descriptionLines && scanner.Scan(); i++ {
		head.WriteString(scanner.Text())
		head.WriteByte('\n')
	}

	m := headingPattern.FindStringSubmatch(head.String())
	if m == nil {
		return fallback
	}
	title := strings.TrimSpace(stripDecorations(m[1]))
	if title == "" {
		return fallback
	}
	return title
}

// stripDecorations removes decorative symbols from a heading.
func stripDecorations(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(decorations, r) {
			return -1
		}
		return r
	}, s)
}
