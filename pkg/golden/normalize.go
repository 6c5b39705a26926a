// Package golden compares simulator output against hand written reference transcripts.
//
// References (disassembly listings and execution traces) are normalized into a
// canonical sequence of lines, then diffed line by line against the simulator output.
// Both sides are treated as opaque text: nothing here knows about the instruction set.
package golden

import (
	"strings"
)

// Normalizer turns raw reference text into the lines the simulator is expected to print
type Normalizer struct {
	// CommentMarker starts a comment that runs until the end of the line
	CommentMarker string

	// Directives are assembler directive keywords (like the "bits" size directive)
	// that the simulator never prints. Lines starting with one are dropped.
	Directives []string

	// Banner prefix of separator lines. Lines starting with it are dropped.
	Banner string
}

// DefaultNormalizer matches nasm style listings and the simulator's trace banners
var DefaultNormalizer = Normalizer{
	CommentMarker: ";",
	Directives:    []string{"bits"},
	Banner:        "---",
}

// Normalize splits raw into trimmed lines, dropping empty lines, comment lines, directive
// lines and separator banners. When keepComments is false, trailing comments are cut
// from the remaining lines.
func (n Normalizer) Normalize(raw string, keepComments bool) []string {
	lines := []string{}

	for _, line := range splitLines(raw) {
		line = strings.TrimSpace(line)

		if n.skip(line) {
			continue
		}

		if !keepComments {
			line = n.stripComment(line)
		}

		lines = append(lines, line)
	}

	return lines
}

// NormalizeText is Normalize joined back with newlines
func (n Normalizer) NormalizeText(raw string, keepComments bool) string {
	return strings.Join(n.Normalize(raw, keepComments), "\n")
}

func (n Normalizer) skip(line string) bool {
	if line == "" {
		return true
	}
	if n.CommentMarker != "" && strings.HasPrefix(line, n.CommentMarker) {
		return true
	}
	if n.Banner != "" && strings.HasPrefix(line, n.Banner) {
		return true
	}
	for _, directive := range n.Directives {
		if directive != "" && strings.HasPrefix(line, directive) {
			return true
		}
	}
	return false
}

func (n Normalizer) stripComment(line string) string {
	if n.CommentMarker == "" {
		return line
	}

	if i := strings.Index(line, n.CommentMarker); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}

	return line
}

// splitLines splits on \n, \r\n and lone \r
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
