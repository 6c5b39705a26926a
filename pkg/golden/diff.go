package golden

import (
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// DefaultContext is the number of unchanged lines shown around each hunk
const DefaultContext = 3

var (
	colorRemoved = color.New(color.FgRed, color.Bold)
	colorAdded   = color.New(color.FgGreen, color.Bold)
)

// Comparison is the result of comparing one reference against one simulator output
type Comparison struct {
	Matched bool
	Diff    string
}

// Differ renders line based unified diffs between expected and actual text
type Differ struct {
	// Context lines around each hunk
	Context int

	// Color renders removed lines red and added lines green
	Color bool
}

// NewDiffer returns a differ with the default context
func NewDiffer(colored bool) *Differ {
	return &Differ{
		Context: DefaultContext,
		Color:   colored,
	}
}

// Diff returns a unified diff from expected to actual, or an empty string if both have
// the same lines once each line is trimmed. Lines only in expected are prefixed with
// '-', lines only in actual with '+'.
func (d *Differ) Diff(expected, actual string) string {
	a := diffLines(expected)
	b := diffLines(actual)

	if equalLines(a, b) {
		return ""
	}

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        withNewlines(a),
		B:        withNewlines(b),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  d.Context,
	})
	if err != nil {
		// Writes into a strings.Builder, which never fails
		panic(err)
	}

	return d.render(strings.TrimSuffix(text, "\n"))
}

// Compare diffs expected against actual
func (d *Differ) Compare(expected, actual string) Comparison {
	diff := d.Diff(expected, actual)

	return Comparison{
		Matched: diff == "",
		Diff:    diff,
	}
}

func (d *Differ) render(text string) string {
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "-"):
			lines[i] = d.paint(colorRemoved, line)
		case strings.HasPrefix(line, "+"):
			lines[i] = d.paint(colorAdded, line)
		}
	}

	return strings.Join(lines, "\n")
}

func (d *Differ) paint(c *color.Color, text string) string {
	if !d.Color {
		return text
	}

	// Force colors even when stdout is not a terminal, the caller already decided
	painted := *c
	painted.EnableColor()
	return painted.Sprint(text)
}

func diffLines(text string) []string {
	if text == "" {
		return []string{}
	}

	lines := splitLines(text)
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return lines
}

func withNewlines(lines []string) []string {
	result := make([]string, len(lines))
	for i, line := range lines {
		result[i] = line + "\n"
	}
	return result
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
