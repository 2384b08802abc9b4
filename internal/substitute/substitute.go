// Package substitute rewrites file content line by line with regular
// expressions. All matching rules used against headers, sources and the
// makefile live in this package.
package substitute

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jakoblorz/vscpp/internal/filesystem"
)

const filePerm = 0644

// Rule is a find/replace pair. Replacement uses regexp template syntax
// (`${1}`); an empty Replacement erases the match.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// Erases reports whether the rule removes what it matches.
func (r Rule) Erases() bool {
	return r.Replacement == ""
}

// LineSelector decides whether a rule applies to a line.
type LineSelector func(line string) bool

// AllLines selects every line.
func AllLines(string) bool { return true }

// MatchingLines selects lines matched by re.
func MatchingLines(re *regexp.Regexp) LineSelector {
	return re.MatchString
}

// ApplyLine applies rule to one line (without its line terminator). The
// second result is false when the rule erased the line down to whitespace
// and the line should be dropped.
func ApplyLine(line string, rule Rule) (string, bool) {
	out := rule.Pattern.ReplaceAllString(line, rule.Replacement)
	if rule.Erases() && out != line && strings.TrimSpace(out) == "" && strings.TrimSpace(line) != "" {
		return "", false
	}
	return out, true
}

// ApplyContent applies rule to every selected line of content.
func ApplyContent(content string, selector LineSelector, rule Rule) string {
	var b strings.Builder
	b.Grow(len(content))

	for _, raw := range strings.SplitAfter(content, "\n") {
		if raw == "" {
			continue
		}
		line := strings.TrimSuffix(raw, "\n")
		eol := raw[len(line):]
		line, eolCR := strings.CutSuffix(line, "\r")
		if eolCR {
			eol = "\r" + eol
		}

		if !selector(line) {
			b.WriteString(raw)
			continue
		}

		out, keep := ApplyLine(line, rule)
		if !keep {
			continue
		}
		b.WriteString(out)
		b.WriteString(eol)
	}

	return b.String()
}

// Substitute applies rule to every line of the file at path and writes the
// result back. It reports whether the content changed; unchanged files are
// not rewritten.
func Substitute(fs filesystem.FileSystem, path string, rule Rule) (bool, error) {
	return SubstituteLines(fs, path, AllLines, rule)
}

// Erase removes every match of pattern from the file at path.
func Erase(fs filesystem.FileSystem, path string, pattern *regexp.Regexp) (bool, error) {
	return Substitute(fs, path, Rule{Pattern: pattern})
}

// SubstituteLines is Substitute restricted to the lines selector accepts.
func SubstituteLines(fs filesystem.FileSystem, path string, selector LineSelector, rule Rule) (bool, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	content := string(data)
	updated := ApplyContent(content, selector, rule)
	if updated == content {
		return false, nil
	}

	if err := fs.WriteFile(path, []byte(updated), filePerm); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}

	return true, nil
}
