package substitute

import (
	"regexp"
	"strings"
)

// ObjectsVar is the makefile variable every object entry is prefixed with.
const ObjectsVar = "$(OBJECTS)"

var (
	// UnitListLine selects the makefile line that lists the object entries.
	UnitListLine = regexp.MustCompile(`^\s*OBJ_FILES\s*=`)

	// FlagsLine selects the makefile line that defines the compiler flags.
	FlagsLine = regexp.MustCompile(`^(\s*CFLAGS\s*=\s*).*$`)

	objectEntryNames = regexp.MustCompile(`\$\(OBJECTS\)(\S+)\.o(?:\s|$)`)
)

const includePrefix = `\s*#\s*include\s*`

// IncludeDirective matches an include of headerFile, e.g. `#include "Logger.h"`,
// tolerating whitespace around the '#'.
func IncludeDirective(headerFile string) *regexp.Regexp {
	return regexp.MustCompile(includePrefix + `"` + regexp.QuoteMeta(headerFile) + `"`)
}

// RenameInclude rewrites includes of oldHeader to newHeader. Only the quoted
// file name changes; the directive keeps its spacing.
func RenameInclude(oldHeader, newHeader string) Rule {
	return Rule{
		Pattern:     regexp.MustCompile(`(` + includePrefix + `)"` + regexp.QuoteMeta(oldHeader) + `"`),
		Replacement: `${1}"` + literal(newHeader) + `"`,
	}
}

// EraseInclude removes includes of headerFile together with their leading
// whitespace.
func EraseInclude(headerFile string) Rule {
	return Rule{Pattern: IncludeDirective(headerFile)}
}

// ObjectEntry matches `$(OBJECTS)<name>.o` as a whole token.
func ObjectEntry(name string) *regexp.Regexp {
	return regexp.MustCompile(`\$\(OBJECTS\)` + regexp.QuoteMeta(name) + `\.o\b`)
}

// RenameObjectEntry rewrites the object entry of oldName to newName.
func RenameObjectEntry(oldName, newName string) Rule {
	return Rule{
		Pattern:     ObjectEntry(oldName),
		Replacement: literal(ObjectEntryFor(newName)),
	}
}

// EraseObjectEntry removes the object entry of name and the whitespace in
// front of it.
func EraseObjectEntry(name string) Rule {
	return Rule{Pattern: regexp.MustCompile(`\s*` + ObjectEntry(name).String())}
}

// ReplaceFlags rewrites the value of the CFLAGS line.
func ReplaceFlags(flags string) Rule {
	return Rule{
		Pattern:     FlagsLine,
		Replacement: `${1}` + literal(flags),
	}
}

// ObjectEntryFor renders the makefile token for a unit.
func ObjectEntryFor(name string) string {
	return ObjectsVar + name + ".o"
}

// ObjectEntryNames extracts unit names from an OBJ_FILES line, in order.
func ObjectEntryNames(line string) []string {
	matches := objectEntryNames.FindAllStringSubmatch(line, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// FlagsValue returns the value of a CFLAGS line.
func FlagsValue(line string) string {
	m := FlagsLine.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(line[len(m[1]):])
}

// literal escapes '$' so the text survives regexp template expansion.
func literal(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
