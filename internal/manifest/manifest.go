// Package manifest edits the two lines of the project makefile that the
// engine owns: the OBJ_FILES object list and the CFLAGS line.
package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/jakoblorz/vscpp/internal/filesystem"
	"github.com/jakoblorz/vscpp/internal/substitute"
)

const filePerm = 0644

var (
	// ErrNoManifest indicates the makefile does not exist.
	ErrNoManifest = errors.New("makefile not found")

	// ErrNoUnitList indicates the makefile has no OBJ_FILES line.
	ErrNoUnitList = errors.New("makefile has no OBJ_FILES line")

	// ErrNoFlagsLine indicates the makefile has no CFLAGS line.
	ErrNoFlagsLine = errors.New("makefile has no CFLAGS line")
)

// Manifest reads and rewrites a makefile. Nothing is cached: every call
// reads the file again.
type Manifest struct {
	fs   filesystem.FileSystem
	path string
}

// New creates a Manifest for the makefile at path
func New(fs filesystem.FileSystem, path string) *Manifest {
	return &Manifest{fs: fs, path: path}
}

// Exists reports whether the makefile is present
func (m *Manifest) Exists() bool {
	return m.fs.Exists(m.path)
}

func (m *Manifest) read() (string, error) {
	data, err := m.fs.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNoManifest
		}
		return "", fmt.Errorf("failed to read makefile: %w", err)
	}
	return string(data), nil
}

// ParseUnitList returns the unit names of the OBJ_FILES line in order. It
// is empty when the makefile has no such line.
func (m *Manifest) ParseUnitList() ([]string, error) {
	content, err := m.read()
	if err != nil {
		return nil, err
	}

	line, ok := findLine(content, substitute.UnitListLine.MatchString)
	if !ok {
		return []string{}, nil
	}
	return substitute.ObjectEntryNames(line), nil
}

// AppendUnit adds an object entry for name at the end of the OBJ_FILES line.
// It returns false without writing when name is already listed.
func (m *Manifest) AppendUnit(name string) (bool, error) {
	added, err := m.AppendUnits(name)
	if err != nil {
		return false, err
	}
	return len(added) == 1, nil
}

// AppendUnits adds entries for every name not yet listed, in the given
// order, with a single write. It returns the names actually added.
func (m *Manifest) AppendUnits(names ...string) ([]string, error) {
	content, err := m.read()
	if err != nil {
		return nil, err
	}

	lines := strings.SplitAfter(content, "\n")
	idx := slices.IndexFunc(lines, func(l string) bool {
		return substitute.UnitListLine.MatchString(l)
	})
	if idx < 0 {
		return nil, ErrNoUnitList
	}

	line := lines[idx]
	body := strings.TrimRight(line, "\r\n")
	eol := line[len(body):]

	present := substitute.ObjectEntryNames(body)
	var added []string
	for _, name := range names {
		if slices.Contains(present, name) {
			continue
		}
		body = strings.TrimRight(body, " \t") + " " + substitute.ObjectEntryFor(name)
		present = append(present, name)
		added = append(added, name)
	}

	if len(added) == 0 {
		return nil, nil
	}

	lines[idx] = body + eol
	if err := m.fs.WriteFile(m.path, []byte(strings.Join(lines, "")), filePerm); err != nil {
		return nil, fmt.Errorf("failed to write makefile: %w", err)
	}

	return added, nil
}

// RenameUnitEntry rewrites the entry of oldName to newName. When newName is
// already listed the old entry is removed instead so entries stay unique.
func (m *Manifest) RenameUnitEntry(oldName, newName string) (bool, error) {
	names, err := m.ParseUnitList()
	if err != nil {
		return false, err
	}
	if !slices.Contains(names, oldName) {
		return false, nil
	}
	if slices.Contains(names, newName) {
		return m.RemoveUnitEntry(oldName)
	}

	return m.substituteUnitList(substitute.RenameObjectEntry(oldName, newName))
}

// RemoveUnitEntry erases the entry of name from the OBJ_FILES line.
func (m *Manifest) RemoveUnitEntry(name string) (bool, error) {
	if !m.Exists() {
		return false, ErrNoManifest
	}
	return m.substituteUnitList(substitute.EraseObjectEntry(name))
}

func (m *Manifest) substituteUnitList(rule substitute.Rule) (bool, error) {
	return substitute.SubstituteLines(m.fs, m.path, substitute.MatchingLines(substitute.UnitListLine), rule)
}

// Flags returns the current CFLAGS value.
func (m *Manifest) Flags() (string, error) {
	content, err := m.read()
	if err != nil {
		return "", err
	}

	line, ok := findLine(content, substitute.FlagsLine.MatchString)
	if !ok {
		return "", ErrNoFlagsLine
	}
	return substitute.FlagsValue(line), nil
}

// SetFlags replaces the CFLAGS value. It touches no other line.
func (m *Manifest) SetFlags(flags string) (bool, error) {
	if _, err := m.Flags(); err != nil {
		return false, err
	}
	return substitute.SubstituteLines(m.fs, m.path, substitute.MatchingLines(substitute.FlagsLine), substitute.ReplaceFlags(flags))
}

func findLine(content string, match func(string) bool) (string, bool) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if match(line) {
			return line, true
		}
	}
	return "", false
}
