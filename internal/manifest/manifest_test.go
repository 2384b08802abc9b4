package manifest

import (
	"testing"

	"github.com/jakoblorz/vscpp/internal/filesystem"
	"github.com/jakoblorz/vscpp/internal/project"
	"github.com/stretchr/testify/require"
)

const makefilePath = "/project/makefile"

func newManifest(t *testing.T, objects ...string) (*Manifest, *filesystem.MockFileSystem) {
	t.Helper()

	fs := filesystem.NewMockFileSystem()
	fs.AddFile(makefilePath, []byte(project.Makefile("-Wall -std=c++1z -g", objects...)))
	return New(fs, makefilePath), fs
}

func TestParseUnitList(t *testing.T) {
	m, _ := newManifest(t, "main", "Logger", "Config")

	names, err := m.ParseUnitList()
	require.NoError(t, err)
	require.Equal(t, []string{"main", "Logger", "Config"}, names)
}

func TestParseUnitList_NoLine(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile(makefilePath, []byte("all:\n\techo hi\n"))

	names, err := New(fs, makefilePath).ParseUnitList()
	require.NoError(t, err)
	require.Empty(t, names)
}

func TestParseUnitList_NoMakefile(t *testing.T) {
	m := New(filesystem.NewMockFileSystem(), makefilePath)

	_, err := m.ParseUnitList()
	require.ErrorIs(t, err, ErrNoManifest)
	require.False(t, m.Exists())
}

func TestAppendUnit(t *testing.T) {
	m, fs := newManifest(t, "main")

	added, err := m.AppendUnit("Logger")
	require.NoError(t, err)
	require.True(t, added)
	require.Contains(t, fs.Content(makefilePath), "OBJ_FILES =  $(OBJECTS)main.o $(OBJECTS)Logger.o\n")

	added, err = m.AppendUnit("Logger")
	require.NoError(t, err)
	require.False(t, added)

	names, err := m.ParseUnitList()
	require.NoError(t, err)
	require.Equal(t, []string{"main", "Logger"}, names)
}

func TestAppendUnit_LeavesOtherLinesAlone(t *testing.T) {
	m, fs := newManifest(t, "main")
	before := fs.Content(makefilePath)

	_, err := m.AppendUnit("Logger")
	require.NoError(t, err)

	after := fs.Content(makefilePath)
	require.Equal(t, len(before)+len(" $(OBJECTS)Logger.o"), len(after))
	require.Contains(t, after, "\trm $(EXEC_NAME) $(OBJ_FILES)\n")
}

func TestAppendUnits_SkipsPresentAndDuplicates(t *testing.T) {
	m, _ := newManifest(t, "main", "a")

	added, err := m.AppendUnits("a", "b", "c", "b")
	require.NoError(t, err)
	require.Equal(t, []string{"b", "c"}, added)

	names, err := m.ParseUnitList()
	require.NoError(t, err)
	require.Equal(t, []string{"main", "a", "b", "c"}, names)
}

func TestAppendUnit_NoUnitList(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile(makefilePath, []byte("CFLAGS = -g\n"))

	_, err := New(fs, makefilePath).AppendUnit("Logger")
	require.ErrorIs(t, err, ErrNoUnitList)
}

func TestRenameUnitEntry(t *testing.T) {
	m, _ := newManifest(t, "main", "A", "AB", "B")

	changed, err := m.RenameUnitEntry("A", "Z")
	require.NoError(t, err)
	require.True(t, changed)

	names, err := m.ParseUnitList()
	require.NoError(t, err)
	require.Equal(t, []string{"main", "Z", "AB", "B"}, names)

	changed, err = m.RenameUnitEntry("missing", "X")
	require.NoError(t, err)
	require.False(t, changed)
}

func TestRenameUnitEntry_TargetAlreadyListed(t *testing.T) {
	m, _ := newManifest(t, "main", "A", "Z")

	changed, err := m.RenameUnitEntry("A", "Z")
	require.NoError(t, err)
	require.True(t, changed)

	names, err := m.ParseUnitList()
	require.NoError(t, err)
	require.Equal(t, []string{"main", "Z"}, names)
}

func TestRemoveUnitEntry(t *testing.T) {
	m, fs := newManifest(t, "main", "A", "AB")

	changed, err := m.RemoveUnitEntry("A")
	require.NoError(t, err)
	require.True(t, changed)
	require.Contains(t, fs.Content(makefilePath), "OBJ_FILES =  $(OBJECTS)main.o $(OBJECTS)AB.o\n")

	changed, err = m.RemoveUnitEntry("A")
	require.NoError(t, err)
	require.False(t, changed)
}

func TestFlags(t *testing.T) {
	m, fs := newManifest(t, "main")

	flags, err := m.Flags()
	require.NoError(t, err)
	require.Equal(t, "-Wall -std=c++1z -g", flags)

	changed, err := m.SetFlags("-Wall -std=c++1z -O2")
	require.NoError(t, err)
	require.True(t, changed)

	content := fs.Content(makefilePath)
	require.Contains(t, content, "CFLAGS = -Wall -std=c++1z -O2\n")
	require.Contains(t, content, "OBJ_FILES =  $(OBJECTS)main.o\n")

	changed, err = m.SetFlags("-Wall -std=c++1z -O2")
	require.NoError(t, err)
	require.False(t, changed)
}

func TestSetFlags_NoFlagsLine(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile(makefilePath, []byte("OBJ_FILES = $(OBJECTS)main.o\n"))

	_, err := New(fs, makefilePath).SetFlags("-O2")
	require.ErrorIs(t, err, ErrNoFlagsLine)
}
