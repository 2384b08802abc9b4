package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/vscpp/internal/filesystem"
	"github.com/jakoblorz/vscpp/internal/substitute"
)

// ProjectBuilder helps create test projects
type ProjectBuilder struct {
	fs      *filesystem.MockFileSystem
	root    string
	objects []string
	flags   string
}

// NewProjectBuilder creates a new ProjectBuilder
func NewProjectBuilder(root string) *ProjectBuilder {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir(root)
	fs.SetCurrentDir(root)

	return &ProjectBuilder{
		fs:    fs,
		root:  root,
		flags: "-Wall -std=c++1z -g",
	}
}

// AddHeader adds <name>.h with a pragma guard followed by the given includes
func (pb *ProjectBuilder) AddHeader(name string, includes ...string) *ProjectBuilder {
	content := "#pragma once\n" + includeLines(includes)
	pb.fs.AddFile(filepath.Join(pb.root, name+".h"), []byte(content))
	return pb
}

// AddSource adds <name>.cpp including the given headers
func (pb *ProjectBuilder) AddSource(name string, includes ...string) *ProjectBuilder {
	pb.fs.AddFile(filepath.Join(pb.root, name+".cpp"), []byte(includeLines(includes)))
	return pb
}

// AddUnit adds a header/source pair where the source includes its own header
// and the extra includes, and registers the unit in the makefile
func (pb *ProjectBuilder) AddUnit(name string, includes ...string) *ProjectBuilder {
	pb.AddHeader(name)
	pb.AddSource(name, append([]string{name}, includes...)...)
	return pb.Register(name)
}

// Register lists name in the makefile object list without creating files
func (pb *ProjectBuilder) Register(name string) *ProjectBuilder {
	pb.objects = append(pb.objects, name)
	return pb
}

// AddFile adds an arbitrary file relative to the project root
func (pb *ProjectBuilder) AddFile(rel, content string) *ProjectBuilder {
	pb.fs.AddFile(filepath.Join(pb.root, rel), []byte(content))
	return pb
}

// WithMain adds main.cpp and registers it, like a freshly scaffolded project
func (pb *ProjectBuilder) WithMain(includes ...string) *ProjectBuilder {
	pb.AddSource("main", includes...)
	return pb.Register("main")
}

// Build writes the makefile (when any unit was registered) and returns the
// filesystem
func (pb *ProjectBuilder) Build() *filesystem.MockFileSystem {
	if len(pb.objects) > 0 {
		pb.fs.AddFile(filepath.Join(pb.root, MakefileName), []byte(Makefile(pb.flags, pb.objects...)))
	}
	return pb.fs
}

// Makefile renders a minimal makefile with the given CFLAGS and objects
func Makefile(flags string, objects ...string) string {
	entries := make([]string, len(objects))
	for i, name := range objects {
		entries[i] = substitute.ObjectEntryFor(name)
	}

	return fmt.Sprintf(`CC = g++-7
CFLAGS = %s
EXEC_NAME = bin/app
OBJECTS = bin/objects/
OBJ_FILES =  %s

all : $(EXEC_NAME)

clean :
	rm $(EXEC_NAME) $(OBJ_FILES)
`, flags, strings.Join(entries, " "))
}

func includeLines(headers []string) string {
	var b strings.Builder
	for _, h := range headers {
		b.WriteString(fmt.Sprintf("#include \"%s.h\"\n", h))
	}
	return b.String()
}
