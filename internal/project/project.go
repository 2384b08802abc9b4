// Package project is the filesystem view of a C++ project directory: it
// enumerates header and source artifacts and maps unit names to paths.
package project

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
	"github.com/jakoblorz/vscpp/internal/config"
	"github.com/jakoblorz/vscpp/internal/filesystem"
	"github.com/jakoblorz/vscpp/internal/models"
)

// MakefileName is the build script holding the object list and CFLAGS.
const MakefileName = "makefile"

// View gives access to the units of one project directory. It holds no
// state about units: every query lists the directory again.
type View struct {
	fs     filesystem.FileSystem
	cfg    *config.Config
	ignore gitignore.GitIgnore

	RootPath string
}

// Open creates a View for root. An empty root means the working directory.
func Open(fs filesystem.FileSystem, root string, cfg *config.Config) (*View, error) {
	if root == "" {
		cwd, err := fs.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		root = cwd
	}
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	v := &View{
		fs:       fs,
		cfg:      cfg,
		RootPath: filepath.Clean(root),
	}

	ignore, err := v.loadGitIgnore()
	if err != nil {
		return nil, err
	}
	v.ignore = ignore

	return v, nil
}

func (v *View) loadGitIgnore() (gitignore.GitIgnore, error) {
	ignorePath := filepath.Join(v.RootPath, ".gitignore")
	if !v.fs.Exists(ignorePath) {
		return nil, nil
	}

	data, err := v.fs.ReadFile(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read .gitignore: %w", err)
	}

	return gitignore.New(bytes.NewReader(data), v.RootPath, nil), nil
}

// FS returns the filesystem the view reads from.
func (v *View) FS() filesystem.FileSystem {
	return v.fs
}

// Config returns the project conventions.
func (v *View) Config() *config.Config {
	return v.cfg
}

// HeaderFile is the header file name of a unit, e.g. "Logger.h".
func (v *View) HeaderFile(name string) string {
	return name + v.cfg.HeaderExt
}

// SourceFile is the source file name of a unit, e.g. "Logger.cpp".
func (v *View) SourceFile(name string) string {
	return name + v.cfg.SourceExt
}

func (v *View) HeaderPath(name string) string {
	return filepath.Join(v.RootPath, v.HeaderFile(name))
}

func (v *View) SourcePath(name string) string {
	return filepath.Join(v.RootPath, v.SourceFile(name))
}

// MakefilePath is the path of the build script.
func (v *View) MakefilePath() string {
	return filepath.Join(v.RootPath, MakefileName)
}

func (v *View) HasHeader(name string) bool {
	return v.isFile(v.HeaderPath(name))
}

func (v *View) HasSource(name string) bool {
	return v.isFile(v.SourcePath(name))
}

func (v *View) isFile(path string) bool {
	info, err := v.fs.Stat(path)
	return err == nil && !info.IsDir()
}

// Unit resolves the artifacts currently on disk for name.
func (v *View) Unit(name string) *models.Unit {
	unit := &models.Unit{Name: name}
	if v.HasHeader(name) {
		unit.HeaderPath = v.HeaderPath(name)
	}
	if v.HasSource(name) {
		unit.SourcePath = v.SourcePath(name)
	}
	return unit
}

// Artifacts lists every header and source file in the project root:
// headers first, then sources, each in directory order. Ignored files are
// included so no include directive is left behind.
func (v *View) Artifacts() ([]string, error) {
	headers, err := v.listByExt(v.cfg.HeaderExt, false)
	if err != nil {
		return nil, err
	}
	sources, err := v.listByExt(v.cfg.SourceExt, false)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(headers)+len(sources))
	for _, name := range headers {
		paths = append(paths, v.HeaderPath(name))
	}
	for _, name := range sources {
		paths = append(paths, v.SourcePath(name))
	}
	return paths, nil
}

// SourceUnits lists the names of units that have a source artifact and are
// not ignored by the project's .gitignore.
func (v *View) SourceUnits() ([]string, error) {
	return v.listByExt(v.cfg.SourceExt, true)
}

// Units lists every observable unit, ordered by name.
func (v *View) Units() ([]*models.Unit, error) {
	headers, err := v.listByExt(v.cfg.HeaderExt, false)
	if err != nil {
		return nil, err
	}
	sources, err := v.listByExt(v.cfg.SourceExt, false)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*models.Unit)
	for _, name := range headers {
		byName[name] = &models.Unit{Name: name, HeaderPath: v.HeaderPath(name)}
	}
	for _, name := range sources {
		unit, ok := byName[name]
		if !ok {
			unit = &models.Unit{Name: name}
			byName[name] = unit
		}
		unit.SourcePath = v.SourcePath(name)
	}

	units := make([]*models.Unit, 0, len(byName))
	for _, unit := range byName {
		units = append(units, unit)
	}
	sort.Slice(units, func(i, j int) bool {
		return units[i].Name < units[j].Name
	})
	return units, nil
}

// listByExt returns unit names of regular files with the given extension,
// dropping .gitignore matches when skipIgnored is set.
func (v *View) listByExt(ext string, skipIgnored bool) ([]string, error) {
	entries, err := v.fs.ReadDir(v.RootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read project directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		fileName := entry.Name()
		if !strings.HasSuffix(fileName, ext) || fileName == ext {
			continue
		}

		if skipIgnored && v.ignore != nil {
			if match := v.ignore.Relative(fileName, false); match != nil && match.Ignore() {
				continue
			}
		}

		names = append(names, strings.TrimSuffix(fileName, ext))
	}

	return names, nil
}
