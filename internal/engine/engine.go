// Package engine keeps a unit's header, source, makefile entry and every
// include directive naming it consistent across create, rename and delete.
//
// Every operation works on what is on disk at call time and mutates in a
// fixed order: the unit's own artifacts first, then the makefile, then the
// include directives in all other artifacts. An interrupted operation
// therefore leaves the makefile and includes lagging behind the files.
package engine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jakoblorz/vscpp/internal/manifest"
	"github.com/jakoblorz/vscpp/internal/models"
	"github.com/jakoblorz/vscpp/internal/project"
	"github.com/jakoblorz/vscpp/internal/substitute"
)

const (
	filePerm      = 0644
	headerContent = "#pragma once\n"
)

// Engine runs unit operations against one project directory.
type Engine struct {
	view     *project.View
	manifest *manifest.Manifest
}

// New creates an Engine for the project behind view
func New(view *project.View) *Engine {
	return &Engine{
		view:     view,
		manifest: manifest.New(view.FS(), view.MakefilePath()),
	}
}

// Manifest returns the makefile adapter the engine writes through
func (e *Engine) Manifest() *manifest.Manifest {
	return e.manifest
}

// CreateUnit creates the header (and, unless headerOnly, the source) of a
// unit and registers it in the makefile. Existing artifacts are kept as is.
func (e *Engine) CreateUnit(name string, headerOnly bool) (*models.CreateResult, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	fs := e.view.FS()
	result := &models.CreateResult{Name: name}

	if !e.view.HasHeader(name) {
		if err := fs.WriteFile(e.view.HeaderPath(name), []byte(headerContent), filePerm); err != nil {
			return result, fmt.Errorf("failed to create header: %w", err)
		}
		result.HeaderCreated = true
	}

	if headerOnly {
		return result, nil
	}

	if !e.view.HasSource(name) {
		content := fmt.Sprintf("#include \"%s\"\n", e.view.HeaderFile(name))
		if err := fs.WriteFile(e.view.SourcePath(name), []byte(content), filePerm); err != nil {
			return result, fmt.Errorf("failed to create source: %w", err)
		}
		result.SourceCreated = true
	}

	if !e.manifest.Exists() {
		result.ManifestMissing = true
		return result, nil
	}

	registered, err := e.register(name)
	if err != nil {
		return result, err
	}
	result.Registered = registered

	return result, nil
}

// RenameUnit renames a unit's artifacts, its makefile entry and every
// include of its header. A unit without artifacts still gets its includes
// and makefile entry rewritten.
func (e *Engine) RenameUnit(oldName, newName string) (*models.RenameResult, error) {
	if err := validateName(oldName); err != nil {
		return nil, err
	}
	if err := validateName(newName); err != nil {
		return nil, err
	}

	result := &models.RenameResult{OldName: oldName, NewName: newName}
	if oldName == newName {
		return result, nil
	}

	oldUnit := e.view.Unit(oldName)
	newUnit := e.view.Unit(newName)
	if (oldUnit.HasHeader() && newUnit.HasHeader()) || (oldUnit.HasSource() && newUnit.HasSource()) {
		return nil, fmt.Errorf("%w: %s", ErrUnitExists, newName)
	}

	fs := e.view.FS()

	if oldUnit.HasHeader() {
		if err := fs.Rename(oldUnit.HeaderPath, e.view.HeaderPath(newName)); err != nil {
			return result, fmt.Errorf("failed to rename header: %w", err)
		}
		result.HeaderRenamed = true
	}

	if oldUnit.HasSource() {
		if err := fs.Rename(oldUnit.SourcePath, e.view.SourcePath(newName)); err != nil {
			return result, fmt.Errorf("failed to rename source: %w", err)
		}
		result.SourceRenamed = true
	}

	if e.manifest.Exists() {
		renamed, err := e.manifest.RenameUnitEntry(oldName, newName)
		if err != nil {
			return result, fmt.Errorf("failed to update makefile: %w", err)
		}
		result.EntryRenamed = renamed
	}

	rewritten, err := e.rewriteArtifacts(substitute.RenameInclude(e.view.HeaderFile(oldName), e.view.HeaderFile(newName)))
	result.RewrittenFiles = rewritten
	if err != nil {
		return result, err
	}

	return result, nil
}

// DeleteUnit removes a unit's artifacts, its makefile entry and every
// include of its header.
func (e *Engine) DeleteUnit(name string) (*models.DeleteResult, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	fs := e.view.FS()
	unit := e.view.Unit(name)
	result := &models.DeleteResult{Name: name}

	if unit.HasHeader() {
		if err := fs.Remove(unit.HeaderPath); err != nil {
			return result, fmt.Errorf("failed to delete header: %w", err)
		}
		result.HeaderDeleted = true
	}

	if unit.HasSource() {
		if err := fs.Remove(unit.SourcePath); err != nil {
			return result, fmt.Errorf("failed to delete source: %w", err)
		}
		result.SourceDeleted = true
	}

	if e.manifest.Exists() {
		removed, err := e.manifest.RemoveUnitEntry(name)
		if err != nil {
			return result, fmt.Errorf("failed to update makefile: %w", err)
		}
		result.EntryRemoved = removed
	}

	rewritten, err := e.rewriteArtifacts(substitute.EraseInclude(e.view.HeaderFile(name)))
	result.RewrittenFiles = rewritten
	if err != nil {
		return result, err
	}

	return result, nil
}

// ImportUnit registers an existing source artifact in the makefile. A unit
// that is already registered is reported in Skipped.
func (e *Engine) ImportUnit(name string) (*models.ImportResult, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if !e.view.HasSource(name) {
		return nil, fmt.Errorf("%w: %s", ErrUnitNotFound, e.view.SourceFile(name))
	}
	if !e.manifest.Exists() {
		return nil, ErrNoManifest
	}

	registered, err := e.register(name)
	if err != nil {
		return nil, err
	}

	result := &models.ImportResult{}
	if registered {
		result.Imported = []string{name}
	} else {
		result.Skipped = []string{name}
	}
	return result, nil
}

// ImportAll registers every source artifact that has no makefile entry yet,
// in directory listing order.
func (e *Engine) ImportAll() (*models.ImportResult, error) {
	if !e.manifest.Exists() {
		return nil, ErrNoManifest
	}

	sources, err := e.view.SourceUnits()
	if err != nil {
		return nil, err
	}

	added, err := e.manifest.AppendUnits(sources...)
	if err != nil {
		return nil, fmt.Errorf("failed to update makefile: %w", err)
	}

	result := &models.ImportResult{Imported: added}
	for _, name := range sources {
		if !slices.Contains(added, name) {
			result.Skipped = append(result.Skipped, name)
		}
	}
	return result, nil
}

// SetBuildProfile rewrites the CFLAGS line for profile. It returns whether
// the makefile changed.
func (e *Engine) SetBuildProfile(profile models.Profile) (bool, error) {
	if !profile.IsValid() {
		return false, fmt.Errorf("%w: %q (must be debug or release)", ErrInvalidProfile, profile)
	}

	changed, err := e.manifest.SetFlags(e.view.Config().FlagsFor(profile))
	if err != nil {
		return false, err
	}
	return changed, nil
}

// register adds name to the makefile. The source artifact must exist so the
// makefile never lists an object that cannot be built.
func (e *Engine) register(name string) (bool, error) {
	if !e.view.HasSource(name) {
		return false, fmt.Errorf("%w: %s", ErrUnitNotFound, e.view.SourceFile(name))
	}

	added, err := e.manifest.AppendUnit(name)
	if err != nil {
		return false, fmt.Errorf("failed to register %s: %w", name, err)
	}
	return added, nil
}

// rewriteArtifacts applies rule to every header and source in the project
// and returns the files that changed.
func (e *Engine) rewriteArtifacts(rule substitute.Rule) ([]string, error) {
	paths, err := e.view.Artifacts()
	if err != nil {
		return nil, err
	}

	var rewritten []string
	for _, path := range paths {
		changed, err := substitute.Substitute(e.view.FS(), path, rule)
		if err != nil {
			return rewritten, err
		}
		if changed {
			rewritten = append(rewritten, path)
		}
	}
	return rewritten, nil
}

func validateName(name string) error {
	if name == "" {
		return ErrMissingName
	}
	if name == "." || name == ".." || strings.ContainsAny(name, "/\\\"<> \t\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
