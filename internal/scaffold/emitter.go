package scaffold

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/vscpp/internal/config"
	"github.com/jakoblorz/vscpp/internal/filesystem"
	"github.com/jakoblorz/vscpp/internal/models"
	"github.com/jakoblorz/vscpp/internal/project"
)

// ErrInvalidName indicates an executable name that cannot be used in paths.
var ErrInvalidName = errors.New("invalid project name")

// Result lists the files InitProject wrote and the ones it left alone.
type Result struct {
	Written []string
	Skipped []string
}

// Emitter writes scaffold files into a project root.
type Emitter struct {
	fs   filesystem.FileSystem
	root string
	cfg  *config.Config
}

// NewEmitter creates an Emitter for root
func NewEmitter(fs filesystem.FileSystem, root string, cfg *config.Config) *Emitter {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	return &Emitter{fs: fs, root: root, cfg: cfg}
}

type document struct {
	path   string
	render func() ([]byte, error)
}

// InitProject writes launch.json, tasks.json, the makefile and main.cpp for
// executable name. Files that already exist are skipped unless force is set.
func (e *Emitter) InitProject(name string, profile models.Profile, force bool) (*Result, error) {
	if name == "" || strings.ContainsAny(name, "/\\ \t\r\n\"") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	vscodeDir := filepath.Join(e.root, ".vscode")
	docs := []document{
		{
			path:   filepath.Join(vscodeDir, "launch.json"),
			render: func() ([]byte, error) { return LaunchJSON(name, e.cfg) },
		},
		{
			path:   filepath.Join(vscodeDir, "tasks.json"),
			render: TasksJSON,
		},
		{
			path: filepath.Join(e.root, "main"+e.cfg.SourceExt),
			render: func() ([]byte, error) {
				return []byte(MainSource), nil
			},
		},
		{
			path: filepath.Join(e.root, project.MakefileName),
			render: func() ([]byte, error) {
				content, err := Makefile(name, profile, e.cfg)
				return []byte(content), err
			},
		},
	}

	if err := e.fs.MkdirAll(vscodeDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .vscode directory: %w", err)
	}

	result := &Result{}
	for _, doc := range docs {
		if e.fs.Exists(doc.path) && !force {
			result.Skipped = append(result.Skipped, doc.path)
			continue
		}

		data, err := doc.render()
		if err != nil {
			return result, err
		}
		if err := e.fs.WriteFile(doc.path, data, 0644); err != nil {
			return result, fmt.Errorf("failed to write %s: %w", filepath.Base(doc.path), err)
		}
		result.Written = append(result.Written, doc.path)
	}

	return result, nil
}
