package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/jakoblorz/vscpp/internal/config"
	"github.com/jakoblorz/vscpp/internal/engine"
	"github.com/jakoblorz/vscpp/internal/filesystem"
	"github.com/jakoblorz/vscpp/internal/models"
	"github.com/jakoblorz/vscpp/internal/project"
	"github.com/jakoblorz/vscpp/internal/scaffold"
	"github.com/jakoblorz/vscpp/internal/tui"
	"github.com/spf13/cobra"
)

// RootCommand runs the operations requested by one invocation
type RootCommand struct {
	fs          filesystem.FileSystem
	prompter    tui.Prompter
	interactive func() bool
	opts        options
}

type options struct {
	noSource   bool
	erase      bool
	rename     string
	project    bool
	all        bool
	importFile bool
	release    bool
	debug      bool
	force      bool
	dir        string
}

// session carries the per-invocation state shared by the operations.
type session struct {
	out    io.Writer
	root   string
	name   string
	cfg    *config.Config
	view   *project.View
	engine *engine.Engine
	failed bool
}

// Run executes the requested operations in a fixed order: erase, rename,
// project init, build profile, import. Without any of them it creates the
// unit. Request errors are reported and the next operation still runs;
// filesystem errors stop the invocation.
func (c *RootCommand) Run(cmd *cobra.Command, args []string) error {
	s, err := c.open(cmd.OutOrStdout(), args)
	if err != nil {
		return err
	}

	steps := []struct {
		enabled bool
		run     func(*session) error
	}{
		{c.opts.erase, c.runErase},
		{c.opts.rename != "", c.runRename},
		{c.opts.project, c.runProject},
		{c.opts.release || c.opts.debug, c.runProfile},
		{c.opts.all || c.opts.importFile, c.runImport},
	}

	requested := false
	for _, step := range steps {
		if !step.enabled {
			continue
		}
		requested = true
		if err := s.handle(step.run(s)); err != nil {
			return err
		}
	}

	if !requested {
		if err := s.handle(c.runCreate(s)); err != nil {
			return err
		}
	}

	if s.failed {
		return errOperationsFailed
	}
	return nil
}

func (c *RootCommand) open(out io.Writer, args []string) (*session, error) {
	root := c.opts.dir
	if root == "" {
		cwd, err := c.fs.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		root = cwd
	} else if !filepath.IsAbs(root) {
		cwd, err := c.fs.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		root = filepath.Join(cwd, root)
	}

	cfg, err := config.Load(c.fs, root)
	if err != nil {
		return nil, err
	}

	view, err := project.Open(c.fs, root, cfg)
	if err != nil {
		return nil, err
	}

	s := &session{
		out:    out,
		root:   view.RootPath,
		cfg:    cfg,
		view:   view,
		engine: engine.New(view),
	}
	if len(args) > 0 {
		s.name = args[0]
	}
	return s, nil
}

// handle prints request errors and swallows them; anything else is returned.
func (s *session) handle(err error) error {
	if err == nil {
		return nil
	}
	if engine.IsUserError(err) || errors.Is(err, scaffold.ErrInvalidName) || errors.Is(err, tui.ErrAborted) {
		printError(s.out, err)
		s.failed = true
		return nil
	}
	return err
}

func (s *session) requireName(operation string) error {
	if s.name == "" {
		return fmt.Errorf("%s: %w", operation, engine.ErrMissingName)
	}
	return nil
}

func (s *session) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *session) rel(path string) string {
	if rel, err := filepath.Rel(s.root, path); err == nil {
		return rel
	}
	return path
}

func (c *RootCommand) runCreate(s *session) error {
	if err := s.requireName("create"); err != nil {
		return err
	}

	result, err := s.engine.CreateUnit(s.name, c.opts.noSource)
	if err != nil {
		return err
	}

	s.printf("%s\n", tui.Success(fmt.Sprintf("Unit %s ready", result.Name)))
	s.printCreated(result.HeaderCreated, s.view.HeaderFile(result.Name))
	if !c.opts.noSource {
		s.printCreated(result.SourceCreated, s.view.SourceFile(result.Name))
	}
	switch {
	case result.ManifestMissing:
		s.printf("%s\n", tui.Warning("no makefile found, unit not registered (run with --project first)"))
	case result.Registered:
		s.printf("%s\n", tui.Detail("registered in makefile"))
	}
	return nil
}

func (s *session) printCreated(created bool, file string) {
	if created {
		s.printf("%s\n", tui.Detail("created "+file))
	} else {
		s.printf("%s\n", tui.Detail("kept existing "+file))
	}
}

func (c *RootCommand) runErase(s *session) error {
	if err := s.requireName("erase"); err != nil {
		return err
	}

	result, err := s.engine.DeleteUnit(s.name)
	if err != nil {
		return err
	}

	if !result.Touched() {
		s.printf("%s\n", tui.Warning(fmt.Sprintf("nothing references unit %s", s.name)))
		return nil
	}

	s.printf("%s\n", tui.Success(fmt.Sprintf("Erased unit %s", s.name)))
	if result.HeaderDeleted {
		s.printf("%s\n", tui.Detail("deleted "+s.view.HeaderFile(s.name)))
	}
	if result.SourceDeleted {
		s.printf("%s\n", tui.Detail("deleted "+s.view.SourceFile(s.name)))
	}
	if result.EntryRemoved {
		s.printf("%s\n", tui.Detail("removed from makefile"))
	}
	for _, path := range result.RewrittenFiles {
		s.printf("%s\n", tui.Detail("removed include from "+s.rel(path)))
	}
	return nil
}

func (c *RootCommand) runRename(s *session) error {
	if err := s.requireName("rename"); err != nil {
		return err
	}

	result, err := s.engine.RenameUnit(s.name, c.opts.rename)
	if err != nil {
		return err
	}

	if !result.Touched() {
		s.printf("%s\n", tui.Warning(fmt.Sprintf("nothing references unit %s", s.name)))
		return nil
	}

	s.printf("%s\n", tui.Success(fmt.Sprintf("Renamed unit %s to %s", result.OldName, result.NewName)))
	if result.HeaderRenamed {
		s.printf("%s\n", tui.Detail(s.view.HeaderFile(result.OldName)+" -> "+s.view.HeaderFile(result.NewName)))
	}
	if result.SourceRenamed {
		s.printf("%s\n", tui.Detail(s.view.SourceFile(result.OldName)+" -> "+s.view.SourceFile(result.NewName)))
	}
	if result.EntryRenamed {
		s.printf("%s\n", tui.Detail("updated makefile"))
	}
	for _, path := range result.RewrittenFiles {
		s.printf("%s\n", tui.Detail("updated include in "+s.rel(path)))
	}

	// later operations in this invocation refer to the unit by its new name
	s.name = result.NewName
	return nil
}

func (c *RootCommand) runProject(s *session) error {
	name := s.name
	if name == "" {
		name = filepath.Base(s.root)
		if c.interactive != nil && c.interactive() && c.prompter != nil {
			prompted, err := c.prompter.ProjectName(name)
			if err != nil {
				return err
			}
			name = prompted
		}
	}

	profile := models.ProfileDebug
	if c.opts.release {
		profile = models.ProfileRelease
	}

	emitter := scaffold.NewEmitter(c.fs, s.root, s.cfg)
	result, err := emitter.InitProject(name, profile, c.opts.force)
	if err != nil {
		return err
	}

	s.printf("%s\n", tui.Success(fmt.Sprintf("Initialized project %s", name)))
	for _, path := range result.Written {
		s.printf("%s\n", tui.Detail("wrote "+s.rel(path)))
	}
	for _, path := range result.Skipped {
		s.printf("%s\n", tui.Detail("kept existing "+s.rel(path)+" (use --force to overwrite)"))
	}
	return nil
}

func (c *RootCommand) runProfile(s *session) error {
	profile := models.ProfileDebug
	if c.opts.release {
		profile = models.ProfileRelease
	}

	changed, err := s.engine.SetBuildProfile(profile)
	if err != nil {
		return err
	}

	if changed {
		s.printf("%s\n", tui.Success(fmt.Sprintf("Switched makefile to %s flags", profile)))
	} else {
		s.printf("%s\n", tui.Detail(fmt.Sprintf("makefile already uses %s flags", profile)))
	}
	return nil
}

func (c *RootCommand) runImport(s *session) error {
	var (
		result *models.ImportResult
		err    error
	)
	if c.opts.all {
		result, err = s.engine.ImportAll()
	} else {
		if err := s.requireName("import"); err != nil {
			return err
		}
		result, err = s.engine.ImportUnit(s.name)
	}
	if err != nil {
		return err
	}

	if len(result.Imported) == 0 {
		s.printf("%s\n", tui.Detail("makefile already lists every requested unit"))
		return nil
	}

	s.printf("%s\n", tui.Success(fmt.Sprintf("Registered %d unit(s) in makefile", len(result.Imported))))
	for _, name := range result.Imported {
		s.printf("%s\n", tui.Detail(name))
	}
	return nil
}
