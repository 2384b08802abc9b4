package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	huh "github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("prompt aborted")

// Prompter asks the user for values the command line left out.
type Prompter interface {
	// ProjectName asks for the executable name of a new project.
	ProjectName(defaultName string) (string, error)
}

// IsInteractive reports whether stdin is a terminal.
func IsInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// HuhPrompter prompts with huh forms.
type HuhPrompter struct {
	out   io.Writer
	theme *huh.Theme
}

// NewHuhPrompter creates a prompter rendering to out.
func NewHuhPrompter(out io.Writer) *HuhPrompter {
	return &HuhPrompter{out: out, theme: NewHuhTheme()}
}

// NewHuhTheme returns the charm theme with the CLI's accent color.
func NewHuhTheme() *huh.Theme {
	theme := huh.ThemeCharm()
	accent := lipgloss.Color("#7D56F4")
	theme.Focused.Title = theme.Focused.Title.Foreground(accent)
	theme.Focused.Base = theme.Focused.Base.BorderForeground(accent)
	return theme
}

func (p *HuhPrompter) ProjectName(defaultName string) (string, error) {
	name := defaultName

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Executable name").
				Description("Used for bin/<name> and the debugger launch target").
				Value(&name).
				Validate(validateProjectName),
		),
	).WithTheme(p.theme).WithProgramOptions(tea.WithOutput(p.out))

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrAborted
		}
		return "", err
	}

	return strings.TrimSpace(name), nil
}

func validateProjectName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("name is required")
	}
	if strings.ContainsAny(s, "/\\ \t\"") {
		return fmt.Errorf("name must not contain spaces, quotes or slashes")
	}
	return nil
}

// StaticPrompter answers every prompt with fixed values.
type StaticPrompter struct {
	Name string
	Err  error
}

func (p *StaticPrompter) ProjectName(defaultName string) (string, error) {
	if p.Err != nil {
		return "", p.Err
	}
	if p.Name == "" {
		return defaultName, nil
	}
	return p.Name, nil
}
