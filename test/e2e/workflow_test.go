package e2e_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jakoblorz/vscpp/internal/cli"
	"github.com/jakoblorz/vscpp/internal/filesystem"
	"github.com/jakoblorz/vscpp/internal/manifest"
	"github.com/jakoblorz/vscpp/internal/tui"
)

func runVscpp(t *testing.T, dir string, args ...string) string {
	t.Helper()

	var buf bytes.Buffer
	cmd := cli.NewRootCommand(filesystem.NewOSFileSystem(), &tui.StaticPrompter{})
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append(args, "--dir", dir))

	if err := cmd.Execute(); err != nil {
		t.Fatalf("vscpp %s failed: %v\n%s", strings.Join(args, " "), err, buf.String())
	}
	return buf.String()
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func registeredUnits(t *testing.T, dir string) []string {
	t.Helper()

	names, err := manifest.New(filesystem.NewOSFileSystem(), filepath.Join(dir, "makefile")).ParseUnitList()
	if err != nil {
		t.Fatalf("failed to parse makefile: %v", err)
	}
	return names
}

func assertUnits(t *testing.T, dir string, expected ...string) {
	t.Helper()

	got := registeredUnits(t, dir)
	if strings.Join(got, ",") != strings.Join(expected, ",") {
		t.Errorf("expected units %v, got %v", expected, got)
	}
}

func TestFullWorkflow(t *testing.T) {
	dir := t.TempDir()

	// Initialize the project
	runVscpp(t, dir, "demo", "--project")

	for _, rel := range []string{".vscode/launch.json", ".vscode/tasks.json", "makefile", "main.cpp"} {
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			t.Fatalf("expected %s to exist: %v", rel, err)
		}
	}
	assertUnits(t, dir, "main")

	// Add two units, the second including the first
	runVscpp(t, dir, "Logger")
	runVscpp(t, dir, "Sink")
	assertUnits(t, dir, "main", "Logger", "Sink")

	sinkSource := filepath.Join(dir, "Sink.cpp")
	if err := os.WriteFile(sinkSource, []byte("#include \"Sink.h\"\n#include \"Logger.h\"\n"), 0644); err != nil {
		t.Fatalf("failed to write Sink.cpp: %v", err)
	}
	mainSource := filepath.Join(dir, "main.cpp")
	mainContent := "#include <iostream>\n#include \"Logger.h\"\r\n" + readFile(t, mainSource)
	if err := os.WriteFile(mainSource, []byte(mainContent), 0644); err != nil {
		t.Fatalf("failed to write main.cpp: %v", err)
	}

	// Rename Logger everywhere
	runVscpp(t, dir, "Logger", "--rename", "Log")

	if _, err := os.Stat(filepath.Join(dir, "Logger.h")); !os.IsNotExist(err) {
		t.Errorf("expected Logger.h to be gone, got %v", err)
	}
	if got := readFile(t, filepath.Join(dir, "Log.cpp")); got != "#include \"Log.h\"\n" {
		t.Errorf("unexpected Log.cpp content: %q", got)
	}
	if got := readFile(t, sinkSource); got != "#include \"Sink.h\"\n#include \"Log.h\"\n" {
		t.Errorf("unexpected Sink.cpp content: %q", got)
	}
	if got := readFile(t, mainSource); !strings.HasPrefix(got, "#include <iostream>\n#include \"Log.h\"\r\n") {
		t.Errorf("expected main.cpp include to be renamed with CRLF kept, got %q", got)
	}
	assertUnits(t, dir, "main", "Log", "Sink")

	// Erase it again
	runVscpp(t, dir, "Log", "--erase")

	if got := readFile(t, sinkSource); got != "#include \"Sink.h\"\n" {
		t.Errorf("unexpected Sink.cpp content after erase: %q", got)
	}
	if strings.Contains(readFile(t, mainSource), "Log.h") {
		t.Error("expected include of Log.h to be removed from main.cpp")
	}
	assertUnits(t, dir, "main", "Sink")

	// Switch profiles
	runVscpp(t, dir, "--release")
	if !strings.Contains(readFile(t, filepath.Join(dir, "makefile")), "CFLAGS = -Wall -std=c++1z -O2 -DNDEBUG\n") {
		t.Error("expected release flags in makefile")
	}
	runVscpp(t, dir, "--debug")
	if !strings.Contains(readFile(t, filepath.Join(dir, "makefile")), "CFLAGS = -Wall -std=c++1z -g\n") {
		t.Error("expected debug flags in makefile")
	}

	// No temp files are left behind by the atomic writes
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read project directory: %v", err)
	}
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".vscpp-") {
			t.Errorf("unexpected temp file %s", entry.Name())
		}
	}
}

func TestImportAllRespectsGitIgnore(t *testing.T) {
	dir := t.TempDir()
	runVscpp(t, dir, "demo", "--project")

	files := map[string]string{
		".gitignore":      "generated_*.cpp\n",
		"legacy.cpp":      "int legacy() { return 1; }\n",
		"generated_a.cpp": "int generated() { return 2; }\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	runVscpp(t, dir, "--all")
	assertUnits(t, dir, "main", "legacy")

	// Idempotent
	runVscpp(t, dir, "--all")
	assertUnits(t, dir, "main", "legacy")
}

func TestProjectConfigFile(t *testing.T) {
	dir := t.TempDir()

	config := "compiler: clang++\nstandard: c++17\nheader_ext: .hpp\nsource_ext: .cc\n"
	if err := os.WriteFile(filepath.Join(dir, ".vscpp.yaml"), []byte(config), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	runVscpp(t, dir, "demo", "--project")
	runVscpp(t, dir, "Parser")

	makefile := readFile(t, filepath.Join(dir, "makefile"))
	if !strings.Contains(makefile, "CC = clang++\n") {
		t.Errorf("expected configured compiler, got:\n%s", makefile)
	}
	if !strings.Contains(makefile, "CFLAGS = -Wall -std=c++17 -g\n") {
		t.Errorf("expected configured standard, got:\n%s", makefile)
	}
	if got := readFile(t, filepath.Join(dir, "Parser.cc")); got != "#include \"Parser.hpp\"\n" {
		t.Errorf("unexpected Parser.cc content: %q", got)
	}
	assertUnits(t, dir, "main", "Parser")
}
