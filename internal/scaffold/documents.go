// Package scaffold emits the fixed files of a new project: the VS Code
// launch and task configuration, the makefile and main.cpp. Every document
// is built fresh from its arguments.
package scaffold

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/jakoblorz/vscpp/internal/config"
	"github.com/jakoblorz/vscpp/internal/models"
	"github.com/jakoblorz/vscpp/internal/substitute"
)

// MainSource is the content of a freshly scaffolded main.cpp.
const MainSource = `#include <iostream>
using namespace std;

int main(int argc,char* argv[])
{
	return 0;
}
`

const makefileTemplate = `CC = {{ .Compiler }}
CFLAGS = {{ .Flags }}
EXEC_NAME = {{ .BinDir }}/{{ .Name }}
OBJECTS = {{ .ObjectsDir }}
DIR = {{ .Dirs | join " " }}
OBJ_FILES =  {{ .Objects | join " " }}

all : $(EXEC_NAME)

clean :
	rm $(EXEC_NAME) $(OBJ_FILES)


$(EXEC_NAME) : $(DIR) $(OBJ_FILES)
	$(CC) -o $(EXEC_NAME) $(OBJ_FILES)

$(OBJECTS)%.o: %{{ .SourceExt }}
	$(CC) $(CFLAGS) -o $@ -c $<

$(DIR) :
{{- range .Dirs }}
	mkdir -p {{ . }}
{{- end }}
`

type makefileData struct {
	Name       string
	Compiler   string
	Flags      string
	BinDir     string
	ObjectsDir string
	SourceExt  string
	Dirs       []string
	Objects    []string
}

// Makefile renders the build script for executable name.
func Makefile(name string, profile models.Profile, cfg *config.Config) (string, error) {
	tmpl, err := template.New("makefile").Funcs(sprig.TxtFuncMap()).Parse(makefileTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse makefile template: %w", err)
	}

	binDir := strings.TrimSuffix(cfg.BinDir, "/")
	data := makefileData{
		Name:       name,
		Compiler:   cfg.Compiler,
		Flags:      cfg.FlagsFor(profile),
		BinDir:     binDir,
		ObjectsDir: cfg.ObjectsDir,
		SourceExt:  cfg.SourceExt,
		Dirs:       objectDirs(binDir, cfg.ObjectsDir),
		Objects:    []string{substitute.ObjectEntryFor("main")},
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute makefile template: %w", err)
	}
	return buf.String(), nil
}

// objectDirs lists the directories the build needs, parents first.
func objectDirs(binDir, objectsDir string) []string {
	objects := strings.TrimSuffix(objectsDir, "/")
	if objects == binDir {
		return []string{binDir}
	}
	return []string{binDir, objects}
}

type launchConfig struct {
	Version        string          `json:"version"`
	Configurations []launchProfile `json:"configurations"`
}

type launchProfile struct {
	Name            string         `json:"name"`
	Type            string         `json:"type"`
	Request         string         `json:"request"`
	Program         string         `json:"program"`
	Args            []string       `json:"args"`
	StopAtEntry     bool           `json:"stopAtEntry"`
	Cwd             string         `json:"cwd"`
	Environment     []string       `json:"environment"`
	ExternalConsole bool           `json:"externalConsole"`
	MIMode          string         `json:"MIMode"`
	SetupCommands   []setupCommand `json:"setupCommands"`
	PreLaunchTask   string         `json:"preLaunchTask"`
}

type setupCommand struct {
	Description    string `json:"description"`
	Text           string `json:"text"`
	IgnoreFailures bool   `json:"ignoreFailures"`
}

// LaunchJSON renders .vscode/launch.json debugging executable name.
func LaunchJSON(name string, cfg *config.Config) ([]byte, error) {
	doc := launchConfig{
		Version: "0.2.0",
		Configurations: []launchProfile{
			{
				Name:            "(gdb) Launch",
				Type:            "cppdbg",
				Request:         "launch",
				Program:         "${workspaceFolder}/" + strings.TrimSuffix(cfg.BinDir, "/") + "/" + name,
				Args:            []string{},
				Cwd:             "${workspaceFolder}",
				Environment:     []string{},
				ExternalConsole: true,
				MIMode:          "gdb",
				SetupCommands: []setupCommand{
					{
						Description:    "Enable pretty-printing for gdb",
						Text:           "-enable-pretty-printing",
						IgnoreFailures: true,
					},
				},
				PreLaunchTask: "build",
			},
		},
	}

	return marshalDocument(doc)
}

type tasksConfig struct {
	Version string `json:"version"`
	Tasks   []task `json:"tasks"`
}

type task struct {
	Label   string `json:"label"`
	Type    string `json:"type"`
	Command string `json:"command"`
}

// TasksJSON renders .vscode/tasks.json with build and clean tasks.
func TasksJSON() ([]byte, error) {
	doc := tasksConfig{
		Version: "2.0.0",
		Tasks: []task{
			{Label: "build", Type: "shell", Command: "make"},
			{Label: "clean", Type: "shell", Command: "make clean"},
		},
	}

	return marshalDocument(doc)
}

func marshalDocument(doc any) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}
