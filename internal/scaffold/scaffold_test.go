package scaffold

import (
	"encoding/json"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/jakoblorz/vscpp/internal/config"
	"github.com/jakoblorz/vscpp/internal/filesystem"
	"github.com/jakoblorz/vscpp/internal/manifest"
	"github.com/jakoblorz/vscpp/internal/models"
	"github.com/stretchr/testify/require"
)

func TestDocumentSnapshots(t *testing.T) {
	cfg := config.NewDefaultConfig()

	t.Run("makefile", func(t *testing.T) {
		makefile, err := Makefile("demo", models.ProfileDebug, cfg)
		require.NoError(t, err)
		snaps.MatchSnapshot(t, makefile)
	})

	t.Run("launch.json", func(t *testing.T) {
		launch, err := LaunchJSON("demo", cfg)
		require.NoError(t, err)
		snaps.MatchSnapshot(t, string(launch))
	})

	t.Run("tasks.json", func(t *testing.T) {
		tasks, err := TasksJSON()
		require.NoError(t, err)
		snaps.MatchSnapshot(t, string(tasks))
	})
}

func TestMakefile_Layout(t *testing.T) {
	makefile, err := Makefile("demo", models.ProfileRelease, config.NewDefaultConfig())
	require.NoError(t, err)

	require.Contains(t, makefile, "CC = g++-7\n")
	require.Contains(t, makefile, "CFLAGS = -Wall -std=c++1z -O2 -DNDEBUG\n")
	require.Contains(t, makefile, "EXEC_NAME = bin/demo\n")
	require.Contains(t, makefile, "OBJECTS = bin/objects/\n")
	require.Contains(t, makefile, "DIR = bin bin/objects\n")
	require.Contains(t, makefile, "OBJ_FILES =  $(OBJECTS)main.o\n")
	require.Contains(t, makefile, "$(OBJECTS)%.o: %.cpp\n")
	require.Contains(t, makefile, "$(DIR) :\n\tmkdir -p bin\n\tmkdir -p bin/objects\n")
}

func TestLaunchJSON_IsPure(t *testing.T) {
	cfg := config.NewDefaultConfig()

	first, err := LaunchJSON("first", cfg)
	require.NoError(t, err)
	second, err := LaunchJSON("second", cfg)
	require.NoError(t, err)
	again, err := LaunchJSON("first", cfg)
	require.NoError(t, err)

	require.Equal(t, first, again)

	var doc launchConfig
	require.NoError(t, json.Unmarshal(second, &doc))
	require.Equal(t, "${workspaceFolder}/bin/second", doc.Configurations[0].Program)
}

func TestInitProject(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	emitter := NewEmitter(fs, "/project", nil)

	result, err := emitter.InitProject("demo", models.ProfileDebug, false)
	require.NoError(t, err)
	require.Len(t, result.Written, 4)
	require.Empty(t, result.Skipped)

	require.True(t, fs.Exists("/project/.vscode/launch.json"))
	require.True(t, fs.Exists("/project/.vscode/tasks.json"))
	require.Equal(t, MainSource, fs.Content("/project/main.cpp"))

	m := manifest.New(fs, "/project/makefile")
	names, err := m.ParseUnitList()
	require.NoError(t, err)
	require.Equal(t, []string{"main"}, names)

	flags, err := m.Flags()
	require.NoError(t, err)
	require.Equal(t, "-Wall -std=c++1z -g", flags)
}

func TestInitProject_KeepsExistingFiles(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/project/main.cpp", []byte("int main() { return 1; }\n"))
	emitter := NewEmitter(fs, "/project", nil)

	result, err := emitter.InitProject("demo", models.ProfileDebug, false)
	require.NoError(t, err)
	require.Equal(t, []string{"/project/main.cpp"}, result.Skipped)
	require.Equal(t, "int main() { return 1; }\n", fs.Content("/project/main.cpp"))

	result, err = emitter.InitProject("demo", models.ProfileDebug, true)
	require.NoError(t, err)
	require.Empty(t, result.Skipped)
	require.Equal(t, MainSource, fs.Content("/project/main.cpp"))
}

func TestInitProject_InvalidName(t *testing.T) {
	emitter := NewEmitter(filesystem.NewMockFileSystem(), "/project", nil)

	_, err := emitter.InitProject("", models.ProfileDebug, false)
	require.ErrorIs(t, err, ErrInvalidName)

	_, err = emitter.InitProject("my app", models.ProfileDebug, false)
	require.ErrorIs(t, err, ErrInvalidName)
}
