package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func chdirTemp(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })

	return tempDir
}

func runInit(t *testing.T, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	restoreFlagBindings(t)

	out := &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.AddCommand(newInitCmd())
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"init"}, args...))

	return out, cmd.Execute()
}

type writtenConfig struct {
	Version   int      `yaml:"version"`
	Output    string   `yaml:"output"`
	Libraries []string `yaml:"libraries"`
	Paths     struct {
		Exclude []string `yaml:"exclude"`
	} `yaml:"paths"`
	Strip struct {
		Parallel int    `yaml:"parallel"`
		Write    bool   `yaml:"write"`
		OutDir   string `yaml:"out_dir"`
	} `yaml:"strip"`
	Log map[string]any `yaml:"log"`
}

func TestInitCmd_WritesDefaults(t *testing.T) {
	tempDir := chdirTemp(t)

	out, err := runInit(t)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "wrote "+configFileName)

	contents, err := os.ReadFile(filepath.Join(tempDir, configFileName))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(contents, &raw))
	assert.ElementsMatch(t, []string{"version", "output", "libraries", "paths", "strip", "log"}, keysOf(raw))

	var cfg writtenConfig
	require.NoError(t, yaml.Unmarshal(contents, &cfg))

	assert.Equal(t, currentConfigVersion, cfg.Version)
	assert.Equal(t, defaultReportsDir, cfg.Output)
	assert.Equal(t, []string{"^debug$"}, cfg.Libraries)
	assert.Empty(t, cfg.Paths.Exclude)
	assert.Equal(t, defaultStripParallel, cfg.Strip.Parallel)
	assert.False(t, cfg.Strip.Write)
	assert.Empty(t, cfg.Strip.OutDir)
	assert.Equal(t, defaultLogFilename, cfg.Log["filename"])
	assert.NotContains(t, cfg.Log, "verbose")
}

func TestInitCmd_CarriesFlagValues(t *testing.T) {
	tempDir := chdirTemp(t)

	_, err := runInit(t, "--library", "^debug-fork$", "--parallel", "4", "-x", `\.min\.js$`)
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(tempDir, configFileName))
	require.NoError(t, err)

	var cfg writtenConfig
	require.NoError(t, yaml.Unmarshal(contents, &cfg))

	assert.Equal(t, []string{"^debug-fork$"}, cfg.Libraries)
	assert.Equal(t, []string{`\.min\.js$`}, cfg.Paths.Exclude)
	assert.Equal(t, 4, cfg.Strip.Parallel)
}

func TestInitCmd_KeepsExistingFile(t *testing.T) {
	tempDir := chdirTemp(t)

	targetPath := filepath.Join(tempDir, configFileName)
	require.NoError(t, os.WriteFile(targetPath, []byte("libraries: [custom]\n"), 0o644))

	_, err := runInit(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write config file")

	contents, err := os.ReadFile(targetPath)
	require.NoError(t, err)
	assert.Equal(t, "libraries: [custom]\n", string(contents))
}

func TestInitCmd_ForceOverwrites(t *testing.T) {
	tempDir := chdirTemp(t)

	targetPath := filepath.Join(tempDir, configFileName)
	require.NoError(t, os.WriteFile(targetPath, []byte("libraries: [custom]\n"), 0o644))

	_, err := runInit(t, "--force")
	require.NoError(t, err)

	var cfg writtenConfig
	contents, err := os.ReadFile(targetPath)
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(contents, &cfg))
	assert.Equal(t, []string{"^debug$"}, cfg.Libraries)
}

func keysOf(raw map[string]any) []string {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}

	return keys
}
