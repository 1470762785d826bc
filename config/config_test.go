package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempDir(t *testing.T) string {
	t.Helper()

	dir, err := ioutil.TempDir("", "monkey-config")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(tempDir(t), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(tempDir(t), "monkey.yml")
	require.NoError(t, ioutil.WriteFile(path, []byte("prompt: \"λ \"\necho_tokens: true\ncolor: false\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	want := Default()
	want.Prompt = "λ "
	want.EchoTokens = true
	want.Color = false
	assert.Equal(t, want, cfg)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(tempDir(t), "monkey.yml")
	require.NoError(t, ioutil.WriteFile(path, []byte("prompt: [unclosed\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestWriteThenLoad(t *testing.T) {
	path := filepath.Join(tempDir(t), DefaultPath)

	cfg := Default()
	cfg.HistoryFile = "/tmp/history"
	cfg.LogLevel = "DEBUG"
	require.NoError(t, cfg.Write(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	assert.Error(t, cfg.Write(path), "existing files are not overwritten")
}

func TestMarshal(t *testing.T) {
	out, err := Config{Prompt: ">> ", LogLevel: "INFO"}.Marshal()
	require.NoError(t, err)

	assert.Contains(t, string(out), "prompt: '>> '")
	assert.Contains(t, string(out), "log_level: INFO")
	assert.Contains(t, string(out), "echo_tokens: false")
}
