package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfiguration_NoFile(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	cfg, err := LoadConfiguration("")
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "native", cfg.Converter.Engine)
	assert.True(t, cfg.Converter.Extract)
	assert.Equal(t, "{{ .Name }}", cfg.Converter.OutputNameTemplate, "name template must survive unexpanded")
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.NotEmpty(t, cfg.Fetch.UserAgent)
	assert.True(t, cfg.Render.Typographer)
	assert.True(t, cfg.Render.UnsafeHTML)
	assert.Equal(t, "/home/tester/Documents/Notemark/Untitled_Trove", cfg.Trove.Dir)
	assert.Equal(t, "normal", cfg.Logging.ConsoleLogger.Level)
	assert.Equal(t, "none", cfg.Logging.FileLogger.Level)
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
converter:
  engine: commonmark
  extract: false
fetch:
  timeout: 5s
render:
  typographer: false
  front_matter: true
trove:
  dir: ` + tmpDir + `/notes/../trove
logging:
  console:
    level: debug
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := LoadConfiguration(configPath)
	require.NoError(t, err)

	assert.Equal(t, "commonmark", cfg.Converter.Engine)
	assert.False(t, cfg.Converter.Extract)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.False(t, cfg.Render.Typographer)
	assert.True(t, cfg.Render.FrontMatter)
	assert.Equal(t, filepath.Join(tmpDir, "trove"), cfg.Trove.Dir)
	assert.Equal(t, "debug", cfg.Logging.ConsoleLogger.Level)

	// untouched values keep their defaults
	assert.True(t, cfg.Render.UnsafeHTML)
	assert.NotEmpty(t, cfg.Fetch.UserAgent)
}

func TestLoadConfiguration_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown field":  "version: 1\nconverter:\n  flavour: gfm\n",
		"unknown engine": "version: 1\nconverter:\n  engine: pandoc\n",
		"wrong version":  "version: 2\n",
		"bad log level":  "version: 1\nlogging:\n  console:\n    level: loud\n",
		"bad yaml":       "version: [1\n",
		"bad duration":   "version: 1\nfetch:\n  timeout: soon\n",
		"bad file mode":  "version: 1\nlogging:\n  file:\n    mode: rotate\n",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))

			_, err := LoadConfiguration(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfiguration_MissingFile(t *testing.T) {
	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	require.NoError(t, err)

	data, err := Dump(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "engine: native")
	assert.Contains(t, string(data), "timeout: 30s")

	// a dump loads back unchanged
	path := filepath.Join(t.TempDir(), "dump.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))
	again, err := LoadConfiguration(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	require.NoError(t, err)
	assert.Contains(t, string(data), "output_name_template")
}

func TestLoggingConfig_Prepare(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "logs", "notemark.log")
	require.NoError(t, os.MkdirAll(filepath.Dir(dest), 0755))

	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "debug", Destination: dest, Mode: "overwrite"},
	}
	log, err := conf.Prepare()
	require.NoError(t, err)

	log.Debug("hello from test")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, string(data), AppName)
}
