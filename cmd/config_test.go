package cmd

import (
	"github.com/cottand/refine/fm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

const fullConfig = `
limits:
  maxVars: 4
  maxClauses: 2
reals: [rate]
logLevel: debug
sections: [fm.solver, refine]
obligations:
  - origin: call to f
    premise: x > 0
    conclusion: x >= 1
  - origin: bare
    conclusion: x > 0 || x <= 0
`

func TestParseConfig(t *testing.T) {
	cfg, err := parseConfig([]byte(fullConfig))
	require.NoError(t, err)

	assert.Equal(t, fm.Limits{MaxVars: 4, MaxClauses: 2}, cfg.Limits)
	assert.Equal(t, []string{"rate"}, cfg.Reals)
	assert.Equal(t, []string{"fm.solver", "refine"}, cfg.Sections)
	assert.Equal(t, []Obligation{
		{Origin: "call to f", Premise: "x > 0", Conclusion: "x >= 1"},
		{Origin: "bare", Conclusion: "x > 0 || x <= 0"},
	}, cfg.Obligations)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestParseConfigErrors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		message string
	}{
		{"unknown field", "limits:\n  maxVar: 3\n", "maxVar"},
		{"wrong type", "reals: 3\n", "could not parse config"},
		{"missing conclusion", "obligations:\n  - origin: lonely\n    premise: x > 0\n", "lonely"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseConfig([]byte(tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestEmptyConfig(t *testing.T) {
	cfg, err := parseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, level)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fullConfig), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Obligations, 2)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "could not read config")
}

func TestConfigLevel(t *testing.T) {
	level, err := Config{LogLevel: "WARN"}.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = Config{LogLevel: "loud"}.Level()
	assert.ErrorContains(t, err, "invalid logLevel")
}

func TestConfigVarInfo(t *testing.T) {
	vars, err := Config{Reals: []string{"rate", "ratio"}}.VarInfo()
	require.NoError(t, err)
	assert.Equal(t, []string{"rate", "ratio"}, vars.Names())
	id, ok := vars.Find("ratio")
	require.True(t, ok)
	assert.False(t, vars.IsInteger(id))

	_, err = Config{Limits: fm.Limits{MaxVars: 1}, Reals: []string{"a", "b"}}.VarInfo()
	assert.True(t, fm.IsCapacity(err))
}
