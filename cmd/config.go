package cmd

import (
	"bytes"
	"github.com/cottand/refine/fm"
	"github.com/cottand/refine/refine"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
)

// Config is the YAML configuration shared by every command, for example
//
//	limits:
//	  maxVars: 32
//	reals: [rate]
//	types:
//	  n: "{#v : Int | #v >= 0}"
//	logLevel: debug
//	sections: [fm.solver]
//	obligations:
//	  - origin: "call to f"
//	    premise: "x > 0"
//	    conclusion: "x >= 1"
type Config struct {
	Limits      fm.Limits         `yaml:"limits"`
	Reals       []string          `yaml:"reals"`
	Types       map[string]string `yaml:"types"`
	LogLevel    string            `yaml:"logLevel"`
	Sections    []string          `yaml:"sections"`
	Obligations []Obligation      `yaml:"obligations"`
}

// Obligation asks the check command to prove Premise => Conclusion.
// An empty Premise means Conclusion must hold on its own. Variables listed
// under types add their refinements to the premise.
type Obligation struct {
	Origin     string `yaml:"origin"`
	Premise    string `yaml:"premise"`
	Conclusion string `yaml:"conclusion"`
}

// LoadConfig reads the configuration at path. An empty path yields the zero Config.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "could not read config")
	}
	return parseConfig(content)
}

func parseConfig(content []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "could not parse config")
	}
	for i, o := range cfg.Obligations {
		if o.Conclusion == "" {
			return Config{}, errors.Errorf("obligation %d (%s) has no conclusion", i, o.Origin)
		}
	}
	return cfg, nil
}

// Level is the configured log level, slog.LevelError when unset
func (c Config) Level() (slog.Level, error) {
	level := slog.LevelError
	if c.LogLevel == "" {
		return level, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, errors.Wrapf(err, "invalid logLevel %q", c.LogLevel)
	}
	return level, nil
}

// VarInfo registers the configured real-valued variables. Any other variable
// is registered as an integer when it is first parsed.
func (c Config) VarInfo() (fm.VarInfo, error) {
	vars := fm.NewVarInfo(c.Limits)
	for _, name := range c.Reals {
		if _, err := vars.FindOrAdd(name, false); err != nil {
			return fm.VarInfo{}, errors.Wrap(err, "registering reals")
		}
	}
	return vars, nil
}

// Env binds every variable listed under types
func (c Config) Env() (refine.Env, error) {
	env := refine.NewEnv()
	names := slices.Sorted(maps.Keys(c.Types))
	for _, name := range names {
		t, err := refine.ParseType(c.Types[name])
		if err != nil {
			return env, errors.Wrapf(err, "type of '%s'", name)
		}
		env = env.Bind(name, t)
	}
	return env, nil
}

func (c Config) Solver() fm.Solver {
	return fm.Solver{Limits: c.Limits}
}
