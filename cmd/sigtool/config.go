package main

import (
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/prooflab/sigil/errors"
	"github.com/prooflab/sigil/theory"
)

// sigtool config.toml key mapping.
type fileConfig struct {
	EnginePath string     `toml:"engine_path"`
	EngineArgs []string   `toml:"engine_args"`
	Builtins   []string   `toml:"builtins"`
	Functions  []fileFunc `toml:"functions"`
}

type fileFunc struct {
	Name    string `toml:"name"`
	Arity   int    `toml:"arity"`
	Private bool   `toml:"private"`
}

// toolConfig is the resolved runtime configuration.
type toolConfig struct {
	EnginePath string
	EngineArgs []string
	Theory     theory.Descriptor
}

func defaultToolConfig() toolConfig {
	return toolConfig{
		Theory: theory.Minimal(),
	}
}

// loadToolConfig reads a TOML config with default overlay.
func loadToolConfig(path string) (toolConfig, error) {
	cfg := defaultToolConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return toolConfig{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "load sigtool config")
	}

	if meta.IsDefined("engine_path") {
		cfg.EnginePath = strings.TrimSpace(raw.EnginePath)
	}
	if meta.IsDefined("engine_args") {
		cfg.EngineArgs = raw.EngineArgs
	}
	for _, name := range raw.Builtins {
		b, err := theory.ParseBuiltin(strings.TrimSpace(name))
		if err != nil {
			return toolConfig{}, err
		}
		cfg.Theory = cfg.Theory.WithBuiltins(b)
	}
	for _, f := range raw.Functions {
		if f.Name == "" || f.Arity < 0 {
			return toolConfig{}, errors.InvalidInput(errors.PhaseConfig, "function entries need a name and non-negative arity")
		}
		cfg.Theory = cfg.Theory.WithFuncSym(theory.FuncSym{
			Name:    f.Name,
			Arity:   f.Arity,
			Private: f.Private,
		})
	}
	return cfg, nil
}
