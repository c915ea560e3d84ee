package main

import (
	"fmt"

	"github.com/alnah/go-markup/internal/yamlutil"
)

// runConfigCmd prints the effective configuration as YAML: defaults, then the
// config file, then MARKUP_* variables.
func runConfigCmd(args []string, env *Environment) error {
	flags, positional, err := parseConfigFlags(args)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: config takes no arguments, got %q", ErrInvalidUsage, positional)
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yamlutil.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	_, err = env.Stdout.Write(data)
	return err
}
