package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mayowa/hookbind"
)

// environment variables read from the process and the dotenv file
const (
	EnvPrefix         = "HOOKBIND_PREFIX"
	EnvBindKey        = "HOOKBIND_BIND_KEY"
	EnvEventKey       = "HOOKBIND_EVENT_KEY"
	EnvBindDirective  = "HOOKBIND_BIND_DIRECTIVE"
	EnvEventDirective = "HOOKBIND_EVENT_DIRECTIVE"
)

// LoadConfig resolves the rewriter configuration. Later sources win:
// defaults, the YAML file, the dotenv file, the process environment, flags.
func LoadConfig(opts *Options) (hookbind.Config, error) {
	cfg := hookbind.DefaultConfig()

	layers := []func() (hookbind.Config, error){
		func() (hookbind.Config, error) { return readConfigFile(opts.ConfigFile) },
		func() (hookbind.Config, error) { return readEnv(opts.EnvFile) },
		func() (hookbind.Config, error) { return opts.Overrides, nil },
	}

	for _, layer := range layers {
		override, err := layer()
		if err != nil {
			return cfg, err
		}
		cfg, err = hookbind.MergeConfig(cfg, override)
		if err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

func readConfigFile(path string) (hookbind.Config, error) {
	cfg := hookbind.Config{}
	if path == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

func readEnv(path string) (hookbind.Config, error) {
	vars := map[string]string{}
	if path != "" {
		fileVars, err := godotenv.Read(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return hookbind.Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}

	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return vars[key]
	}

	return hookbind.Config{
		Prefix:         lookup(EnvPrefix),
		BindKey:        lookup(EnvBindKey),
		EventKey:       lookup(EnvEventKey),
		BindDirective:  lookup(EnvBindDirective),
		EventDirective: lookup(EnvEventDirective),
	}, nil
}
