package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config from defaults, .env, the optional CLUB_CONFIG YAML
// file and the environment, then validates it.
func Load() (*Config, error) {
	return load(".env")
}

func load(dotenv string) (*Config, error) {
	k := koanf.New(".")

	// The .env file is its own layer below the YAML file. It is read, not
	// exported, so the process environment stays the top layer.
	vars, err := readDotenv(dotenv)
	if err != nil {
		return nil, err
	}
	if err := k.Load(confmap.Provider(vars, "."), nil); err != nil {
		return nil, fmt.Errorf("%w: loading %s: %v", ErrLoadConfig, dotenv, err)
	}

	if path := os.Getenv("CLUB_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrLoadConfig, path, err)
		}
	}

	// PORT -> port, USER_NAME -> user_name, ... matching the koanf tags.
	// An empty variable counts as unset so it cannot blank out a default.
	envProvider := env.ProviderWithValue("", ".", func(key, value string) (string, any) {
		if value == "" {
			return "", nil
		}
		return strings.ToLower(key), value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: reading environment: %v", ErrLoadConfig, err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// readDotenv parses path into lower-cased koanf keys. A missing file is
// normal outside local development and yields no values.
func readDotenv(path string) (map[string]any, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("%w: reading %s: %v", ErrLoadConfig, path, err)
	}

	out := make(map[string]any, len(vars))
	for key, value := range vars {
		if value == "" {
			continue
		}
		out[strings.ToLower(key)] = value
	}
	return out, nil
}
