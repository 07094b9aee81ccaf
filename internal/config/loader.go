package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "stree.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "stree.yml"

// envPrefix is the prefix for environment overrides, e.g.
// STREE_SERVER__PORT=9000 sets server.port.
const envPrefix = "STREE_"

// Load assembles the configuration: defaults, then the config file (the
// given path, or stree.yaml found by walking up from the working
// directory), then STREE_* environment variables, then flags.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	path, err := resolveConfigFile(configFile)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.DecodeHookFunc(searchShorthandHook),
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
		},
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps STREE_SERVER__PORT to server.port. A double underscore
// separates nesting levels so keys like tree_dir stay addressable.
func envKey(key string) string {
	key = strings.TrimPrefix(key, envPrefix)
	key = strings.ToLower(key)
	return strings.ReplaceAll(key, "__", ".")
}

// searchShorthandHook lets widget.search be written as a plain string:
// "off", "auto", or an element id for an external field.
func searchShorthandHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(SearchConfig{}) {
		return data, nil
	}

	s := data.(string)
	switch SearchMode(s) {
	case "", SearchModeOff:
		return SearchConfig{Mode: SearchModeOff}, nil
	case SearchModeAuto:
		return SearchConfig{Mode: SearchModeAuto}, nil
	default:
		return SearchConfig{Mode: SearchModeField, Field: s}, nil
	}
}

// resolveConfigFile returns the config file to load: the explicit path (an
// error if missing), or the nearest stree.yaml walking up from the working
// directory, or "" when none exists.
func resolveConfigFile(configFile string) (string, error) {
	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return "", fmt.Errorf("config file %s: %w", configFile, err)
		}
		return configFile, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", nil
	}
	return findConfigFile(wd), nil
}

// findConfigFile walks up from dir looking for stree.yaml or stree.yml.
func findConfigFile(dir string) string {
	for {
		for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
