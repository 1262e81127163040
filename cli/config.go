package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// configLoader pairs a configuration file extension with its loader.
type configLoader struct {
	ext  string
	load kong.ConfigurationLoader
}

// configLoaders lists the supported configuration file formats. Every file
// found is loaded; earlier entries take precedence.
var configLoaders = []configLoader{
	{".yaml", loadYAML},
	{".toml", loadTOML},
	{".json", kong.JSON},
}

// loadYAML is a [kong.ConfigurationLoader] for YAML files.
//
// Nested mappings are flattened into hyphenated flag names, so these are
// equivalent:
//
//	log:
//	  level: debug
//
//	log-level: debug
func loadYAML(r io.Reader) (kong.Resolver, error) {
	var m map[string]any

	if err := yaml.NewDecoder(r).Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("yaml config: %w", err)
	}

	return flatten(m), nil
}

// loadTOML is a [kong.ConfigurationLoader] for TOML files. Tables are
// flattened like YAML mappings.
func loadTOML(r io.Reader) (kong.Resolver, error) {
	var m map[string]any

	if _, err := toml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("toml config: %w", err)
	}

	return flatten(m), nil
}

// config implements [kong.Resolver] over a flat map of flag names.
type config map[string]any

func flatten(m map[string]any) config {
	c := config{}
	c.add("", m)

	return c
}

func (c config) add(prefix string, m map[string]any) {
	for k, v := range m {
		key := strings.ReplaceAll(k, "_", "-")
		if prefix != "" {
			key = prefix + "-" + key
		}

		switch v := v.(type) {
		case map[string]any:
			c.add(key, v)
		default:
			c[key] = scalar(v)
		}
	}
}

// scalar converts numbers to strings; kong parses flag values from text.
func scalar(v any) any {
	switch v := v.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = scalar(e)
		}

		return out
	default:
		return v
	}
}

// Validate implements [kong.Resolver].
func (c config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver]. A missing key leaves the flag to its
// default.
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if v, ok := c[flag.Name]; ok {
		return v, nil
	}

	return nil, nil
}
