package cli

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolveYAML is a [kong.ConfigurationLoader] that reads flag defaults
// from a YAML configuration file.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolveYAML, "/path/to/config.yaml")
//
// Flag names map to top-level YAML keys; both the hyphenated flag name
// ("log-level") and its underscore variant ("log_level") are accepted:
//
//	log-level: debug
//	log-format: text
//	log-pretty: true
//
// Command-line flags override config file values.
func resolveYAML(r io.Reader) (kong.Resolver, error) {
	var values map[string]any

	if err := yaml.NewDecoder(r).Decode(&values); err != nil {
		// An empty file configures nothing.
		if errors.Is(err, io.EOF) {
			return config{}, nil
		}

		return nil, err
	}

	return config(values), nil
}

// config implements [kong.Resolver] over a flat key-value map.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context, _ *kong.Path, flag *kong.Flag,
) (any, error) {
	value, ok := r[flag.Name]
	if !ok {
		value, ok = r[strings.ReplaceAll(flag.Name, "-", "_")]
	}

	if !ok {
		// Let kong fall back to the flag's default.
		return nil, nil
	}

	// Kong expects numeric values as strings for parsing.
	switch n := value.(type) {
	case int64:
		return strconv.FormatInt(n, 10), nil
	case uint64:
		return strconv.FormatUint(n, 10), nil
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	}

	return value, nil
}
