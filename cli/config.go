package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// ConfigFiles are the files flag defaults are read from, most specific first.
var ConfigFiles = []string{".money.yaml", "~/.config/money/config.yaml"}

// YAML reads flag defaults from a YAML document. Keys are flag names; flags of
// a command can also be set in a section named after the command:
//
//	date-layout: 2006/01/02
//	tolerance: ["$:0.01"]
//	format:
//	  indent: 2
//
// Flags given on the command line or through the environment take precedence.
func YAML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && err != io.EOF {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var resolve kong.ResolverFunc = func(_ *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		var commands []string
		for node := parent.Node(); node != nil && node.Type != kong.ApplicationNode; node = node.Parent {
			commands = append([]string{node.Name}, commands...)
		}

		// The innermost section naming the flag wins.
		for depth := len(commands); depth >= 0; depth-- {
			section, ok := lookupSection(values, commands[:depth])
			if !ok {
				continue
			}
			if value, ok := lookupFlag(section, flag.Name); ok {
				return configValue(value), nil
			}
		}
		return nil, nil
	}
	return resolve, nil
}

func lookupSection(values map[string]any, path []string) (map[string]any, bool) {
	for _, name := range path {
		next, ok := values[name].(map[string]any)
		if !ok {
			return nil, false
		}
		values = next
	}
	return values, true
}

func lookupFlag(section map[string]any, name string) (any, bool) {
	if value, ok := section[name]; ok {
		return value, true
	}
	value, ok := section[strings.ReplaceAll(name, "-", "_")]
	return value, ok
}

// configValue turns a YAML value into the text kong would read from the
// command line. Lists become comma separated.
func configValue(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, fmt.Sprint(item))
		}
		return strings.Join(items, ",")
	case map[string]any:
		return nil
	default:
		return fmt.Sprint(v)
	}
}
