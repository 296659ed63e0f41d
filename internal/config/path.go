// Package config holds sift's viper keys, defaults and path handling.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// xdgFallbacks are used when the XDG base directory variables are unset,
// relative to the home directory.
var xdgFallbacks = map[string]string{
	"XDG_CONFIG_HOME": ".config",
	"XDG_DATA_HOME":   filepath.Join(".local", "share"),
	"XDG_STATE_HOME":  filepath.Join(".local", "state"),
}

// ExpandPath expands a leading ~ and $VAR references in a configured path.
// XDG base directories fall back to their standard locations under the home
// directory when unset, so "$XDG_DATA_HOME/sift/sift.db" always resolves.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	home, homeErr := os.UserHomeDir()
	if homeErr == nil {
		switch {
		case path == "~":
			path = home
		case strings.HasPrefix(path, "~/"):
			path = filepath.Join(home, path[2:])
		}
	}

	return os.Expand(path, func(name string) string {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			return v
		}
		if rel, ok := xdgFallbacks[name]; ok && homeErr == nil {
			return filepath.Join(home, rel)
		}
		return ""
	})
}
