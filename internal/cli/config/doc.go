// Package config defines the CLI configuration stored in
// ~/.trailguard/cli.yaml.
//
//   - spec.go: CLIConfig and its defaults
//   - loader.go: layered loading (flags > env > file > defaults), Save, Set
package config
