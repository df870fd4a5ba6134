// Package confloader loads layered configuration with koanf.
//
// Sources are merged in increasing priority:
//
//  1. Defaults (a flat map of dotted keys)
//  2. YAML configuration file
//  3. Environment variables (TRAILGUARD_API_BASE_URL -> api.base_url)
//  4. Overrides, typically command-line flags
//
// Watcher reports changes to a configuration file so long-running
// sessions can re-read it.
package confloader
