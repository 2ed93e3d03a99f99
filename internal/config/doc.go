// Package config defines the hook settings and provides helpers to load,
// validate and save them in YAML format.
//
// A missing default settings file is not an error: the hook runs with
// defaults so projects only need a file when they change something.
package config
