package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	domain "github.com/oshokin/fw-version/internal/domain/firmware"
	"github.com/oshokin/fw-version/internal/repository/history"
)

// Emit modes select how definitions are handed to the build system.
const (
	// EmitLog only prints the log line.
	EmitLog = "log"
	// EmitFlags prints one compiler flag per definition on stdout.
	EmitFlags = "flags"
	// EmitHeader writes the definitions into a C header file.
	EmitHeader = "header"
)

// Config holds the hook settings.
type Config struct {
	// DefineName is the preprocessor definition receiving the version.
	DefineName string `yaml:"define_name"`
	// GitCommand is the git command line, e.g. `git -c safe.directory=*`.
	GitCommand string `yaml:"git_command"`
	// Emit is one of EmitLog, EmitFlags or EmitHeader.
	Emit string `yaml:"emit"`
	// HeaderPath is the header file written in EmitHeader mode.
	// Relative paths are resolved against the project directory.
	HeaderPath string `yaml:"header_path,omitempty"`
	// Timeout bounds the history query. Zero means no limit.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

const (
	// DefaultConfigFilename is the default filename for hook settings.
	DefaultConfigFilename = "fw-version.yaml"

	// DefaultHeaderFilename is the default header written in EmitHeader mode.
	DefaultHeaderFilename = "include/fw_version.h"

	// DefaultFilePermissions is the default file permission for written files.
	DefaultFilePermissions = 0o644
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errInvalidDefineName is returned when the define name is not a C identifier.
	errInvalidDefineName = errors.New("define name must be a C identifier")
	// errUnknownEmit is returned for unsupported emit modes.
	errUnknownEmit = errors.New("unknown emit mode")
	// errNegativeTimeout is returned when the timeout is below zero.
	errNegativeTimeout = errors.New("timeout must not be negative")

	// identifierPattern matches valid C macro names.
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Default returns settings matching the behavior without a settings file.
func Default() *Config {
	return &Config{
		DefineName: domain.DefaultDefineName,
		GitCommand: history.DefaultCommand,
		Emit:       EmitLog,
	}
}

// Load reads settings from the provided path and validates them.
// If the default file is absent, defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && filepath.Base(path) == DefaultConfigFilename {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills in defaults for empty fields.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.DefineName == "" {
		settings.DefineName = domain.DefaultDefineName
	}

	if !identifierPattern.MatchString(settings.DefineName) {
		return fmt.Errorf("%w: %q", errInvalidDefineName, settings.DefineName)
	}

	if settings.GitCommand == "" {
		settings.GitCommand = history.DefaultCommand
	}

	if settings.Timeout < 0 {
		return errNegativeTimeout
	}

	switch settings.Emit {
	case "":
		settings.Emit = EmitLog
	case EmitLog, EmitFlags:
	case EmitHeader:
		if settings.HeaderPath == "" {
			settings.HeaderPath = DefaultHeaderFilename
		}
	default:
		return fmt.Errorf("%w: %q", errUnknownEmit, settings.Emit)
	}

	return nil
}
