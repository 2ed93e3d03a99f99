package hook

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/oshokin/fw-version/internal/buildenv"
	"github.com/oshokin/fw-version/internal/config"
	domain "github.com/oshokin/fw-version/internal/domain/firmware"
	"github.com/oshokin/fw-version/internal/logger"
	"github.com/oshokin/fw-version/internal/repository/history"
	"github.com/oshokin/fw-version/internal/service/resolver"
)

// LogPrefix starts the line reporting the resolved version.
const LogPrefix = "[fw-version]"

// Options contains inputs for the hook entry point.
type Options struct {
	// ConfigPath is the settings file. The default name is looked up in the
	// project directory, and a missing default file means defaults.
	ConfigPath string
	// ProjectDir is the working tree to inspect. Empty means the working directory.
	// $PROJECT_DIR-style tokens are expanded.
	ProjectDir string
	// Override replaces the derived version when not blank.
	Override string
	// Emit overrides the configured emit mode when not empty.
	Emit string
	// HeaderPath overrides the configured header path when not empty.
	HeaderPath string
	// Now returns the current local time. Defaults to time.Now.
	Now func() time.Time
	// Repository replaces the git history repository.
	Repository history.Repository
	// Stdout receives the log line and artifacts. Defaults to os.Stdout.
	Stdout io.Writer
	// Stderr receives the log line when stdout carries flags. Defaults to os.Stderr.
	Stderr io.Writer
}

// Result describes what one invocation produced.
type Result struct {
	// Version is the resolved version.
	Version domain.Version
	// Env is the build environment with the appended definition.
	Env *buildenv.Environment
	// HeaderWritten is true when the header file was (re)written.
	HeaderWritten bool
}

// Run executes the hook and reports the resolved version.
func Run(ctx context.Context, opts *Options) (*Result, error) {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "fw-version")

	env := buildenv.New("")

	projectDir, err := projectDirectory(env.Subst(opts.ProjectDir))
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(opts, projectDir)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	env.Set(buildenv.ProjectDirVar, projectDir)
	ctx = logger.WithKV(ctx, "project_dir", projectDir)

	repo := opts.Repository
	if repo == nil {
		if repo, err = history.NewGitRepository(cfg.GitCommand); err != nil {
			return nil, err
		}
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	version := resolveVersion(ctx, cfg, repo, projectDir, opts.Override, now())

	define := domain.StringDefine(cfg.DefineName, version.Value)
	env.AppendDefines(define)

	result := &Result{
		Version: version,
		Env:     env,
	}

	stdout, stderr := writers(opts)
	logOut := stdout

	switch cfg.Emit {
	case config.EmitFlags:
		logOut = stderr

		if err = env.WriteFlags(stdout); err != nil {
			return nil, err
		}
	case config.EmitHeader:
		headerPath := env.Subst(cfg.HeaderPath)
		if !filepath.IsAbs(headerPath) {
			headerPath = filepath.Join(projectDir, headerPath)
		}

		if result.HeaderWritten, err = env.WriteHeader(headerPath); err != nil {
			return nil, err
		}

		logger.DebugKV(ctx, "Header processed", "path", headerPath, "written", result.HeaderWritten)
	}

	if _, err = fmt.Fprintf(logOut, "%s %s=%s\n", LogPrefix, define.Name, version.Value); err != nil {
		return nil, fmt.Errorf("write log line: %w", err)
	}

	return result, nil
}

// resolveVersion applies the configured timeout to the history query.
func resolveVersion(
	ctx context.Context,
	cfg *config.Config,
	repo history.Repository,
	projectDir, override string,
	now time.Time,
) domain.Version {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	version := resolver.Resolve(ctx, repo, projectDir, override, now)

	logger.DebugKV(ctx, "Resolved version",
		"version", version.Value, "source", version.Source.String(), "fallback", version.Count.Fallback)

	return version
}

// loadConfig reads settings and applies option overrides.
func loadConfig(opts *Options, projectDir string) (*config.Config, error) {
	cfg, err := config.Load(configPath(opts.ConfigPath, projectDir))
	if err != nil {
		return nil, err
	}

	if opts.Emit == "" && opts.HeaderPath == "" {
		return cfg, nil
	}

	if opts.Emit != "" {
		cfg.Emit = opts.Emit
	}

	if opts.HeaderPath != "" {
		cfg.HeaderPath = opts.HeaderPath
	}

	if err = config.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// configPath looks the default settings file up in the project directory.
// Any other path is used as given.
func configPath(path, projectDir string) string {
	if path == "" || path == config.DefaultConfigFilename {
		return filepath.Join(projectDir, config.DefaultConfigFilename)
	}

	return path
}

// projectDirectory returns dir, or the working directory when dir is empty.
func projectDirectory(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	return wd, nil
}

// writers returns the output streams with process defaults.
func writers(opts *Options) (io.Writer, io.Writer) {
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}

	if stderr == nil {
		stderr = os.Stderr
	}

	return stdout, stderr
}
