package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/fw-version/internal/config"
	"github.com/oshokin/fw-version/internal/version"
)

// execute runs a fresh command tree and returns its stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

// TestRoot_OverrideFromEnvironment reads FW_VERSION_OVERRIDE through viper.
//
//nolint:paralleltest // Uses t.Setenv.
func TestRoot_OverrideFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FW_VERSION_OVERRIDE", "  9.9.9 ")

	stdout, _, err := execute(t, "--config", filepath.Join(dir, config.DefaultConfigFilename), dir)
	require.NoError(t, err)
	require.Equal(t, "[fw-version] FW_VERSION=9.9.9\n", stdout)
}

// TestRoot_FlagBeatsEnvironment prefers --override over the environment.
//
//nolint:paralleltest // Uses t.Setenv.
func TestRoot_FlagBeatsEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FW_VERSION_OVERRIDE", "9.9.9")

	stdout, stderr, err := execute(t,
		"--config", filepath.Join(dir, config.DefaultConfigFilename),
		"--override", "1.2.3",
		"--emit", "flags",
		dir,
	)
	require.NoError(t, err)
	require.Equal(t, "-DFW_VERSION=\\\"1.2.3\\\"\n", stdout)
	require.Contains(t, stderr, "[fw-version] FW_VERSION=1.2.3\n")
}

// TestRoot_NoHistoryFallsBack derives a version outside of any repository.
//
//nolint:paralleltest // Uses t.Setenv.
func TestRoot_NoHistoryFallsBack(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FW_VERSION_OVERRIDE", "")
	t.Setenv("FW_VERSION_PROJECT_DIR", dir)

	stdout, _, err := execute(t,
		"--config", filepath.Join(dir, config.DefaultConfigFilename),
		"--log-level", "error",
	)
	require.NoError(t, err)

	now := time.Now()
	prefix := "[fw-version] FW_VERSION=" + strconv.Itoa(now.Year()) + "." + strconv.Itoa(int(now.Month())) + "."

	require.Regexp(t, regexp.MustCompile(`^\[fw-version\] FW_VERSION=\d+\.\d+\.\d+\n$`), stdout)
	require.Equal(t, prefix+"1\n", stdout)
}

// TestRoot_UnknownLogLevel rejects bad level names.
//
//nolint:paralleltest // Shares the global logger level.
func TestRoot_UnknownLogLevel(t *testing.T) {
	dir := t.TempDir()

	_, _, err := execute(t, "--config", filepath.Join(dir, config.DefaultConfigFilename), "--log-level", "loud", dir)
	require.ErrorContains(t, err, "unknown log level")
}

// TestInit_WritesDefaults creates a settings file and refuses to overwrite it.
//
//nolint:paralleltest // Shares the global logger level.
func TestInit_WritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fw-version.yaml")

	stdout, _, err := execute(t, "init", "--config", path)
	require.NoError(t, err)
	require.Contains(t, stdout, "Wrote "+path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)

	_, _, err = execute(t, "init", "--config", path)
	require.ErrorIs(t, err, errConfigExists)

	_, _, err = execute(t, "init", "--config", path, "--force")
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

// TestInit_HonorsConfigEnvironment writes where FW_VERSION_CONFIG points, like the root command reads.
//
//nolint:paralleltest // Uses t.Setenv.
func TestInit_HonorsConfigEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")

	t.Setenv("FW_VERSION_CONFIG", path)
	t.Setenv("FW_VERSION_OVERRIDE", "")

	_, _, err := execute(t, "init")
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)

	stdout, _, err := execute(t, "--log-level", "error", dir)
	require.NoError(t, err)
	require.Contains(t, stdout, "[fw-version] FW_VERSION=")
}

// TestRoot_VersionFlag prints the tool version.
//
//nolint:paralleltest // Shares the global logger level.
func TestRoot_VersionFlag(t *testing.T) {
	stdout, _, err := execute(t, "--version")
	require.NoError(t, err)
	require.Contains(t, stdout, version.Short())
}

// TestRoot_ProjectDirHelpMentionsExpansion documents that $ tokens are expanded.
//
//nolint:paralleltest // Builds the shared command tree.
func TestRoot_ProjectDirHelpMentionsExpansion(t *testing.T) {
	root := newRootCmd()

	usage := root.Flags().Lookup(flagProjectDir).Usage
	require.Contains(t, usage, "${NAME}")
	require.Contains(t, usage, "literal $")

	configUsage := root.PersistentFlags().Lookup(flagConfig).Usage
	require.Contains(t, configUsage, "project directory")
}
