package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/oshokin/fw-version/internal/config"
	"github.com/oshokin/fw-version/internal/logger"
	"github.com/oshokin/fw-version/internal/service/hook"
	"github.com/oshokin/fw-version/internal/version"
)

// envPrefix maps flags to environment variables, e.g. --override to FW_VERSION_OVERRIDE.
const envPrefix = "FW_VERSION"

// Flag names shared between cobra and viper.
const (
	flagConfig     = "config"
	flagOverride   = "override"
	flagProjectDir = "project-dir"
	flagEmit       = "emit"
	flagHeader     = "header"
	flagLogLevel   = "log-level"
)

// newRootCmd builds the fw-version command tree.
func newRootCmd() *cobra.Command {
	v := newViper()

	rootCmd := &cobra.Command{
		Use:   "fw-version [project-dir]",
		Short: "Resolve the firmware version and register it as FW_VERSION.",
		Long: `Pre-build hook that computes the firmware version string.

If FW_VERSION_OVERRIDE (or --override) is set to a non-blank value, it is used as is.
Otherwise the version is YEAR.MONTH.COUNT, where COUNT is the number of commits on HEAD
in the current calendar month, or 1 when history is unavailable or the month is empty.

The version is registered as the FW_VERSION definition, a string literal in compiled code.
With --emit flags the compiler flag is printed on stdout, e.g. for PlatformIO:

  build_flags = !fw-version --emit flags`,
		Version:      version.Short(),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := bindFlags(v, cmd.Flags(), cmd.InheritedFlags()); err != nil {
				return err
			}

			return applyLogLevel(v.GetString(flagLogLevel))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Positional project directory wins over flag and environment.
			projectDir := v.GetString(flagProjectDir)
			if len(args) > 0 {
				projectDir = args[0]
			}

			options := &hook.Options{
				ConfigPath: v.GetString(flagConfig),
				ProjectDir: projectDir,
				Override:   v.GetString(flagOverride),
				Emit:       v.GetString(flagEmit),
				HeaderPath: v.GetString(flagHeader),
				Stdout:     cmd.OutOrStdout(),
				Stderr:     cmd.ErrOrStderr(),
			}

			_, err := hook.Run(ctx, options)

			return err
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP(flagConfig, "c", config.DefaultConfigFilename,
		"path to settings file; the default name is looked up in the project directory, other relative paths in the working directory")
	flags.String(flagLogLevel, "info", "diagnostics level: debug, info, warn, error")

	localFlags := rootCmd.Flags()
	localFlags.String(flagOverride, "", "use this version instead of deriving one (env FW_VERSION_OVERRIDE)")
	localFlags.String(flagProjectDir, "", "source-control working tree; $NAME and ${NAME} tokens are expanded, so a literal $ must be avoided")
	localFlags.String(flagEmit, "", "how to hand the definition to the build: log, flags or header")
	localFlags.String(flagHeader, "", "header file written with --emit header")

	version.AttachCobraVersionCommand(rootCmd)
	rootCmd.AddCommand(newInitCmd(v))

	return rootCmd
}

// newViper returns a viper instance reading FW_VERSION_* environment variables.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	return v
}

// bindFlags exposes flag values to viper so unset flags fall back to the environment.
func bindFlags(v *viper.Viper, sets ...*pflag.FlagSet) error {
	for _, fs := range sets {
		if err := v.BindPFlags(fs); err != nil {
			return fmt.Errorf("bind flags: %w", err)
		}
	}

	return nil
}

// applyLogLevel sets the global diagnostics level from its name.
func applyLogLevel(name string) error {
	level, ok := logger.ParseLogLevel(name)
	if !ok {
		return fmt.Errorf("unknown log level %q", name)
	}

	logger.SetLevel(level)

	return nil
}

// Execute runs the fw-version CLI and exits with non-zero status on error.
func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
