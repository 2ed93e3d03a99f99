package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oshokin/fw-version/internal/config"
)

// errConfigExists is returned when init would overwrite settings.
var errConfigExists = errors.New("settings file already exists, use --force to overwrite")

// newInitCmd returns the `init` subcommand writing a default settings file.
// The path comes from v so FW_VERSION_CONFIG is honored like in the root command.
func newInitCmd(v *viper.Viper) *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default settings file into the working directory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := v.GetString(flagConfig)

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s: %w", path, errConfigExists)
			}

			if err := config.Save(path, config.Default()); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)

			return nil
		},
	}

	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing settings file")

	return initCmd
}
