package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"nodebug.dev/pkg/nodebug/internal/domain"
	m "nodebug.dev/pkg/nodebug/internal/model"
)

var stripWriteFlag bool
var stripOutDirFlag string

// errWriteAndOutDir rejects asking for both output modes at once.
var errWriteAndOutDir = errors.New("--write and --out-dir are mutually exclusive")

// stripCmd represents the strip command.
var stripCmd = newStripCmd()

func newStripCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strip [paths...]",
		Short: "Remove debug imports and their usages",
		Long:  stripLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			write := viper.GetBool(stripWriteConfigKey)
			outDir := viper.GetString(stripOutDirConfigKey)

			if write && outDir != "" {
				return errWriteAndOutDir
			}

			return workflow.Strip(cmd.Context(), domain.StripArgs{
				Paths:     parsePaths(args),
				Exclude:   viper.GetStringSlice(excludeConfigKey),
				Libraries: viper.GetStringSlice(librariesConfigKey),
				Write:     write,
				OutDir:    m.Path(outDir),
				Reports:   m.Path(viper.GetString(outputFlagName)),
				Threads:   viper.GetInt(stripParallelConfigKey),
			})
		},
	}

	configureStripFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(stripCmd)
}

func configureStripFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&stripWriteFlag, stripWriteFlagName, "w", viper.GetBool(stripWriteConfigKey), "rewrite files in place")
	bindFlagToConfig(cmd.Flags().Lookup(stripWriteFlagName), stripWriteConfigKey)

	cmd.Flags().StringVar(&stripOutDirFlag, stripOutDirFlagName, viper.GetString(stripOutDirConfigKey), "write rewritten copies under this directory")
	bindFlagToConfig(cmd.Flags().Lookup(stripOutDirFlagName), stripOutDirConfigKey)
}
