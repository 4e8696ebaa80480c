package cmd

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"nodebug.dev/pkg/nodebug/internal/domain"
)

const initForceFlagName = "force"

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default nodebug.yaml configuration file",
		Long: `Create a nodebug.yaml in the current working directory holding the library
patterns, path filters, strip options and log settings currently in effect,
so it can be edited manually. An existing file is kept unless --force is set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)
			cfg := initialConfig()

			write := cfg.SafeWriteConfigAs
			if force {
				write = cfg.WriteConfigAs
			}

			if err := write(targetPath); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			cmd.Printf("wrote %s\n", targetPath)

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, initForceFlagName, false, "overwrite an existing "+configFileName)

	return cmd
}

// initialConfig copies the persisted keys out of the global configuration.
// An empty library list is written as the pattern that matches the default
// library, so the file shows what is retired.
func initialConfig() *viper.Viper {
	libraries := viper.GetStringSlice(librariesConfigKey)
	if len(libraries) == 0 {
		libraries = []string{"^" + regexp.QuoteMeta(domain.DefaultLibrary) + "$"}
	}

	exclude := viper.GetStringSlice(excludeConfigKey)
	if exclude == nil {
		exclude = []string{}
	}

	cfg := viper.New()
	cfg.SetConfigType("yaml")

	cfg.Set(configVersionKey, currentConfigVersion)
	cfg.Set(outputFlagName, viper.GetString(outputFlagName))
	cfg.Set(librariesConfigKey, libraries)
	cfg.Set(excludeConfigKey, exclude)
	cfg.Set(stripParallelConfigKey, viper.GetInt(stripParallelConfigKey))
	cfg.Set(stripWriteConfigKey, viper.GetBool(stripWriteConfigKey))
	cfg.Set(stripOutDirConfigKey, viper.GetString(stripOutDirConfigKey))

	for _, key := range []string{logFilenameKey, logLevelKey, logMaxSizeKey, logMaxBackupsKey, logMaxAgeKey, logCompressKey} {
		cfg.Set(key, viper.Get(key))
	}

	return cfg
}

func init() {
	rootCmd.AddCommand(initCmd)
}
