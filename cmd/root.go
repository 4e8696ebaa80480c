// Package cmd provides the root command and CLI setup for nodebug.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"nodebug.dev/pkg/nodebug/internal/adapter"
	"nodebug.dev/pkg/nodebug/internal/controller"
	"nodebug.dev/pkg/nodebug/internal/domain"
	m "nodebug.dev/pkg/nodebug/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var jsFileAdapter adapter.JSFileAdapter
var reportStore adapter.ReportStore
var retirer domain.Retirer
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

var verboseFlag bool

// libraryPatterns and parallelFlag are shared by strip and plan.
var libraryPatterns []string
var parallelFlag int

func init() {
	configureRootFlags(rootCmd)
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
	}

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	jsFileAdapter = adapter.NewLocalJSFileAdapter()
	reportStore = adapter.NewReportStore()
	retirer = domain.NewRetirer(jsFileAdapter, adapter.NewLocalRewriter(), domain.NewPlanner())
	workflow = domain.NewWorkflow(
		fsAdapter,
		reportStore,
		adapter.NewUnifiedDiffer(),
		ui,
		retirer,
	)
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./src/...      recursively scan src directory
  - ./lib ./src    scan multiple directories (not recursive)
  - ./index.js     a single file`

const rootLongDescription = `nodebug retires the "debug" logging library from JavaScript sources.
It removes the import and every call it can prove to be inert, and leaves
no-op stand-ins wherever removing code could change behavior.

` + pathPatternsHelp

const stripLongDescription = `Remove debug imports from the given paths (default: current directory).
Without --write or --out-dir the rewrite is printed as a unified diff.

` + pathPatternsHelp

const planLongDescription = `Analyze the given paths and report how every debug import would be
retired, without changing any file.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nodebug",
		Short: "Retire the debug logging library from JavaScript code",
		Long:  rootLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}
}

// newRootCmd returns a fresh root command with its persistent flags, for tests.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for run reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringArrayVarP(&libraryPatterns, libraryFlagName, "l", viper.GetStringSlice(librariesConfigKey), "module name regex to retire (can be repeated, default \"debug\")")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(libraryFlagName), librariesConfigKey)

	cmd.PersistentFlags().IntVarP(&parallelFlag, stripParallelFlagName, "p", viper.GetInt(stripParallelConfigKey), "number of files processed in parallel")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(stripParallelFlagName), stripParallelConfigKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
