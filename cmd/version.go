package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

const unknownVersion = "(devel)"

// buildVersion reports the module version nodebug was built from, or
// unknownVersion for local builds.
func buildVersion(info *debug.BuildInfo, ok bool) (version, goVersion string) {
	if !ok || info == nil {
		return unknownVersion, ""
	}

	version = info.Main.Version
	if version == "" {
		version = unknownVersion
	}

	return version, info.GoVersion
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the nodebug build version and the Go version used to build it.",
		Run: func(cmd *cobra.Command, _ []string) {
			version, goVersion := buildVersion(debug.ReadBuildInfo())

			cmd.Printf("nodebug %s\n", version)

			if goVersion != "" {
				cmd.Printf("go version %s\n", goVersion)
			}
		},
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
