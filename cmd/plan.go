package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"nodebug.dev/pkg/nodebug/internal/domain"
	m "nodebug.dev/pkg/nodebug/internal/model"
)

// planCmd represents the plan command.
var planCmd = newPlanCmd()

func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan [paths...]",
		Short: "Show how debug imports would be retired",
		Long:  planLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Plan(cmd.Context(), domain.PlanArgs{
				Paths:     parsePaths(args),
				Exclude:   viper.GetStringSlice(excludeConfigKey),
				Libraries: viper.GetStringSlice(librariesConfigKey),
				Reports:   m.Path(viper.GetString(outputFlagName)),
				Threads:   viper.GetInt(stripParallelConfigKey),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(planCmd)
}
