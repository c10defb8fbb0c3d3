package cli

import "github.com/spf13/cobra"

// NewRootCmd assembles plannerctl.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "plannerctl",
		Short:         "Operate the trip planner",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("addr", "http://localhost:8080", "Base URL of the planner API")
	root.AddCommand(NewPlanCmd())
	root.AddCommand(NewCacheCmd())
	return root
}
