package check

import (
	"github.com/spf13/cobra"
)

func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "commands to inspect the results source",
	}

	cmd.AddCommand(NewCheckManifestCmd())
	cmd.AddCommand(NewCheckRaceCmd())

	return cmd
}
