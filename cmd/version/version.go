package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcana-network/keygen/versioning"
)

func GetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Command to show current binary version",
		Run:   runCommand,
	}

	return cmd
}

func runCommand(c *cobra.Command, _ []string) {
	fmt.Fprintln(c.OutOrStdout(), versioning.Version)
}
