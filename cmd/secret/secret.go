package secret

import (
	"github.com/spf13/cobra"

	secretGenerate "github.com/arcana-network/keygen/cmd/secret/generate"
	secretInit "github.com/arcana-network/keygen/cmd/secret/init"
	secretOutput "github.com/arcana-network/keygen/cmd/secret/output"
)

func GetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Command to manage the signing key secret",
	}

	cmd.AddCommand(secretInit.GetCommand())
	cmd.AddCommand(secretGenerate.GetCommand())
	cmd.AddCommand(secretOutput.GetCommand())
	return cmd
}
