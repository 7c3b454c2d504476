package root

import (
	"github.com/spf13/cobra"

	"github.com/arcana-network/keygen/cmd/cmdutil"
	"github.com/arcana-network/keygen/cmd/generate"
	"github.com/arcana-network/keygen/cmd/inspect"
	"github.com/arcana-network/keygen/cmd/keystore"
	"github.com/arcana-network/keygen/cmd/secret"
	"github.com/arcana-network/keygen/cmd/serve"
	"github.com/arcana-network/keygen/cmd/version"
)

func GetRootCmd() *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:           "keygen",
		Short:         "Generate, inspect and store elliptic curve key pairs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmdutil.AddPersistentFlags(rootCmd)

	rootCmd.AddCommand(generate.GetCommand())
	rootCmd.AddCommand(inspect.GetCommand())
	rootCmd.AddCommand(keystore.GetCommand())
	rootCmd.AddCommand(serve.GetCommand())
	rootCmd.AddCommand(secret.GetCommand())
	rootCmd.AddCommand(version.GetCommand())
	return rootCmd
}
