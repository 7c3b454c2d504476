package init

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcana-network/keygen/cmd/cmdutil"
	"github.com/arcana-network/keygen/config"
	"github.com/arcana-network/keygen/secret"
)

func GetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Used to generate the signing key and store it in the secret manager",
		RunE:  runCommand,
	}

	cmdutil.AddCurveFlag(cmd)
	cmd.Flags().String(
		cmdutil.SecretConfigFlag,
		"",
		"path to secret config file",
	)
	_ = cmd.MarkFlagRequired(cmdutil.SecretConfigFlag)

	return cmd
}

func runCommand(cmd *cobra.Command, _ []string) error {
	conf, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return err
	}
	sm, err := config.OpenSecretManager(conf.SecretConfigPath)
	if err != nil {
		return err
	}
	km, err := cmdutil.NewKeyManager(conf)
	if err != nil {
		return err
	}

	res, err := secret.InitSigningKey(sm, km)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.GetOutput("SECRET INIT"))
	return nil
}
