package generate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcana-network/keygen/secret"
)

const (
	secretConfigFlag = "secret-config"
	kindFlag         = "kind"
	tokenFlag        = "token"
	serverURLFlag    = "server-url"
	namespaceFlag    = "namespace"
)

func GetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Used to generate secret config",
		RunE:  runCommand,
	}

	setFlags(cmd)

	return cmd
}

func setFlags(cmd *cobra.Command) {
	cmd.Flags().String(
		secretConfigFlag,
		"./secretConfig.json",
		"the path to the secrets manager configuration file",
	)
	cmd.Flags().String(
		kindFlag,
		secret.KindVault,
		"the secret manager kind: hashicorp-vault or memory",
	)
	cmd.Flags().String(
		tokenFlag,
		"",
		"the access token for the secret service",
	)
	cmd.Flags().String(
		serverURLFlag,
		"",
		"the server URL for the secret service",
	)
	cmd.Flags().String(
		namespaceFlag,
		"default",
		"the namespace for the secret service",
	)
}

func runCommand(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString(secretConfigFlag)
	kind, _ := cmd.Flags().GetString(kindFlag)
	token, _ := cmd.Flags().GetString(tokenFlag)
	serverURL, _ := cmd.Flags().GetString(serverURLFlag)
	namespace, _ := cmd.Flags().GetString(namespaceFlag)

	if kind == secret.KindVault {
		if token == "" {
			return fmt.Errorf("required flag missing: %q", tokenFlag)
		}
		if serverURL == "" {
			return fmt.Errorf("required flag missing: %q", serverURLFlag)
		}
	}

	config := secret.SecretConfig{
		Kind:      kind,
		Token:     token,
		ServerURL: serverURL,
		Namespace: namespace,
	}

	if err := config.WriteConfig(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Secret config generated at %s\n", path)
	return nil
}
