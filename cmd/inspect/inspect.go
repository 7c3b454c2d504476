package inspect

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcana-network/keygen/cmd/cmdutil"
	"github.com/arcana-network/keygen/codec"
	"github.com/arcana-network/keygen/secret"
)

const keyFlag = "key"

func GetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Used to validate a public key and print its encodings",
		RunE:  runCommand,
	}

	cmdutil.AddCurveFlag(cmd)
	cmd.Flags().String(
		keyFlag,
		"",
		"Hex encoded public key, compressed or uncompressed",
	)
	_ = cmd.MarkFlagRequired(keyFlag)

	return cmd
}

func runCommand(cmd *cobra.Command, _ []string) error {
	conf, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return err
	}
	key, err := cmdutil.RequireString(cmd, keyFlag)
	if err != nil {
		return err
	}
	km, err := cmdutil.NewKeyManager(conf)
	if err != nil {
		return err
	}

	enc, err := codec.ParseHex(key)
	if err != nil {
		return err
	}
	format, err := codec.DetectPointFormat(km.Curve(), enc)
	if err != nil {
		return err
	}
	k, err := km.ImportPublic(enc)
	if err != nil {
		return err
	}
	pub := k.PublicKey()
	identifier, err := codec.PublicIdentifier(pub)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n[KEY INSPECT]\n%s\n", secret.FormatKV([]string{
		fmt.Sprintf("Curve|%s", km.Curve().Name),
		fmt.Sprintf("Format|%s", format),
		fmt.Sprintf("Compressed|%s", codec.EncodedKey(pub.Compressed())),
		fmt.Sprintf("Uncompressed|%s", codec.EncodedKey(pub.Uncompressed())),
		fmt.Sprintf("Identifier|%s", identifier),
	}))
	return nil
}
