package generate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcana-network/keygen/cmd/cmdutil"
	"github.com/arcana-network/keygen/codec"
	"github.com/arcana-network/keygen/keys"
	"github.com/arcana-network/keygen/secret"
)

const (
	saveFlag   = "save"
	formatFlag = "format"
)

func GetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Used to generate a fresh key pair",
		RunE:  runCommand,
	}

	setFlags(cmd)

	return cmd
}

func setFlags(cmd *cobra.Command) {
	cmdutil.AddCurveFlag(cmd)
	cmdutil.AddStoreFlags(cmd)
	cmd.Flags().Bool(
		saveFlag,
		false,
		"Store the key in the keystore instead of printing the private key",
	)
	cmd.Flags().String(
		cmdutil.IDFlag,
		"",
		"Keystore id of the saved key, required with --save",
	)
	cmd.Flags().String(
		formatFlag,
		codec.FormatCompressedPoint.String(),
		"Public key format: compressed or uncompressed",
	)
}

func runCommand(cmd *cobra.Command, _ []string) error {
	conf, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return err
	}
	save, _ := cmd.Flags().GetBool(saveFlag)
	id, _ := cmd.Flags().GetString(cmdutil.IDFlag)
	if save && id == "" {
		return fmt.Errorf(cmdutil.FlagMissingError, cmdutil.IDFlag)
	}
	formatName, _ := cmd.Flags().GetString(formatFlag)
	format, err := codec.ParseFormat(formatName)
	if err != nil {
		return err
	}
	if !format.IsPoint() {
		return fmt.Errorf("format %q is not a public key format", formatName)
	}

	km, err := cmdutil.NewKeyManager(conf)
	if err != nil {
		return err
	}
	k, err := km.Generate()
	if err != nil {
		return err
	}

	return km.WithKey(k, func(k *keys.KeyMaterial) error {
		pub, err := km.Export(k, format)
		if err != nil {
			return err
		}
		identifier, err := codec.PublicIdentifier(k.PublicKey())
		if err != nil {
			return err
		}
		lines := []string{
			fmt.Sprintf("Curve|%s", km.Curve().Name),
			fmt.Sprintf("Public Key|%s", pub),
			fmt.Sprintf("Identifier|%s", identifier),
		}

		if save {
			ks, err := cmdutil.OpenKeystore(conf)
			if err != nil {
				return err
			}
			defer ks.Close()
			rec, err := ks.Store(id, k)
			if err != nil {
				return err
			}
			lines = append(lines, fmt.Sprintf("Keystore ID|%s", rec.ID))
		} else {
			raw, err := km.Export(k, codec.FormatRawScalarHex)
			if err != nil {
				return err
			}
			defer raw.Wipe()
			lines = append(lines, fmt.Sprintf("Private Key|%s", raw))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n[KEY GENERATE]\n%s\n", secret.FormatKV(lines))
		return nil
	})
}
