// Package keystore holds the commands that work on the persistent keystore.
package keystore

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/arcana-network/keygen/cmd/cmdutil"
	"github.com/arcana-network/keygen/codec"
	"github.com/arcana-network/keygen/keys"
	"github.com/arcana-network/keygen/manager"
	"github.com/arcana-network/keygen/secret"
)

const formatFlag = "format"

func GetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keystore",
		Short: "Command to manage stored keys",
	}

	cmd.AddCommand(listCommand())
	cmd.AddCommand(exportCommand())
	cmd.AddCommand(deleteCommand())
	return cmd
}

func listCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Used to list stored keys",
		RunE:  runList,
	}
	cmdutil.AddStoreFlags(cmd)
	return cmd
}

func exportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Used to export a stored key",
		RunE:  runExport,
	}
	cmdutil.AddStoreFlags(cmd)
	cmd.Flags().String(cmdutil.IDFlag, "", "Keystore id of the key")
	cmd.Flags().String(
		formatFlag,
		codec.FormatCompressedPoint.String(),
		"Output format: compressed, uncompressed or raw-scalar-hex",
	)
	_ = cmd.MarkFlagRequired(cmdutil.IDFlag)
	return cmd
}

func deleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Used to delete a stored key and its secret",
		RunE:  runDelete,
	}
	cmdutil.AddStoreFlags(cmd)
	cmd.Flags().String(cmdutil.IDFlag, "", "Keystore id of the key")
	_ = cmd.MarkFlagRequired(cmdutil.IDFlag)
	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	conf, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return err
	}
	ks, err := cmdutil.OpenKeystore(conf)
	if err != nil {
		return err
	}
	defer ks.Close()

	records, err := ks.List()
	if err != nil {
		return err
	}
	lines := []string{"ID|Curve|Public Key|Created"}
	for _, r := range records {
		lines = append(lines, fmt.Sprintf("%s|%s|%s|%s", r.ID, r.Curve, r.PublicKey, r.CreatedAt.Format(time.RFC3339)))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n[KEYSTORE]\n%s\n", secret.FormatKV(lines))
	return nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	conf, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return err
	}
	id, err := cmdutil.RequireString(cmd, cmdutil.IDFlag)
	if err != nil {
		return err
	}
	formatName, _ := cmd.Flags().GetString(formatFlag)
	format, err := codec.ParseFormat(formatName)
	if err != nil {
		return err
	}

	ks, err := cmdutil.OpenKeystore(conf)
	if err != nil {
		return err
	}
	defer ks.Close()

	k, err := ks.Load(id)
	if err != nil {
		return err
	}
	curve := k.Curve()
	km := manager.New(curve)
	return km.WithKey(k, func(k *keys.KeyMaterial) error {
		enc, err := km.Export(k, format)
		if err != nil {
			return err
		}
		defer enc.Wipe()
		fmt.Fprintf(cmd.OutOrStdout(), "\n[KEY EXPORT]\n%s\n", secret.FormatKV([]string{
			fmt.Sprintf("ID|%s", id),
			fmt.Sprintf("Curve|%s", curve.Name),
			fmt.Sprintf("%s|%s", format, enc),
		}))
		return nil
	})
}

func runDelete(cmd *cobra.Command, _ []string) error {
	conf, err := cmdutil.LoadConfig(cmd)
	if err != nil {
		return err
	}
	id, err := cmdutil.RequireString(cmd, cmdutil.IDFlag)
	if err != nil {
		return err
	}
	ks, err := cmdutil.OpenKeystore(conf)
	if err != nil {
		return err
	}
	defer ks.Close()

	if err := ks.Delete(id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted key %s\n", id)
	return nil
}
