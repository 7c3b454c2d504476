// Package cmdutil holds the flag and config plumbing shared by the commands.
package cmdutil

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arcana-network/keygen/common"
	"github.com/arcana-network/keygen/config"
	"github.com/arcana-network/keygen/keystore"
	"github.com/arcana-network/keygen/manager"
)

const (
	ConfigFileFlag   = "config"
	LogLevelFlag     = "log-level"
	CurveFlag        = "curve"
	DataDirFlag      = "data-dir"
	SecretConfigFlag = "secret-config"
	ServerPortFlag   = "server-port"
	MetricsPortFlag  = "metrics-port"
	IDFlag           = "id"

	FlagMissingError = "required flag missing: %q"
)

// AddPersistentFlags registers the flags every command understands.
func AddPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String(
		ConfigFileFlag,
		"./config.json",
		"Used to specify JSON config file path",
	)
	cmd.PersistentFlags().String(
		LogLevelFlag,
		"",
		"Used to override the log level (debug, info, warn, error)",
	)
}

func AddCurveFlag(cmd *cobra.Command) {
	cmd.Flags().String(CurveFlag, "", "Curve to use: stark, secp256k1 or ed25519. Default: from config, else 'stark'")
}

func AddStoreFlags(cmd *cobra.Command) {
	cmd.Flags().String(DataDirFlag, "", "Used to specify the data directory holding the keystore")
	cmd.Flags().String(SecretConfigFlag, "", "Used to specify the secret config path")
}

// LoadConfig reads the config file when it exists, applies flags the user set
// explicitly and verifies the result.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString(ConfigFileFlag)
	conf, err := config.Load(path)
	if err != nil {
		log.Infof("Config file parsing error")
		return nil, err
	}

	override(cmd, LogLevelFlag, &conf.LogLevel)
	override(cmd, CurveFlag, &conf.Curve)
	override(cmd, DataDirFlag, &conf.BasePath)
	override(cmd, SecretConfigFlag, &conf.SecretConfigPath)
	override(cmd, ServerPortFlag, &conf.HttpServerPort)
	override(cmd, MetricsPortFlag, &conf.MetricsPort)

	common.SetLogLevel(conf.LogLevel)

	if err := conf.VerifyRequired(); err != nil {
		log.Infof("Config missing error")
		return nil, err
	}
	return conf, nil
}

func override(cmd *cobra.Command, name string, dst *string) {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return
	}
	*dst = f.Value.String()
}

// NewKeyManager builds a manager for the configured curve.
func NewKeyManager(conf *config.Config, opts ...manager.Option) (*manager.KeyManager, error) {
	curve, err := conf.ResolveCurve()
	if err != nil {
		return nil, err
	}
	return manager.New(curve, opts...), nil
}

// OpenKeystore opens the keystore under the configured data directory with
// the configured secret manager.
func OpenKeystore(conf *config.Config) (*keystore.KeystoreService, error) {
	if conf.SecretConfigPath == "" {
		return nil, fmt.Errorf(FlagMissingError, SecretConfigFlag)
	}
	sm, err := config.OpenSecretManager(conf.SecretConfigPath)
	if err != nil {
		return nil, err
	}
	return keystore.Open(conf.BasePath, sm)
}

// RequireString returns the value of a required string flag.
func RequireString(cmd *cobra.Command, name string) (string, error) {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", fmt.Errorf(FlagMissingError, name)
	}
	return v, nil
}
