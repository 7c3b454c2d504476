package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"

	"github.com/arcana-network/keygen/common"
	"github.com/arcana-network/keygen/curves"
	"github.com/arcana-network/keygen/secret"
	"github.com/arcana-network/keygen/secret/vault"
)

type Config struct {
	Curve             string `json:"curve"`
	BasePath          string `json:"dataDirectory"`
	SecretConfigPath  string `json:"secretConfigPath"`
	HttpServerPort    string `json:"port"`
	MetricsPort       string `json:"metricsPort"`
	LogLevel          string `json:"logLevel"`
	PublicKeyCacheTTL string `json:"publicKeyCacheTTL"`
}

func (c *Config) VerifyRequired() error {
	if c.Curve == "" {
		return errors.New("required curve missing")
	}
	if _, err := curves.ByName(c.Curve); err != nil {
		return err
	}
	if c.HttpServerPort == "" {
		return errors.New("required port missing")
	}
	if _, err := c.CacheTTL(); err != nil {
		return fmt.Errorf("invalid publicKeyCacheTTL: %w", err)
	}
	return nil
}

// ResolveCurve returns the configured curve.
func (c *Config) ResolveCurve() (*curves.Curve, error) {
	return curves.ByName(c.Curve)
}

func ReadConfigJson(configPath string) (*Config, error) {
	config := GetDefaultConfig()
	log.Debugf("ConfigPath=%s", configPath)
	f, err := os.OpenFile(configPath, os.O_RDONLY|os.O_SYNC, 0)
	if err != nil {
		log.WithError(err).Error("OpenConfigFile")
		return nil, err
	}
	defer f.Close()

	err = json.NewDecoder(f).Decode(config)
	if err != nil {
		log.WithError(err).Error("DecodeConfig")
		return nil, fmt.Errorf("error reading config: %w", err)
	}
	return config, nil
}

// Load reads configPath when the file exists and falls back to the defaults
// otherwise.
func Load(configPath string) (*Config, error) {
	if configPath == "" || !common.DoesFileExist(configPath) {
		return GetDefaultConfig(), nil
	}
	return ReadConfigJson(configPath)
}

func GetDefaultConfig() *Config {
	config := &Config{
		Curve:             DefaultCurve,
		BasePath:          DefaultBasePath,
		HttpServerPort:    DefaultHttpServerPort,
		MetricsPort:       DefaultMetricsPort,
		LogLevel:          DefaultLogLevel,
		PublicKeyCacheTTL: DefaultPublicKeyCacheTTL,
	}
	return config
}

// OpenSecretManager builds and sets up the secret manager described by the
// file at configPath.
func OpenSecretManager(configPath string) (secret.SecretManager, error) {
	if configPath == "" {
		return nil, errors.New("required secretConfigPath missing")
	}
	c, err := secret.ReadConfig(configPath)
	if err != nil {
		return nil, err
	}

	var manager secret.SecretManager
	switch c.Kind {
	case secret.KindVault:
		manager, err = vault.NewVaultManager(c)
		if err != nil {
			return nil, err
		}
	case secret.KindMemory:
		manager = secret.NewMemoryManager()
	default:
		return nil, fmt.Errorf("unsupported secret manager kind %q", c.Kind)
	}

	if err := manager.Setup(); err != nil {
		return nil, err
	}
	return manager, nil
}
