package vault

import (
	"encoding/hex"
	"errors"
	"fmt"

	vault "github.com/hashicorp/vault/api"
	log "github.com/sirupsen/logrus"

	"github.com/arcana-network/keygen/secret"
)

// VaultManager stores secrets in a HashiCorp Vault KV v2 engine mounted at
// secret/. Values are hex strings under data.<name>.
type VaultManager struct {
	serverURL string
	token     string
	namespace string
	client    *vault.Client
}

func NewVaultManager(config *secret.SecretConfig) (*VaultManager, error) {
	if config.ServerURL == "" {
		return nil, errors.New("server url not specified in config")
	}
	if config.Token == "" {
		return nil, errors.New("token not specified in config")
	}
	return &VaultManager{
		serverURL: config.ServerURL,
		token:     config.Token,
		namespace: config.Namespace,
	}, nil
}

func (manager *VaultManager) Setup() error {
	config := vault.DefaultConfig()

	config.Address = manager.serverURL

	client, err := vault.NewClient(config)
	if err != nil {
		return err
	}

	client.SetToken(manager.token)
	log.WithField("Namespace", manager.namespace).Debug("vault: client configured")
	client.SetNamespace(manager.namespace)

	manager.client = client
	return nil
}

func (manager *VaultManager) path(name string) string {
	return fmt.Sprintf("secret/data/%s/%s", manager.namespace, name)
}

func (manager *VaultManager) GetSecret(name string) ([]byte, error) {
	s, err := manager.client.Logical().Read(manager.path(name))
	if err != nil {
		return nil, fmt.Errorf("unable to get secret from vault: %w", err)
	}

	if s == nil {
		return nil, secret.ErrSecretNotFound
	}

	data, ok := s.Data["data"]
	if !ok || data == nil {
		return nil, secret.ErrSecretNotFound
	}

	fields, ok := data.(map[string]interface{})
	if !ok {
		return nil, errors.New("unable to assert data type")
	}

	value, ok := fields[name]
	if !ok {
		return nil, secret.ErrSecretNotFound
	}

	val, ok := value.(string)
	if !ok {
		return nil, errors.New("secret not in string format")
	}

	return hex.DecodeString(val)
}

func (manager *VaultManager) SetSecret(name string, value []byte) error {
	if _, err := manager.GetSecret(name); err == nil {
		log.WithField("Name", name).Warn("vault: secret found, overwriting")
	}

	data := map[string]interface{}{
		name: hex.EncodeToString(value),
	}

	_, err := manager.client.Logical().Write(manager.path(name), map[string]interface{}{
		"data": data,
	})
	if err != nil {
		return fmt.Errorf("unable to store secret %w", err)
	}

	return nil
}

// DeleteSecret removes the latest version of name.
func (manager *VaultManager) DeleteSecret(name string) error {
	if _, err := manager.client.Logical().Delete(manager.path(name)); err != nil {
		return fmt.Errorf("unable to delete secret %w", err)
	}
	return nil
}
