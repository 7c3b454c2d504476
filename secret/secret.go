package secret

import (
	"errors"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/arcana-network/keygen/codec"
	"github.com/arcana-network/keygen/keys"
	"github.com/arcana-network/keygen/manager"
)

// ErrSecretNotFound is returned by GetSecret when name has never been set.
var ErrSecretNotFound = errors.New("secret not found")

type SecretManager interface {
	Setup() error
	GetSecret(name string) ([]byte, error)
	SetSecret(name string, value []byte) error
	DeleteSecret(name string) error
}

const (
	// SigningKey names the long-lived key created by `secret init`.
	SigningKey = "signing-key"
)

// InitSigningKey generates a key with km and stores its scalar under
// SigningKey. The generated material is disposed before returning.
func InitSigningKey(sm SecretManager, km *manager.KeyManager) (Result, error) {
	k, err := km.Generate()
	if err != nil {
		return Result{}, err
	}

	var result Result
	err = keys.Use(k, func(k *keys.KeyMaterial) error {
		raw, err := km.Export(k, codec.FormatRawScalarHex)
		if err != nil {
			return err
		}
		defer raw.Wipe()

		if err := sm.SetSecret(SigningKey, raw); err != nil {
			return err
		}
		result, err = resultFor(k)
		return err
	})
	return result, err
}

// GetResult loads the stored signing key and reports its public data.
func GetResult(sm SecretManager, km *manager.KeyManager) (Result, error) {
	raw, err := sm.GetSecret(SigningKey)
	if err != nil {
		return Result{}, err
	}
	defer codec.EncodedKey(raw).Wipe()

	k, err := km.ImportPrivate(raw)
	if err != nil {
		return Result{}, err
	}
	defer k.Dispose()

	return resultFor(k)
}

func resultFor(k *keys.KeyMaterial) (Result, error) {
	id, err := codec.PublicIdentifier(k.PublicKey())
	if err != nil {
		return Result{}, err
	}
	return Result{
		Curve:      k.Curve().Name,
		PublicKey:  hexutil.Encode(k.PublicKey().Compressed()),
		Identifier: id,
	}, nil
}
