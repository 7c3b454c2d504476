// Package keystore persists public key records in leveldb and keeps the
// matching private scalars in a secret manager.
package keystore

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/goccy/go-json"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/arcana-network/keygen/codec"
	"github.com/arcana-network/keygen/common"
	"github.com/arcana-network/keygen/curves"
	"github.com/arcana-network/keygen/keys"
	"github.com/arcana-network/keygen/manager"
	"github.com/arcana-network/keygen/secret"
)

var (
	ErrKeyNotFound = errors.New("keystore: key not found")
	ErrKeyExists   = errors.New("keystore: key already exists")
)

var recordPrefix = []byte("kr")

// Record is the public part of a stored key.
type Record struct {
	ID        string    `json:"id"`
	Curve     string    `json:"curve"`
	PublicKey string    `json:"publicKey"`
	CreatedAt time.Time `json:"createdAt"`
}

type KeystoreService struct {
	db      *leveldb.DB
	secrets secret.SecretManager
}

// Open opens or creates the store under dataDir.
func Open(dataDir string, secrets secret.SecretManager) (*KeystoreService, error) {
	db, err := leveldb.OpenFile(filepath.Join(dataDir, "keystore"), nil)
	if err != nil {
		return nil, err
	}
	return &KeystoreService{db: db, secrets: secrets}, nil
}

// OpenStorage opens the store on an existing leveldb storage, such as
// storage.NewMemStorage.
func OpenStorage(stor storage.Storage, secrets secret.SecretManager) (*KeystoreService, error) {
	db, err := leveldb.Open(stor, nil)
	if err != nil {
		return nil, err
	}
	return &KeystoreService{db: db, secrets: secrets}, nil
}

func (k *KeystoreService) Close() error {
	return k.db.Close()
}

func recordKey(id string) []byte {
	return append(append([]byte{}, recordPrefix...), []byte(id)...)
}

func secretName(id string) string {
	return "key-" + id
}

// Store saves km under id. The scalar goes to the secret manager, the public
// record to leveldb. km must still hold its private key.
func (k *KeystoreService) Store(id string, km *keys.KeyMaterial) (*Record, error) {
	if id == "" {
		return nil, errors.New("keystore: empty id")
	}
	exists, err := k.db.Has(recordKey(id), nil)
	if err != nil {
		common.LogStoreError(common.KEYSTORE_COMPONENT_NAME, "Store", id, err)
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrKeyExists, id)
	}

	raw, err := codec.Encode(km, codec.FormatRawScalarHex)
	if err != nil {
		return nil, err
	}
	defer raw.Wipe()

	record := &Record{
		ID:        id,
		Curve:     km.Curve().Name,
		PublicKey: hexutil.Encode(km.PublicKey().Compressed()),
		CreatedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}

	if err := k.secrets.SetSecret(secretName(id), raw); err != nil {
		common.LogStoreError(common.KEYSTORE_COMPONENT_NAME, "Store", id, err)
		return nil, err
	}
	if err := k.db.Put(recordKey(id), data, nil); err != nil {
		common.LogStoreError(common.KEYSTORE_COMPONENT_NAME, "Store", id, err)
		_ = k.secrets.DeleteSecret(secretName(id))
		return nil, err
	}
	return record, nil
}

// Get returns the public record for id.
func (k *KeystoreService) Get(id string) (*Record, error) {
	data, err := k.db.Get(recordKey(id), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, id)
	}
	if err != nil {
		common.LogStoreError(common.KEYSTORE_COMPONENT_NAME, "Get", id, err)
		return nil, err
	}
	record := &Record{}
	if err := json.Unmarshal(data, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Load rebuilds the full key material for id. The stored public key must match
// the one derived from the stored scalar.
func (k *KeystoreService) Load(id string) (*keys.KeyMaterial, error) {
	record, err := k.Get(id)
	if err != nil {
		return nil, err
	}
	curve, err := curves.ByName(record.Curve)
	if err != nil {
		return nil, err
	}
	raw, err := k.secrets.GetSecret(secretName(id))
	if err != nil {
		common.LogStoreError(common.KEYSTORE_COMPONENT_NAME, "Load", id, err)
		return nil, err
	}
	defer codec.EncodedKey(raw).Wipe()

	km, err := manager.New(curve).ImportPrivate(raw)
	if err != nil {
		return nil, err
	}
	if hexutil.Encode(km.PublicKey().Compressed()) != record.PublicKey {
		_ = km.Dispose()
		return nil, common.Errorf("Load", common.ErrKeyMismatch, "stored public key does not match scalar for %s", id)
	}
	return km, nil
}

// List returns every stored record in key order.
func (k *KeystoreService) List() ([]*Record, error) {
	iter := k.db.NewIterator(util.BytesPrefix(recordPrefix), nil)
	defer iter.Release()

	var records []*Record
	for iter.Next() {
		record := &Record{}
		if err := json.Unmarshal(iter.Value(), record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, iter.Error()
}

// Delete removes the record and its secret.
func (k *KeystoreService) Delete(id string) error {
	if _, err := k.Get(id); err != nil {
		return err
	}
	if err := k.secrets.DeleteSecret(secretName(id)); err != nil && !errors.Is(err, secret.ErrSecretNotFound) {
		common.LogStoreError(common.KEYSTORE_COMPONENT_NAME, "Delete", id, err)
		return err
	}
	return k.db.Delete(recordKey(id), nil)
}
