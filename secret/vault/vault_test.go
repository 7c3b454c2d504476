package vault

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcana-network/keygen/secret"
)

// fakeKV serves the subset of the KV v2 HTTP API the manager uses.
type fakeKV struct {
	mu   sync.Mutex
	data map[string]map[string]interface{}
}

func (f *fakeKV) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	path := strings.TrimPrefix(r.URL.Path, "/v1/")
	switch r.Method {
	case http.MethodGet:
		d, ok := f.data[path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"errors":[]}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": map[string]interface{}{"data": d}})
	case http.MethodPut, http.MethodPost:
		var body struct {
			Data map[string]interface{} `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.data[path] = body.Data
		w.WriteHeader(http.StatusNoContent)
	case http.MethodDelete:
		delete(f.data, path)
		w.WriteHeader(http.StatusNoContent)
	}
}

func newTestManager(t *testing.T) *VaultManager {
	t.Helper()
	srv := httptest.NewServer(&fakeKV{data: map[string]map[string]interface{}{}})
	t.Cleanup(srv.Close)

	m, err := NewVaultManager(&secret.SecretConfig{
		Kind:      secret.KindVault,
		Token:     "test-token",
		ServerURL: srv.URL,
		Namespace: "keygen",
	})
	require.NoError(t, err)
	require.NoError(t, m.Setup())
	return m
}

func TestNewVaultManagerRequiresFields(t *testing.T) {
	_, err := NewVaultManager(&secret.SecretConfig{Token: "x"})
	assert.Error(t, err)
	_, err = NewVaultManager(&secret.SecretConfig{ServerURL: "http://127.0.0.1:8200"})
	assert.Error(t, err)
}

func TestSecretLifecycle(t *testing.T) {
	m := newTestManager(t)

	_, err := m.GetSecret(secret.SigningKey)
	assert.ErrorIs(t, err, secret.ErrSecretNotFound)

	require.NoError(t, m.SetSecret(secret.SigningKey, []byte{0xde, 0xad}))
	got, err := m.GetSecret(secret.SigningKey)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad}, got)

	require.NoError(t, m.SetSecret(secret.SigningKey, []byte{0xbe, 0xef}))
	got, err = m.GetSecret(secret.SigningKey)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xbe, 0xef}, got)

	require.NoError(t, m.DeleteSecret(secret.SigningKey))
	_, err = m.GetSecret(secret.SigningKey)
	assert.ErrorIs(t, err, secret.ErrSecretNotFound)
}
