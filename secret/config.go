package secret

import (
	"bytes"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/ryanuber/columnize"
)

const (
	KindVault  = "hashicorp-vault"
	KindMemory = "memory"
)

type SecretConfig struct {
	Kind      string `json:"kind"`
	Token     string `json:"token"`
	Namespace string `json:"namespace"`
	ServerURL string `json:"server_url"`
}

func ReadConfig(path string) (*SecretConfig, error) {
	c, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := &SecretConfig{}

	err = json.Unmarshal(c, config)
	if err != nil {
		return nil, err
	}
	if config.Kind == "" {
		config.Kind = KindVault
	}

	return config, nil
}

func (c *SecretConfig) WriteConfig(path string) error {
	jsonBytes, err := json.MarshalIndent(c, "", " ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, jsonBytes, 0600)
}

// Result is the public view of the signing key held by a secret manager.
type Result struct {
	Curve      string `json:"curve"`
	PublicKey  string `json:"publicKey"`
	Identifier string `json:"identifier"`
}

func (r *Result) GetOutput(title string) string {
	var buffer bytes.Buffer

	buffer.WriteString(fmt.Sprintf("\n[%s]\n", title))
	buffer.WriteString(FormatKV([]string{
		fmt.Sprintf("Curve|%s", r.Curve),
		fmt.Sprintf("Public Key|%s", r.PublicKey),
		fmt.Sprintf("Identifier|%s", r.Identifier),
	}))
	buffer.WriteString("\n")

	return buffer.String()
}

func FormatKV(in []string) string {
	columnConf := columnize.DefaultConfig()
	columnConf.Empty = ""
	columnConf.Glue = " = "

	return columnize.Format(in, columnConf)
}
