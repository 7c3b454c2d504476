package rpc

import (
	"context"
	"errors"

	fastjson "github.com/goccy/go-json"
	"github.com/osamingo/jsonrpc/v2"

	"github.com/arcana-network/keygen/codec"
	"github.com/arcana-network/keygen/common"
	"github.com/arcana-network/keygen/keys"
)

type (
	KeyGenerateHandler struct {
		managers *Managers
	}
	KeyGenerateParams struct {
		Curve string `json:"curve"`
	}
	KeyGenerateResult struct {
		Curve      string `json:"curve"`
		PublicKey  string `json:"public_key"`
		Identifier string `json:"identifier"`
		PrivateKey string `json:"private_key"`
	}

	KeyInspectHandler struct {
		managers *Managers
	}
	KeyInspectParams struct {
		Curve     string `json:"curve"`
		PublicKey string `json:"public_key"`
	}
	KeyInspectResult struct {
		Curve        string `json:"curve"`
		Format       string `json:"format"`
		Compressed   string `json:"compressed"`
		Uncompressed string `json:"uncompressed"`
		Identifier   string `json:"identifier"`
	}
)

// ServeJSONRPC creates a fresh key pair, returns it and disposes the
// server-side copy.
func (h KeyGenerateHandler) ServeJSONRPC(_ context.Context, params *fastjson.RawMessage) (interface{}, *jsonrpc.Error) {
	var p KeyGenerateParams
	if params != nil {
		if err := jsonrpc.Unmarshal(params, &p); err != nil {
			return nil, err
		}
	}
	m, jerr := h.managers.Get(p.Curve)
	if jerr != nil {
		return nil, jerr
	}

	k, err := m.Generate()
	if err != nil {
		return nil, toJRPCError(err)
	}

	var result KeyGenerateResult
	err = m.WithKey(k, func(k *keys.KeyMaterial) error {
		pub, err := m.Export(k, codec.FormatCompressedPoint)
		if err != nil {
			return err
		}
		raw, err := m.Export(k, codec.FormatRawScalarHex)
		if err != nil {
			return err
		}
		defer raw.Wipe()
		id, err := codec.PublicIdentifier(k.PublicKey())
		if err != nil {
			return err
		}
		result = KeyGenerateResult{
			Curve:      m.Curve().Name,
			PublicKey:  pub.String(),
			Identifier: id,
			PrivateKey: raw.String(),
		}
		return nil
	})
	if err != nil {
		return nil, toJRPCError(err)
	}
	return result, nil
}

// ServeJSONRPC validates a public key and reports both point encodings.
func (h KeyInspectHandler) ServeJSONRPC(_ context.Context, params *fastjson.RawMessage) (interface{}, *jsonrpc.Error) {
	var p KeyInspectParams
	if err := jsonrpc.Unmarshal(params, &p); err != nil {
		return nil, err
	}
	if p.PublicKey == "" {
		return nil, &jsonrpc.Error{Code: -32602, Message: "Input error", Data: "public_key is empty"}
	}
	m, jerr := h.managers.Get(p.Curve)
	if jerr != nil {
		return nil, jerr
	}

	enc, err := codec.ParseHex(p.PublicKey)
	if err != nil {
		return nil, toJRPCError(err)
	}
	format, err := codec.DetectPointFormat(m.Curve(), enc)
	if err != nil {
		return nil, toJRPCError(err)
	}
	k, err := m.ImportPublic(enc)
	if err != nil {
		return nil, toJRPCError(err)
	}
	id, err := codec.PublicIdentifier(k.PublicKey())
	if err != nil {
		return nil, toJRPCError(err)
	}
	return KeyInspectResult{
		Curve:        m.Curve().Name,
		Format:       format.String(),
		Compressed:   codec.EncodedKey(k.PublicKey().Compressed()).String(),
		Uncompressed: codec.EncodedKey(k.PublicKey().Uncompressed()).String(),
		Identifier:   id,
	}, nil
}

func toJRPCError(err error) *jsonrpc.Error {
	switch {
	case codec.IsMalformed(err), errors.Is(err, common.ErrInvalidScalar):
		return &jsonrpc.Error{Code: -32602, Message: "Input error", Data: err.Error()}
	default:
		return &jsonrpc.Error{Code: -32603, Message: "Internal error", Data: err.Error()}
	}
}
