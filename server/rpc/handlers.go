package rpc

import (
	"context"

	fastjson "github.com/goccy/go-json"
	"github.com/osamingo/jsonrpc/v2"

	"github.com/arcana-network/keygen/curves"
	"github.com/arcana-network/keygen/manager"
)

const (
	HealthMethod      = "HealthCheck"
	KeyGenerateMethod = "KeyGenerate"
	KeyInspectMethod  = "KeyInspect"
)

// Managers resolves the key manager for a request. An empty curve name
// selects the default curve.
type Managers struct {
	Default  *curves.Curve
	managers map[curves.CurveID]*manager.KeyManager
}

// NewManagers builds one KeyManager per supported curve with the same
// options.
func NewManagers(defaultCurve *curves.Curve, opts ...manager.Option) *Managers {
	m := &Managers{
		Default:  defaultCurve,
		managers: make(map[curves.CurveID]*manager.KeyManager),
	}
	for _, c := range []*curves.Curve{curves.CurveStark(), curves.CurveK256(), curves.CurveEd25519()} {
		m.managers[c.ID] = manager.New(c, opts...)
	}
	return m
}

func (m *Managers) Get(curveName string) (*manager.KeyManager, *jsonrpc.Error) {
	curve := m.Default
	if curveName != "" {
		c, err := curves.ByName(curveName)
		if err != nil {
			return nil, &jsonrpc.Error{Code: -32602, Message: "Input error", Data: err.Error()}
		}
		curve = c
	}
	return m.managers[curve.ID], nil
}

type (
	HealthHandler struct {
	}
	HealthParams struct {
	}
	HealthResult struct {
		Status string `json:"status"`
	}
)

func (h HealthHandler) ServeJSONRPC(_ context.Context, _ *fastjson.RawMessage) (interface{}, *jsonrpc.Error) {
	return HealthResult{Status: "Ok"}, nil
}

func SetUpJRPCHandler(managers *Managers) (*jsonrpc.MethodRepository, error) {
	mr := jsonrpc.NewMethodRepository()

	if err := mr.RegisterMethod(HealthMethod, HealthHandler{}, HealthParams{}, HealthResult{}); err != nil {
		return nil, err
	}

	if err := mr.RegisterMethod(KeyGenerateMethod, KeyGenerateHandler{managers: managers}, KeyGenerateParams{}, KeyGenerateResult{}); err != nil {
		return nil, err
	}

	if err := mr.RegisterMethod(KeyInspectMethod, KeyInspectHandler{managers: managers}, KeyInspectParams{}, KeyInspectResult{}); err != nil {
		return nil, err
	}

	return mr, nil
}
