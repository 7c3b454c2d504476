package codec

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/arcana-network/keygen/common"
	"github.com/arcana-network/keygen/curves"
	"github.com/arcana-network/keygen/keys"
)

// PublicIdentifier is the human-facing name of a public key:
//   - stark: the stark key, the 0x-prefixed x coordinate
//   - secp256k1: the EIP-55 checksummed Ethereum address
//   - ed25519: the 0x-prefixed RFC 8032 encoding
func PublicIdentifier(pub *keys.PublicPoint) (string, error) {
	switch pub.Curve().ID {
	case curves.CurveSTARK:
		return hexutil.Encode(pub.X()), nil
	case curves.CurveSECP256K1:
		return EthereumAddress(pub).Hex(), nil
	case curves.CurveED25519:
		return hexutil.Encode(pub.Compressed()), nil
	default:
		return "", common.Errorf("PublicIdentifier", common.ErrMalformedEncoding, "no identifier for curve %s", pub.Curve().ID)
	}
}

// EthereumAddress is the last 20 bytes of keccak256(x || y). Only meaningful
// for secp256k1 points.
func EthereumAddress(pub *keys.PublicPoint) ethcommon.Address {
	raw := pub.Uncompressed()
	return ethcommon.BytesToAddress(ethcrypto.Keccak256(raw[1:])[12:])
}
