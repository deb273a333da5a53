// Package keys converts between Go crypto public key types and the
// COSE key record. Conversion is representational only: no key is
// generated, derived or used here.
package keys

import (
	stdcrypto "crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/cloudflare/circl/dh/x25519"
	"github.com/cloudflare/circl/dh/x448"
	"github.com/cloudflare/circl/sign/ed448"
	"github.com/smithee-solutions/libcose/cose"
	"github.com/smithee-solutions/libcose/cose/key"
)

var errInvalidPublicKey = errors.New("invalid public key format")

// DefaultAlgorithm returns the customary signing or agreement
// algorithm for a curve, or 0 when there is no obvious default.
func DefaultAlgorithm(crv cose.Curve) cose.Algorithm {
	switch crv {
	case cose.CrvP256:
		return cose.AlgES256
	case cose.CrvP384:
		return cose.AlgES384
	case cose.CrvP521:
		return cose.AlgES512
	case cose.CrvEd25519, cose.CrvEd448:
		return cose.AlgEdDSA
	case cose.CrvX25519, cose.CrvX448:
		return cose.AlgECDH_ES_HKDF_256
	default:
		return 0
	}
}

func curveFromElliptic(c elliptic.Curve) cose.Curve {
	switch c {
	case elliptic.P256():
		return cose.CrvP256
	case elliptic.P384():
		return cose.CrvP384
	case elliptic.P521():
		return cose.CrvP521
	default:
		return 0
	}
}

func ellipticFromCurve(crv cose.Curve) elliptic.Curve {
	switch crv {
	case cose.CrvP256:
		return elliptic.P256()
	case cose.CrvP384:
		return elliptic.P384()
	case cose.CrvP521:
		return elliptic.P521()
	default:
		return nil
	}
}

// FromPublicKey builds a COSE key record referencing the public
// material of pub. The algorithm is stored verbatim; pass
// DefaultAlgorithm of the key's curve when in doubt.
func FromPublicKey(pub stdcrypto.PublicKey, alg cose.Algorithm) (*key.Key, error) {
	var out key.Key
	switch p := pub.(type) {
	case ed25519.PublicKey:
		if len(p) != ed25519.PublicKeySize {
			return nil, fmt.Errorf("invalid public key length: %d", len(p))
		}
		out.SetKeys(cose.CrvEd25519, alg, p, nil, nil)

	case ed448.PublicKey:
		if len(p) != ed448.PublicKeySize {
			return nil, fmt.Errorf("invalid public key length: %d", len(p))
		}
		out.SetKeys(cose.CrvEd448, alg, p, nil, nil)

	case *x25519.Key:
		out.SetKeys(cose.CrvX25519, alg, p[:], nil, nil)

	case *x448.Key:
		out.SetKeys(cose.CrvX448, alg, p[:], nil, nil)

	case *ecdsa.PublicKey:
		crv := curveFromElliptic(p.Curve)
		if crv == 0 {
			return nil, fmt.Errorf("unsupported elliptic curve %v", p.Curve.Params().Name)
		}
		sz := (p.Curve.Params().BitSize + 7) / 8
		x := make([]byte, sz)
		y := make([]byte, sz)
		p.X.FillBytes(x)
		p.Y.FillBytes(y)
		out.SetKeys(crv, alg, x, y, nil)

	case *rsa.PublicKey:
		e := big.NewInt(int64(p.E))
		out.SetKeysRSA(alg, p.N.Bytes(), e.Bytes())

	default:
		return nil, fmt.Errorf("unsupported key type %T", pub)
	}
	return &out, nil
}

// PublicKey reconstructs the Go public key a COSE key record refers
// to. The material lengths are validated against the declared curve.
func PublicKey(k *key.Key) (stdcrypto.PublicKey, error) {
	switch mat := k.Material().(type) {
	case *key.EC:
		switch kty := mat.KeyType(); kty {
		case cose.KeyTypeOKP:
			if mat.X == nil {
				return nil, errInvalidPublicKey
			}
			switch mat.Crv {
			case cose.CrvEd25519:
				if len(mat.X) != ed25519.PublicKeySize {
					return nil, fmt.Errorf("invalid public key length: %d", len(mat.X))
				}
				return ed25519.PublicKey(mat.X), nil

			case cose.CrvEd448:
				if len(mat.X) != ed448.PublicKeySize {
					return nil, fmt.Errorf("invalid public key length: %d", len(mat.X))
				}
				return ed448.PublicKey(mat.X), nil

			case cose.CrvX25519:
				if len(mat.X) != x25519.Size {
					return nil, fmt.Errorf("invalid public key length: %d", len(mat.X))
				}
				var out x25519.Key
				copy(out[:], mat.X)
				return &out, nil

			case cose.CrvX448:
				if len(mat.X) != x448.Size {
					return nil, fmt.Errorf("invalid public key length: %d", len(mat.X))
				}
				var out x448.Key
				copy(out[:], mat.X)
				return &out, nil

			default:
				return nil, fmt.Errorf("unsupported curve %v for key type %v", mat.Crv, kty)
			}

		case cose.KeyTypeEC2:
			c := ellipticFromCurve(mat.Crv)
			if c == nil {
				return nil, fmt.Errorf("unsupported curve %v for key type %v", mat.Crv, kty)
			}
			if mat.X == nil || mat.Y == nil {
				return nil, errInvalidPublicKey
			}
			x := new(big.Int).SetBytes(mat.X)
			y := new(big.Int).SetBytes(mat.Y)
			if !c.IsOnCurve(x, y) {
				return nil, errInvalidPublicKey
			}
			return &ecdsa.PublicKey{Curve: c, X: x, Y: y}, nil

		default:
			return nil, fmt.Errorf("no public key in a %v key", kty)
		}

	case *key.RSA:
		n := new(big.Int).SetBytes(mat.N)
		e := new(big.Int).SetBytes(mat.E)
		if !e.IsInt64() || e.Int64() <= 1 || e.Int64() > math.MaxInt32 {
			return nil, errInvalidPublicKey
		}
		return &rsa.PublicKey{N: n, E: int(e.Int64())}, nil

	default:
		return nil, errInvalidPublicKey
	}
}
