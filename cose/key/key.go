// Package key implements the COSE key object: a normalized in-memory
// representation of a signing or encryption key and its encoding into
// the protocol header maps.
//
// A Key never owns the byte buffers handed to its setters. It stores
// the slices as given, without copying, and the referenced bytes must
// stay alive and unchanged until the last encoding call. Buffers
// produced by Decode are the exception: those come from the codec and
// belong to the decoded Key.
package key

import (
	"errors"
	"fmt"

	"github.com/smithee-solutions/libcose/cose"
	"github.com/smithee-solutions/libcose/cose/cbor"
	"golang.org/x/crypto/blake2b"
)

var (
	ErrNoMaterial         = errors.New("cose/key: no key material")
	ErrMalformedKey       = errors.New("cose/key: malformed key")
	ErrUnsupportedKeyType = errors.New("cose/key: unsupported key type")
)

// MapEncoder is the slice of the CBOR encoder the header encoders
// write to. *cbor.Encoder satisfies it.
type MapEncoder interface {
	AppendInt(v int64) error
	AppendBytes(v []byte) error
}

// Material is the key material variant held by a Key. Exactly one
// variant is active at a time; which one determines the key type.
type Material interface {
	KeyType() cose.KeyType
}

// EC carries the material populated through SetKeys: the curve, the
// public coordinates and the private scalar. It covers the EC2, OKP
// and Symmetric key type buckets, selected by the curve.
type EC struct {
	Crv     cose.Curve
	X, Y, D []byte
}

func (m *EC) KeyType() cose.KeyType { return m.Crv.KeyType() }

// RSA carries the modulus and public exponent of an RSA key.
type RSA struct {
	N, E []byte
}

func (m *RSA) KeyType() cose.KeyType { return cose.KeyTypeRSA }

// Key is a COSE key record. The zero value is the valid all-absent
// starting state. A Key must not be mutated concurrently; distinct
// Keys are independent.
type Key struct {
	alg cose.Algorithm
	kid []byte
	mat Material
}

// Init resets the key to the all-absent state. Previously stored
// buffer references are dropped, not released.
func (k *Key) Init() { *k = Key{} }

// SetKeys populates an EC2, OKP or symmetric key. The curve selects
// the key type bucket; a curve outside the known set lands in the
// Symmetric bucket. The algorithm is stored verbatim: whether it
// actually matches the curve is not checked here.
//
// For signing only d is required and x, y may be nil; for verification
// d may be nil. For the Edwards curves y is unused and must stay nil.
// Buffer sizes are the caller's responsibility.
func (k *Key) SetKeys(crv cose.Curve, alg cose.Algorithm, x, y, d []byte) {
	k.alg = alg
	k.mat = &EC{Crv: crv, X: x, Y: y, D: d}
}

// SetKeysRSA populates an RSA key with the modulus and public
// exponent per RFC 8230. Sizes are not validated.
func (k *Key) SetKeysRSA(alg cose.Algorithm, n, e []byte) {
	k.alg = alg
	k.mat = &RSA{N: n, E: e}
}

// SetKID stores the key identifier reference, replacing any previous
// one. An empty identifier is legal and encodes as a zero length byte
// string.
func (k *Key) SetKID(kid []byte) { k.kid = kid }

func (k *Key) Algorithm() cose.Algorithm { return k.alg }
func (k *Key) KID() []byte               { return k.kid }
func (k *Key) Material() Material        { return k.mat }

// KeyType returns the key type derived from the active material, or 0
// when no setter has run yet.
func (k *Key) KeyType() cose.KeyType {
	if k.mat == nil {
		return 0
	}
	return k.mat.KeyType()
}

// Curve returns the curve of EC material, or 0 for RSA and absent
// material.
func (k *Key) Curve() cose.Curve {
	if m, ok := k.mat.(*EC); ok {
		return m.Crv
	}
	return 0
}

// ProtectedToMap appends the protected header entries for this key:
// the algorithm label followed by the algorithm value.
func (k *Key) ProtectedToMap(enc MapEncoder) error {
	if err := enc.AppendInt(cose.HdrAlg); err != nil {
		return err
	}
	return enc.AppendInt(int64(k.alg))
}

// UnprotectedToMap appends the unprotected header entries: the kid
// label followed by the key identifier byte string, zero length
// included.
func (k *Key) UnprotectedToMap(enc MapEncoder) error {
	if err := enc.AppendInt(cose.HdrKid); err != nil {
		return err
	}
	return enc.AppendBytes(k.kid)
}

// ToMap builds the RFC 8152 section 7 wire map for the key.
func (k *Key) ToMap() (cose.Map, error) {
	if k.mat == nil {
		return nil, ErrNoMaterial
	}
	m := cose.Map{
		cose.AttrKty: k.mat.KeyType(),
	}
	if k.alg != 0 {
		m[cose.AttrAlg] = k.alg
	}
	if k.kid != nil {
		m[cose.AttrKid] = k.kid
	}
	switch mat := k.mat.(type) {
	case *EC:
		switch mat.KeyType() {
		case cose.KeyTypeEC2:
			m[cose.AttrEC2_Crv] = mat.Crv
			if mat.X != nil {
				m[cose.AttrEC2_X] = mat.X
			}
			if mat.Y != nil {
				m[cose.AttrEC2_Y] = mat.Y
			}
			if mat.D != nil {
				m[cose.AttrEC2_D] = mat.D
			}
		case cose.KeyTypeOKP:
			m[cose.AttrOKP_Crv] = mat.Crv
			if mat.X != nil {
				m[cose.AttrOKP_X] = mat.X
			}
			if mat.D != nil {
				m[cose.AttrOKP_D] = mat.D
			}
		default:
			// Symmetric key maps carry only the secret under label -1.
			if mat.D != nil {
				m[cose.AttrSymK] = mat.D
			}
		}
	case *RSA:
		if mat.N != nil {
			m[cose.AttrRSA_N] = mat.N
		}
		if mat.E != nil {
			m[cose.AttrRSA_E] = mat.E
		}
	}
	return m, nil
}

// Encode serializes the key as a deterministically encoded CBOR map.
func (k *Key) Encode() ([]byte, error) {
	m, err := k.ToMap()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(m)
}

// Thumbprint returns the blake2b-256 digest of the canonical key
// encoding.
func (k *Key) Thumbprint() ([32]byte, error) {
	data, err := k.Encode()
	if err != nil {
		return [32]byte{}, err
	}
	return blake2b.Sum256(data), nil
}

// Decode parses an encoded key map into a fresh Key. It fails on
// malformed maps, on key types it does not model and on maps missing
// the mandatory fields of their declared type; it never succeeds on
// partial data.
func Decode(data []byte) (*Key, error) {
	var m cose.Map
	if err := cbor.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}
	return FromMap(m)
}

// FromMap builds a Key from a decoded wire map.
func FromMap(m cose.Map) (*Key, error) {
	var key Key
	alg := m.Alg()

	switch kty := m.Kty(); kty {
	case cose.KeyTypeOKP:
		crv := cose.GetAttr[cose.Curve](m, cose.AttrOKP_Crv)
		if crv.KeyType() != cose.KeyTypeOKP {
			return nil, fmt.Errorf("%w: curve %v for key type %v", ErrMalformedKey, crv, kty)
		}
		x := m.Bytes(cose.AttrOKP_X)
		d := m.Bytes(cose.AttrOKP_D)
		if x == nil && d == nil {
			return nil, fmt.Errorf("%w: missing key material for %v", ErrMalformedKey, kty)
		}
		key.SetKeys(crv, alg, x, nil, d)

	case cose.KeyTypeEC2:
		crv := cose.GetAttr[cose.Curve](m, cose.AttrEC2_Crv)
		if crv.KeyType() != cose.KeyTypeEC2 {
			return nil, fmt.Errorf("%w: curve %v for key type %v", ErrMalformedKey, crv, kty)
		}
		x := m.Bytes(cose.AttrEC2_X)
		y := m.Bytes(cose.AttrEC2_Y)
		d := m.Bytes(cose.AttrEC2_D)
		if (x == nil || y == nil) && d == nil {
			return nil, fmt.Errorf("%w: missing key material for %v", ErrMalformedKey, kty)
		}
		key.SetKeys(crv, alg, x, y, d)

	case cose.KeyTypeRSA:
		n := m.Bytes(cose.AttrRSA_N)
		e := m.Bytes(cose.AttrRSA_E)
		if n == nil || e == nil {
			return nil, fmt.Errorf("%w: missing modulus or exponent", ErrMalformedKey)
		}
		key.SetKeysRSA(alg, n, e)

	case cose.KeyTypeSymmetric:
		secret := m.Bytes(cose.AttrSymK)
		if secret == nil {
			return nil, fmt.Errorf("%w: missing secret for %v", ErrMalformedKey, kty)
		}
		key.SetKeys(0, alg, nil, nil, secret)

	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedKeyType, kty)
	}

	if kid := m.Kid(); kid != nil {
		key.SetKID(kid)
	}
	return &key, nil
}
