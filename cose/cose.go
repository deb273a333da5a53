// Package cose defines the enumerations and map labels used by the
// RFC 8152 object model: key types, algorithm identifiers, elliptic
// curves and the fixed header parameter labels.
package cose

import (
	"fmt"
	"strconv"
	"strings"
)

type KeyType int64

const (
	KeyTypeOKP KeyType = 1 + iota
	KeyTypeEC2
	KeyTypeRSA
	KeyTypeSymmetric
	KeyTypeHSS_LMS
	KeyTypeWalnutDSA
)

func (k KeyType) String() string {
	switch k {
	case KeyTypeOKP:
		return "OKP"
	case KeyTypeEC2:
		return "EC2"
	case KeyTypeRSA:
		return "RSA"
	case KeyTypeSymmetric:
		return "Symmetric"
	case KeyTypeHSS_LMS:
		return "HSS-LMS"
	case KeyTypeWalnutDSA:
		return "WalnutDSA"
	default:
		return "Unknown"
	}
}

type Algorithm int64

const (
	AlgRS512               Algorithm = -259
	AlgRS384               Algorithm = -258
	AlgRS256               Algorithm = -257
	AlgES256K              Algorithm = -47
	AlgSHA_512             Algorithm = -44
	AlgSHA_384             Algorithm = -43
	AlgRSAES_OAEP_SHA_512  Algorithm = -42
	AlgRSAES_OAEP_SHA_256  Algorithm = -41
	AlgRSAES_OAEP_RFC_8017 Algorithm = -40
	AlgPS512               Algorithm = -39
	AlgPS384               Algorithm = -38
	AlgPS256               Algorithm = -37
	AlgES512               Algorithm = -36
	AlgES384               Algorithm = -35
	AlgECDH_SS_A256KW      Algorithm = -34
	AlgECDH_SS_A192KW      Algorithm = -33
	AlgECDH_SS_A128KW      Algorithm = -32
	AlgECDH_ES_A256KW      Algorithm = -31
	AlgECDH_ES_A192KW      Algorithm = -30
	AlgECDH_ES_A128KW      Algorithm = -29
	AlgECDH_SS_HKDF_512    Algorithm = -28
	AlgECDH_SS_HKDF_256    Algorithm = -27
	AlgECDH_ES_HKDF_512    Algorithm = -26
	AlgECDH_ES_HKDF_256    Algorithm = -25
	AlgSHA_256             Algorithm = -16
	AlgDirect_HKDF_AES_256 Algorithm = -13
	AlgDirect_HKDF_AES_128 Algorithm = -12
	AlgDirect_HKDF_SHA_512 Algorithm = -11
	AlgDirect_HKDF_SHA_256 Algorithm = -10
	AlgEdDSA               Algorithm = -8
	AlgES256               Algorithm = -7
	AlgDirect              Algorithm = -6
	AlgA256KW              Algorithm = -5
	AlgA192KW              Algorithm = -4
	AlgA128KW              Algorithm = -3
	AlgA128GCM             Algorithm = 1
	AlgA192GCM             Algorithm = 2
	AlgA256GCM             Algorithm = 3
	AlgHMAC_256_64         Algorithm = 4
	AlgHMAC_256_256        Algorithm = 5
	AlgHMAC_384_384        Algorithm = 6
	AlgHMAC_512_512        Algorithm = 7
	AlgAES_CCM_16_64_128   Algorithm = 10
	AlgAES_CCM_16_64_256   Algorithm = 11
	AlgAES_CCM_64_64_128   Algorithm = 12
	AlgAES_CCM_64_64_256   Algorithm = 13
	AlgAES_MAC_128_64      Algorithm = 14
	AlgAES_MAC_256_64      Algorithm = 15
	AlgChaCha20_Poly1305   Algorithm = 24
	AlgAES_MAC_128_128     Algorithm = 25
	AlgAES_MAC_256_128     Algorithm = 26
	AlgAES_CCM_16_128_128  Algorithm = 30
	AlgAES_CCM_16_128_256  Algorithm = 31
	AlgAES_CCM_64_128_128  Algorithm = 32
	AlgAES_CCM_64_128_256  Algorithm = 33
)

var algNames = map[Algorithm]string{
	AlgRS512:               "RS512",
	AlgRS384:               "RS384",
	AlgRS256:               "RS256",
	AlgES256K:              "ES256K",
	AlgSHA_512:             "SHA-512",
	AlgSHA_384:             "SHA-384",
	AlgRSAES_OAEP_SHA_512:  "RSAES-OAEP w/ SHA-512",
	AlgRSAES_OAEP_SHA_256:  "RSAES-OAEP w/ SHA-256",
	AlgRSAES_OAEP_RFC_8017: "RSAES-OAEP w/ RFC 8017 default parameters",
	AlgPS512:               "PS512",
	AlgPS384:               "PS384",
	AlgPS256:               "PS256",
	AlgES512:               "ES512",
	AlgES384:               "ES384",
	AlgECDH_SS_A256KW:      "ECDH-SS + A256KW",
	AlgECDH_SS_A192KW:      "ECDH-SS + A192KW",
	AlgECDH_SS_A128KW:      "ECDH-SS + A128KW",
	AlgECDH_ES_A256KW:      "ECDH-ES + A256KW",
	AlgECDH_ES_A192KW:      "ECDH-ES + A192KW",
	AlgECDH_ES_A128KW:      "ECDH-ES + A128KW",
	AlgECDH_SS_HKDF_512:    "ECDH-SS + HKDF-512",
	AlgECDH_SS_HKDF_256:    "ECDH-SS + HKDF-256",
	AlgECDH_ES_HKDF_512:    "ECDH-ES + HKDF-512",
	AlgECDH_ES_HKDF_256:    "ECDH-ES + HKDF-256",
	AlgSHA_256:             "SHA-256",
	AlgDirect_HKDF_AES_256: "direct+HKDF-AES-256",
	AlgDirect_HKDF_AES_128: "direct+HKDF-AES-128",
	AlgDirect_HKDF_SHA_512: "direct+HKDF-SHA-512",
	AlgDirect_HKDF_SHA_256: "direct+HKDF-SHA-256",
	AlgEdDSA:               "EdDSA",
	AlgES256:               "ES256",
	AlgDirect:              "direct",
	AlgA256KW:              "A256KW",
	AlgA192KW:              "A192KW",
	AlgA128KW:              "A128KW",
	AlgA128GCM:             "A128GCM",
	AlgA192GCM:             "A192GCM",
	AlgA256GCM:             "A256GCM",
	AlgHMAC_256_64:         "HMAC 256/64",
	AlgHMAC_256_256:        "HMAC 256/256",
	AlgHMAC_384_384:        "HMAC 384/384",
	AlgHMAC_512_512:        "HMAC 512/512",
	AlgAES_CCM_16_64_128:   "AES-CCM-16-64-128",
	AlgAES_CCM_16_64_256:   "AES-CCM-16-64-256",
	AlgAES_CCM_64_64_128:   "AES-CCM-64-64-128",
	AlgAES_CCM_64_64_256:   "AES-CCM-64-64-256",
	AlgAES_MAC_128_64:      "AES-MAC 128/64",
	AlgAES_MAC_256_64:      "AES-MAC 256/64",
	AlgChaCha20_Poly1305:   "ChaCha20/Poly1305",
	AlgAES_MAC_128_128:     "AES-MAC 128/128",
	AlgAES_MAC_256_128:     "AES-MAC 256/128",
	AlgAES_CCM_16_128_128:  "AES-CCM-16-128-128",
	AlgAES_CCM_16_128_256:  "AES-CCM-16-128-256",
	AlgAES_CCM_64_128_128:  "AES-CCM-64-128-128",
	AlgAES_CCM_64_128_256:  "AES-CCM-64-128-256",
}

func (a Algorithm) String() string {
	if s, ok := algNames[a]; ok {
		return s
	}
	return "Unknown"
}

func (a Algorithm) MarshalText() ([]byte, error) {
	if s, ok := algNames[a]; ok {
		return []byte(s), nil
	}
	return []byte(strconv.FormatInt(int64(a), 10)), nil
}

func (a *Algorithm) UnmarshalText(text []byte) error {
	s := string(text)
	for alg, name := range algNames {
		if strings.EqualFold(s, name) {
			*a = alg
			return nil
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("unknown algorithm: %s", s)
	}
	*a = Algorithm(v)
	return nil
}

// IsAEAD reports whether the algorithm is an AEAD cipher. The COSE
// encrypt structures bind the algorithm identifier into the protected
// headers for AEAD ciphers and carry it unprotected otherwise.
func (a Algorithm) IsAEAD() bool {
	switch a {
	case AlgA128GCM, AlgA192GCM, AlgA256GCM,
		AlgAES_CCM_16_64_128, AlgAES_CCM_16_64_256,
		AlgAES_CCM_64_64_128, AlgAES_CCM_64_64_256,
		AlgAES_CCM_16_128_128, AlgAES_CCM_16_128_256,
		AlgAES_CCM_64_128_128, AlgAES_CCM_64_128_256,
		AlgChaCha20_Poly1305:
		return true
	default:
		return false
	}
}

// NonceSize returns the nonce length in bytes expected by an AEAD
// algorithm, or 0 if the algorithm takes no nonce.
func (a Algorithm) NonceSize() int {
	switch a {
	case AlgA128GCM, AlgA192GCM, AlgA256GCM, AlgChaCha20_Poly1305:
		return 12
	case AlgAES_CCM_16_64_128, AlgAES_CCM_16_64_256,
		AlgAES_CCM_16_128_128, AlgAES_CCM_16_128_256:
		return 13
	case AlgAES_CCM_64_64_128, AlgAES_CCM_64_64_256,
		AlgAES_CCM_64_128_128, AlgAES_CCM_64_128_256:
		return 7
	default:
		return 0
	}
}

type KeyOp int64

const (
	OpSign KeyOp = 1 + iota
	OpVerify
	OpEncrypt
	OpDecrypt
	OpWrapKey
	OpUnwrapKey
	OpDeriveKey
	OpDeriveBits
	OpMACCreate
	OpMACVerify
)

func (o KeyOp) String() string {
	switch o {
	case OpSign:
		return "sign"
	case OpVerify:
		return "verify"
	case OpEncrypt:
		return "encrypt"
	case OpDecrypt:
		return "decrypt"
	case OpWrapKey:
		return "wrap key"
	case OpUnwrapKey:
		return "unwrap key"
	case OpDeriveKey:
		return "derive key"
	case OpDeriveBits:
		return "derive bits"
	case OpMACCreate:
		return "MAC create"
	case OpMACVerify:
		return "MAC verify"
	default:
		return "Unknown"
	}
}

type Curve int64

const (
	CrvP256 Curve = 1 + iota
	CrvP384
	CrvP521
	CrvX25519
	CrvX448
	CrvEd25519
	CrvEd448
	CrvSecp256k1
)

func (c Curve) String() string {
	switch c {
	case CrvP256:
		return "NIST P-256"
	case CrvP384:
		return "NIST P-384"
	case CrvP521:
		return "NIST P-521"
	case CrvX25519:
		return "X25519"
	case CrvX448:
		return "X448"
	case CrvEd25519:
		return "Ed25519"
	case CrvEd448:
		return "Ed448"
	case CrvSecp256k1:
		return "SECG Secp256k1"
	default:
		return "Unknown"
	}
}

// KeyType returns the key type bucket a curve belongs to. The NIST
// prime curves are two-coordinate EC2 keys, the Montgomery and Edwards
// curves are single-coordinate OKP keys. Every other value, the zero
// sentinel included, lands in the Symmetric bucket; downstream
// algorithm selection relies on that fallback, so it is deliberate
// rather than a catch-all.
func (c Curve) KeyType() KeyType {
	switch c {
	case CrvP256, CrvP384, CrvP521:
		return KeyTypeEC2
	case CrvX25519, CrvX448, CrvEd25519, CrvEd448:
		return KeyTypeOKP
	default:
		return KeyTypeSymmetric
	}
}

func (c *Curve) UnmarshalText(text []byte) error {
	switch {
	case strings.EqualFold(string(text), "p-256"):
		*c = CrvP256
	case strings.EqualFold(string(text), "p-384"):
		*c = CrvP384
	case strings.EqualFold(string(text), "p-521"):
		*c = CrvP521
	case strings.EqualFold(string(text), "x25519"):
		*c = CrvX25519
	case strings.EqualFold(string(text), "x448"):
		*c = CrvX448
	case strings.EqualFold(string(text), "ed25519"):
		*c = CrvEd25519
	case strings.EqualFold(string(text), "ed448"):
		*c = CrvEd448
	case strings.EqualFold(string(text), "secp256k1"):
		*c = CrvSecp256k1
	default:
		return fmt.Errorf("unknown curve: %s", string(text))
	}
	return nil
}

// Header parameter labels common to all COSE structures.
const (
	HdrAlg = 1 + iota
	HdrCrit
	HdrContentType
	HdrKid
	HdrIV
	HdrPartialIV
	HdrCounterSignature
)

// Key attribute labels.
const (
	AttrKty = 1 + iota
	AttrKid
	AttrAlg
	AttrKeyOps
	AttrBaseIV
)

const (
	AttrOKP_Crv = -1
	AttrOKP_X   = -2
	AttrOKP_D   = -4

	AttrEC2_Crv = -1
	AttrEC2_X   = -2
	AttrEC2_Y   = -3
	AttrEC2_D   = -4

	AttrRSA_N = -1
	AttrRSA_E = -2

	AttrSymK = -1
)
