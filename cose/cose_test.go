package cose

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurveKeyType(t *testing.T) {
	require.Equal(t, KeyTypeEC2, CrvP256.KeyType())
	require.Equal(t, KeyTypeEC2, CrvP384.KeyType())
	require.Equal(t, KeyTypeEC2, CrvP521.KeyType())
	require.Equal(t, KeyTypeOKP, CrvX25519.KeyType())
	require.Equal(t, KeyTypeOKP, CrvX448.KeyType())
	require.Equal(t, KeyTypeOKP, CrvEd25519.KeyType())
	require.Equal(t, KeyTypeOKP, CrvEd448.KeyType())
	// everything else falls into the Symmetric bucket
	require.Equal(t, KeyTypeSymmetric, CrvSecp256k1.KeyType())
	require.Equal(t, KeyTypeSymmetric, Curve(0).KeyType())
	require.Equal(t, KeyTypeSymmetric, Curve(-1).KeyType())
}

func TestHeaderLabels(t *testing.T) {
	require.EqualValues(t, 1, HdrAlg)
	require.EqualValues(t, 2, HdrCrit)
	require.EqualValues(t, 3, HdrContentType)
	require.EqualValues(t, 4, HdrKid)
	require.EqualValues(t, 5, HdrIV)
}

func TestKeyAttrLabels(t *testing.T) {
	require.EqualValues(t, 1, AttrKty)
	require.EqualValues(t, 2, AttrKid)
	require.EqualValues(t, 3, AttrAlg)
	require.EqualValues(t, -1, AttrEC2_Crv)
	require.EqualValues(t, -2, AttrEC2_X)
	require.EqualValues(t, -3, AttrEC2_Y)
	require.EqualValues(t, -4, AttrEC2_D)
	require.EqualValues(t, -1, AttrRSA_N)
	require.EqualValues(t, -2, AttrRSA_E)
}

func TestAlgorithmValues(t *testing.T) {
	require.EqualValues(t, -8, AlgEdDSA)
	require.EqualValues(t, -7, AlgES256)
	require.EqualValues(t, -37, AlgPS256)
	require.EqualValues(t, -257, AlgRS256)
	require.EqualValues(t, 1, AlgA128GCM)
	require.EqualValues(t, 24, AlgChaCha20_Poly1305)
}

func TestAlgorithmText(t *testing.T) {
	require.Equal(t, "EdDSA", AlgEdDSA.String())
	require.Equal(t, "ES256", AlgES256.String())
	require.Equal(t, "Unknown", Algorithm(12345).String())

	var a Algorithm
	require.NoError(t, a.UnmarshalText([]byte("eddsa")))
	require.Equal(t, AlgEdDSA, a)
	require.NoError(t, a.UnmarshalText([]byte("-7")))
	require.Equal(t, AlgES256, a)
	require.Error(t, a.UnmarshalText([]byte("nonsense")))
}

func TestCurveText(t *testing.T) {
	var c Curve
	require.NoError(t, c.UnmarshalText([]byte("Ed25519")))
	require.Equal(t, CrvEd25519, c)
	require.NoError(t, c.UnmarshalText([]byte("p-256")))
	require.Equal(t, CrvP256, c)
	require.Error(t, c.UnmarshalText([]byte("p-777")))
}

func TestIsAEAD(t *testing.T) {
	aead := []Algorithm{
		AlgA128GCM, AlgA192GCM, AlgA256GCM, AlgChaCha20_Poly1305,
		AlgAES_CCM_16_64_128, AlgAES_CCM_64_128_256,
	}
	for _, a := range aead {
		require.True(t, a.IsAEAD(), a.String())
		require.NotZero(t, a.NonceSize(), a.String())
	}
	notAEAD := []Algorithm{
		AlgEdDSA, AlgES256, AlgDirect, AlgHMAC_256_256, AlgA128KW,
	}
	for _, a := range notAEAD {
		require.False(t, a.IsAEAD(), a.String())
		require.Zero(t, a.NonceSize(), a.String())
	}
}

func TestNonceSize(t *testing.T) {
	require.Equal(t, 12, AlgA256GCM.NonceSize())
	require.Equal(t, 12, AlgChaCha20_Poly1305.NonceSize())
	require.Equal(t, 13, AlgAES_CCM_16_64_128.NonceSize())
	require.Equal(t, 7, AlgAES_CCM_64_64_256.NonceSize())
}

func TestMapAccessors(t *testing.T) {
	m := Map{
		AttrKty: int64(2),
		AttrAlg: AlgES256,
		AttrKid: []byte{1, 2},
	}
	require.Equal(t, KeyTypeEC2, m.Kty())
	require.Equal(t, AlgES256, m.Alg())
	require.Equal(t, []byte{1, 2}, m.Kid())
	require.Nil(t, m.Bytes(AttrEC2_X))
}
