package key

import (
	"bytes"
	"testing"

	"github.com/smithee-solutions/libcose/cose"
	"github.com/smithee-solutions/libcose/cose/cbor"
	"github.com/stretchr/testify/require"
)

func TestSetKeysKeyType(t *testing.T) {
	cases := []struct {
		crv cose.Curve
		kty cose.KeyType
	}{
		{cose.CrvP256, cose.KeyTypeEC2},
		{cose.CrvP384, cose.KeyTypeEC2},
		{cose.CrvP521, cose.KeyTypeEC2},
		{cose.CrvX25519, cose.KeyTypeOKP},
		{cose.CrvX448, cose.KeyTypeOKP},
		{cose.CrvEd25519, cose.KeyTypeOKP},
		{cose.CrvEd448, cose.KeyTypeOKP},
		{cose.CrvSecp256k1, cose.KeyTypeSymmetric},
		{0, cose.KeyTypeSymmetric},
		{cose.Curve(999), cose.KeyTypeSymmetric},
	}
	for _, c := range cases {
		t.Run(c.crv.String(), func(t *testing.T) {
			var k Key
			k.Init()
			k.SetKeys(c.crv, cose.AlgES256, nil, nil, nil)
			require.Equal(t, c.kty, k.KeyType())
			require.Equal(t, c.crv, k.Curve())
		})
	}
}

func TestSetKeysRSA(t *testing.T) {
	var k Key
	k.Init()
	k.SetKeys(cose.CrvP256, cose.AlgES256, []byte{1}, []byte{2}, nil)
	require.Equal(t, cose.KeyTypeEC2, k.KeyType())

	k.SetKeysRSA(cose.AlgPS256, []byte{3}, []byte{1, 0, 1})
	require.Equal(t, cose.KeyTypeRSA, k.KeyType())
	require.Equal(t, cose.AlgPS256, k.Algorithm())

	mat, ok := k.Material().(*RSA)
	require.True(t, ok)
	require.Equal(t, []byte{3}, mat.N)
	require.Equal(t, []byte{1, 0, 1}, mat.E)
	require.Equal(t, cose.Curve(0), k.Curve())
}

func TestInitResets(t *testing.T) {
	var k Key
	k.SetKeys(cose.CrvP256, cose.AlgES256, []byte{1}, []byte{2}, []byte{3})
	k.SetKID([]byte{9})
	k.Init()
	require.Equal(t, cose.KeyType(0), k.KeyType())
	require.Equal(t, cose.Algorithm(0), k.Algorithm())
	require.Nil(t, k.KID())
	require.Nil(t, k.Material())
}

func TestLastSetterWins(t *testing.T) {
	var k Key
	k.Init()
	k.SetKeys(cose.CrvP256, cose.AlgES256, []byte{1}, []byte{2}, nil)
	k.SetKeysRSA(cose.AlgRS256, []byte{3}, []byte{4})
	require.Equal(t, cose.KeyTypeRSA, k.KeyType())

	k.SetKeys(cose.CrvEd25519, cose.AlgEdDSA, []byte{5}, nil, nil)
	require.Equal(t, cose.KeyTypeOKP, k.KeyType())
	mat, ok := k.Material().(*EC)
	require.True(t, ok)
	require.Equal(t, []byte{5}, mat.X)
}

func TestProtectedHeaders(t *testing.T) {
	var k Key
	k.Init()
	k.SetKeys(cose.CrvP256, cose.AlgES256, nil, nil, nil)

	var buf bytes.Buffer
	enc := cbor.NewEncoder(&buf)
	require.NoError(t, enc.AppendMap(1))
	require.NoError(t, k.ProtectedToMap(enc))

	var m map[int64]int64
	require.NoError(t, cbor.Unmarshal(buf.Bytes(), &m))
	require.Equal(t, map[int64]int64{cose.HdrAlg: int64(cose.AlgES256)}, m)

	// label must precede the value
	require.Equal(t, byte(cose.HdrAlg), buf.Bytes()[1])
}

func TestUnprotectedHeaders(t *testing.T) {
	cases := []struct {
		name string
		kid  []byte
	}{
		{"kid", []byte{0xde, 0xad, 0xbe, 0xef}},
		{"empty", []byte{}},
		{"unset", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var k Key
			k.Init()
			if c.kid != nil {
				k.SetKID(c.kid)
			}

			var buf bytes.Buffer
			enc := cbor.NewEncoder(&buf)
			require.NoError(t, enc.AppendMap(1))
			require.NoError(t, k.UnprotectedToMap(enc))

			var m map[int64]any
			require.NoError(t, cbor.Unmarshal(buf.Bytes(), &m))
			v, ok := m[cose.HdrKid].([]byte)
			require.True(t, ok, "kid must be a byte string even when empty")
			if len(c.kid) == 0 {
				require.Len(t, v, 0)
			} else {
				require.Equal(t, c.kid, v)
			}
		})
	}
}

func TestSetKIDReplaces(t *testing.T) {
	var k Key
	k.Init()
	k.SetKID([]byte{1, 1, 1})
	k.SetKID([]byte{2, 2})

	var buf bytes.Buffer
	enc := cbor.NewEncoder(&buf)
	require.NoError(t, enc.AppendMap(1))
	require.NoError(t, k.UnprotectedToMap(enc))

	var m map[int64]any
	require.NoError(t, cbor.Unmarshal(buf.Bytes(), &m))
	require.Equal(t, []byte{2, 2}, m[cose.HdrKid])
}

func TestBuffersAreBorrowed(t *testing.T) {
	x := []byte{1, 2, 3}
	kid := []byte{7, 8}
	var k Key
	k.Init()
	k.SetKeys(cose.CrvEd25519, cose.AlgEdDSA, x, nil, nil)
	k.SetKID(kid)

	mat := k.Material().(*EC)
	require.Same(t, &x[0], &mat.X[0], "x must be stored without copying")
	require.Same(t, &kid[0], &k.KID()[0], "kid must be stored without copying")

	// mutations through the caller's slice are visible in the encoding
	first, err := k.Encode()
	require.NoError(t, err)
	x[0] = 0xff
	second, err := k.Encode()
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestEncoderFailure(t *testing.T) {
	var k Key
	k.Init()
	k.SetKeys(cose.CrvP256, cose.AlgES256, nil, nil, nil)
	k.SetKID(bytes.Repeat([]byte{0xaa}, 64))

	buf := cbor.NewBuffer(1)
	enc := cbor.NewEncoder(buf)
	require.ErrorIs(t, k.ProtectedToMap(enc), cbor.ErrBufferFull)
	require.Equal(t, 1, buf.Len()) // the label made it in, the value did not

	buf = cbor.NewBuffer(8)
	enc = cbor.NewEncoder(buf)
	require.ErrorIs(t, k.UnprotectedToMap(enc), cbor.ErrBufferFull)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		build func(k *Key)
	}{
		{
			name: "ec2",
			build: func(k *Key) {
				k.SetKeys(cose.CrvP256, cose.AlgES256,
					bytes.Repeat([]byte{1}, 32), bytes.Repeat([]byte{2}, 32), bytes.Repeat([]byte{3}, 32))
				k.SetKID([]byte("key-1"))
			},
		},
		{
			name: "okp",
			build: func(k *Key) {
				k.SetKeys(cose.CrvEd25519, cose.AlgEdDSA,
					bytes.Repeat([]byte{4}, 32), nil, bytes.Repeat([]byte{5}, 32))
			},
		},
		{
			name: "rsa",
			build: func(k *Key) {
				k.SetKeysRSA(cose.AlgPS256, bytes.Repeat([]byte{6}, 256), []byte{1, 0, 1})
			},
		},
		{
			name: "symmetric",
			build: func(k *Key) {
				k.SetKeys(0, cose.AlgHMAC_256_256, nil, nil, bytes.Repeat([]byte{7}, 32))
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var k Key
			k.Init()
			c.build(&k)

			data, err := k.Encode()
			require.NoError(t, err)
			got, err := Decode(data)
			require.NoError(t, err)

			require.Equal(t, k.KeyType(), got.KeyType())
			require.Equal(t, k.Algorithm(), got.Algorithm())
			require.Equal(t, k.KID(), got.KID())
			require.Equal(t, k.Material(), got.Material())
		})
	}
}

func TestEncodeNoMaterial(t *testing.T) {
	var k Key
	k.Init()
	_, err := k.Encode()
	require.ErrorIs(t, err, ErrNoMaterial)
	_, err = k.Thumbprint()
	require.ErrorIs(t, err, ErrNoMaterial)
}

func mustMarshal(t *testing.T, m cose.Map) []byte {
	t.Helper()
	data, err := cbor.Marshal(m)
	require.NoError(t, err)
	return data
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		err  error
	}{
		{
			name: "garbage",
			data: []byte{0xff, 0x00},
			err:  ErrMalformedKey,
		},
		{
			name: "unknown kty",
			data: mustMarshal(t, cose.Map{cose.AttrKty: int64(99)}),
			err:  ErrUnsupportedKeyType,
		},
		{
			name: "missing kty",
			data: mustMarshal(t, cose.Map{cose.AttrAlg: int64(cose.AlgES256)}),
			err:  ErrUnsupportedKeyType,
		},
		{
			name: "ec2 missing coordinates",
			data: mustMarshal(t, cose.Map{
				cose.AttrKty:     cose.KeyTypeEC2,
				cose.AttrEC2_Crv: cose.CrvP256,
				cose.AttrEC2_X:   []byte{1},
			}),
			err: ErrMalformedKey,
		},
		{
			name: "ec2 with okp curve",
			data: mustMarshal(t, cose.Map{
				cose.AttrKty:     cose.KeyTypeEC2,
				cose.AttrEC2_Crv: cose.CrvEd25519,
				cose.AttrEC2_X:   []byte{1},
				cose.AttrEC2_Y:   []byte{2},
			}),
			err: ErrMalformedKey,
		},
		{
			name: "okp missing material",
			data: mustMarshal(t, cose.Map{
				cose.AttrKty:     cose.KeyTypeOKP,
				cose.AttrOKP_Crv: cose.CrvEd25519,
			}),
			err: ErrMalformedKey,
		},
		{
			name: "rsa missing exponent",
			data: mustMarshal(t, cose.Map{
				cose.AttrKty:   cose.KeyTypeRSA,
				cose.AttrRSA_N: []byte{1},
			}),
			err: ErrMalformedKey,
		},
		{
			name: "symmetric missing secret",
			data: mustMarshal(t, cose.Map{cose.AttrKty: cose.KeyTypeSymmetric}),
			err:  ErrMalformedKey,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Decode(c.data)
			require.ErrorIs(t, err, c.err)
		})
	}
}

func TestThumbprintConsistency(t *testing.T) {
	var k Key
	k.Init()
	k.SetKeys(cose.CrvEd25519, cose.AlgEdDSA, bytes.Repeat([]byte{1}, 32), nil, nil)

	first, err := k.Thumbprint()
	require.NoError(t, err)
	for range 10 {
		tp, err := k.Thumbprint()
		require.NoError(t, err)
		require.Equal(t, first, tp)
	}

	var other Key
	other.Init()
	other.SetKeys(cose.CrvEd25519, cose.AlgEdDSA, bytes.Repeat([]byte{2}, 32), nil, nil)
	tp, err := other.Thumbprint()
	require.NoError(t, err)
	require.NotEqual(t, first, tp)
}

func TestEndToEndOKP(t *testing.T) {
	x := bytes.Repeat([]byte{0x11}, 32)
	d := bytes.Repeat([]byte{0x22}, 32)

	var k Key
	k.Init()
	k.SetKeys(cose.CrvEd25519, cose.AlgEdDSA, x, nil, d)
	require.Equal(t, cose.KeyTypeOKP, k.KeyType())

	var buf bytes.Buffer
	enc := cbor.NewEncoder(&buf)
	require.NoError(t, enc.AppendMap(1))
	require.NoError(t, k.ProtectedToMap(enc))

	var m map[int64]int64
	require.NoError(t, cbor.Unmarshal(buf.Bytes(), &m))
	require.Equal(t, map[int64]int64{cose.HdrAlg: int64(cose.AlgEdDSA)}, m)
}
