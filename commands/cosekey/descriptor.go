package cosekey

import (
	"encoding/hex"
	"fmt"

	"github.com/smithee-solutions/libcose/cose"
	"github.com/smithee-solutions/libcose/cose/key"
)

// KeyDescriptor is the YAML form of a key accepted by the encode
// command. Material fields are hex encoded; algorithm and curve take
// either a registered name or a numeric identifier.
type KeyDescriptor struct {
	Algorithm string         `yaml:"algorithm,omitempty"`
	Curve     string         `yaml:"curve,omitempty"`
	KID       string         `yaml:"kid,omitempty"`
	X         string         `yaml:"x,omitempty"`
	Y         string         `yaml:"y,omitempty"`
	D         string         `yaml:"d,omitempty"`
	RSA       *RSADescriptor `yaml:"rsa,omitempty"`
}

type RSADescriptor struct {
	N string `yaml:"n"`
	E string `yaml:"e"`
}

func hexField(name, value string) ([]byte, error) {
	if value == "" {
		return nil, nil
	}
	data, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %w", name, err)
	}
	return data, nil
}

// Key builds the key record the descriptor describes.
func (d *KeyDescriptor) Key() (*key.Key, error) {
	var alg cose.Algorithm
	if d.Algorithm != "" {
		if err := alg.UnmarshalText([]byte(d.Algorithm)); err != nil {
			return nil, err
		}
	}

	var out key.Key
	if d.RSA != nil {
		if d.Curve != "" || d.X != "" || d.Y != "" || d.D != "" {
			return nil, fmt.Errorf("rsa conflicts with curve material")
		}
		n, err := hexField("n", d.RSA.N)
		if err != nil {
			return nil, err
		}
		e, err := hexField("e", d.RSA.E)
		if err != nil {
			return nil, err
		}
		out.SetKeysRSA(alg, n, e)
	} else {
		var crv cose.Curve
		if d.Curve != "" {
			if err := crv.UnmarshalText([]byte(d.Curve)); err != nil {
				return nil, err
			}
		}
		x, err := hexField("x", d.X)
		if err != nil {
			return nil, err
		}
		y, err := hexField("y", d.Y)
		if err != nil {
			return nil, err
		}
		dd, err := hexField("d", d.D)
		if err != nil {
			return nil, err
		}
		out.SetKeys(crv, alg, x, y, dd)
	}

	kid, err := hexField("kid", d.KID)
	if err != nil {
		return nil, err
	}
	if kid != nil {
		out.SetKID(kid)
	}
	return &out, nil
}
