// Package awskms lists AWS KMS asymmetric keys as COSE key records.
package awskms

import (
	"context"
	"crypto/x509"
	"fmt"
	"iter"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/aws/aws-sdk-go-v2/service/kms/types"
	"github.com/smithee-solutions/libcose/cose"
	"github.com/smithee-solutions/libcose/keys"
	"github.com/smithee-solutions/libcose/vault"
)

type KMSVault struct {
	client *kms.Client
}

func curveFromKeySpec(ks types.KeySpec) cose.Curve {
	switch ks {
	case types.KeySpecEccNistP256:
		return cose.CrvP256
	case types.KeySpecEccNistP384:
		return cose.CrvP384
	case types.KeySpecEccNistP521:
		return cose.CrvP521
	default:
		return 0
	}
}

type kmsIterator struct {
	ctx context.Context
	v   *KMSVault
	err error
}

func (it *kmsIterator) Err() error { return it.err }

func (it *kmsIterator) Entries() iter.Seq[vault.Entry] {
	if it.err != nil {
		return func(func(vault.Entry) bool) {}
	}
	return func(yield func(vault.Entry) bool) {
		var out *kms.ListKeysOutput
		for {
			var inp *kms.ListKeysInput
			if out != nil {
				if out.NextMarker == nil {
					break
				}
				inp = &kms.ListKeysInput{
					Marker: out.NextMarker,
				}
			}
			var err error
			if out, err = it.v.client.ListKeys(it.ctx, inp); err != nil {
				it.err = vault.WrapError(it.v, err)
				return
			}
			for _, entry := range out.Keys {
				e, err := it.v.getEntry(it.ctx, entry.KeyId)
				if err != nil {
					it.err = vault.WrapError(it.v, err)
					return
				}
				if e != nil && !yield(*e) {
					return
				}
			}
		}
	}
}

func (v *KMSVault) getEntry(ctx context.Context, keyID *string) (*vault.Entry, error) {
	resp, err := v.client.GetPublicKey(ctx, &kms.GetPublicKeyInput{
		KeyId: keyID,
	})
	if err != nil {
		return nil, err
	}

	crv := curveFromKeySpec(resp.KeySpec)
	if crv == 0 || resp.KeyUsage != types.KeyUsageTypeSignVerify {
		return nil, nil
	}

	pub, err := x509.ParsePKIXPublicKey(resp.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	k, err := keys.FromPublicKey(pub, keys.DefaultAlgorithm(crv))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", *resp.KeyId, err)
	}
	k.SetKID([]byte(*resp.KeyId))
	return &vault.Entry{
		ID:  *resp.KeyId,
		Key: k,
	}, nil
}

// List returns an iterator over the sign/verify keys stored under the
// backend. Keys with an unsupported spec are skipped silently.
func (v *KMSVault) List(ctx context.Context) vault.EntryIterator {
	return &kmsIterator{
		ctx: ctx,
		v:   v,
	}
}

func (v *KMSVault) InstanceInfo() string { return "AWS KMS" }

func (v *KMSVault) Name() string { return "awskms" }

func (v *KMSVault) Close(context.Context) error { return nil }

type Config struct {
	Region  string `yaml:"region,omitempty"`
	Profile string `yaml:"profile,omitempty"`
}

type fact struct{}

func (fact) New(ctx context.Context, config any) (vault.Vault, error) {
	c, ok := config.(*Config)
	if !ok {
		return nil, vault.ErrConfig
	}
	var opts []func(*awsconfig.LoadOptions) error
	if c.Region != "" {
		opts = append(opts, awsconfig.WithRegion(c.Region))
	}
	if c.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(c.Profile))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &KMSVault{
		client: kms.NewFromConfig(cfg),
	}, nil
}

func (fact) DefaultConfig() any {
	return new(Config)
}

func init() {
	vault.Register("awskms", fact{})
}
