package vault

import (
	"context"
	"iter"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/require"
)

type stubVault struct {
	value int
}

type stubIterator struct{}

func (stubIterator) Entries() iter.Seq[Entry] { return func(func(Entry) bool) {} }
func (stubIterator) Err() error               { return nil }

func (v *stubVault) List(context.Context) EntryIterator { return stubIterator{} }
func (v *stubVault) Close(context.Context) error        { return nil }
func (v *stubVault) Name() string                       { return "stub" }
func (v *stubVault) InstanceInfo() string               { return "stub" }

type stubConfig struct {
	Value int `yaml:"value"`
}

type stubFactory struct{}

func (stubFactory) New(ctx context.Context, config any) (Vault, error) {
	return &stubVault{value: config.(*stubConfig).Value}, nil
}

func (stubFactory) DefaultConfig() any { return new(stubConfig) }

func TestRegistryDispatch(t *testing.T) {
	Register("stub", stubFactory{})

	var conf Config
	require.NoError(t, yaml.Unmarshal([]byte("driver: stub\nconfig:\n  value: 42\n"), &conf))

	v, err := New(context.Background(), &conf, DefaultManager())
	require.NoError(t, err)
	require.Equal(t, 42, v.(*stubVault).value)
}

func TestUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), &Config{Driver: "nope"}, DefaultManager())
	require.ErrorIs(t, err, ErrConfig)
}
