// Package vault enumerates keys held by external backends as COSE key
// records.
package vault

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/smithee-solutions/libcose/cose/key"
)

var ErrConfig = errors.New("invalid vault config")

// Entry is one backend key exposed as a COSE record. ID is the
// backend specific identifier the key is addressed by.
type Entry struct {
	ID  string
	Key *key.Key
}

type EntryIterator interface {
	Entries() iter.Seq[Entry]
	Err() error
}

type Vault interface {
	List(ctx context.Context) EntryIterator
	Close(ctx context.Context) error
	// Name returns the backend name
	Name() string
	InstanceInfo() string
}

type Factory interface {
	New(ctx context.Context, config any) (Vault, error)
	DefaultConfig() any
}

type Manager interface {
	GetFactory(name string) Factory
}

type registry map[string]Factory

func (m registry) GetFactory(name string) Factory {
	return m[name]
}

var defaultRegistry = make(registry)

func DefaultManager() Manager {
	return defaultRegistry
}

func Register(name string, fact Factory) {
	if _, ok := defaultRegistry[name]; ok {
		panic(fmt.Sprintf("name is already in use: %s", name))
	}
	defaultRegistry[name] = fact
}

type vaultError struct {
	err error
	v   Vault
}

func WrapError(v Vault, err error) error { return vaultError{err: err, v: v} }
func (e vaultError) Error() string       { return fmt.Sprintf("(%s): %v", e.v.InstanceInfo(), e.err) }
func (e vaultError) Unwrap() error       { return e.err }

// Config selects a backend driver; the driver specific part stays an
// AST node until the factory knows its concrete type.
type Config struct {
	Driver string   `yaml:"driver"`
	Config ast.Node `yaml:"config,omitempty"`
}

func New(ctx context.Context, conf *Config, man Manager) (Vault, error) {
	if man == nil {
		man = defaultRegistry
	}
	f := man.GetFactory(conf.Driver)
	if f == nil {
		return nil, fmt.Errorf("%w: unknown vault driver %s", ErrConfig, conf.Driver)
	}
	c := f.DefaultConfig()
	if conf.Config != nil {
		if err := yaml.NodeToValue(conf.Config, c); err != nil {
			return nil, err
		}
	}
	return f.New(ctx, c)
}
