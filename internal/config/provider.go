package config

import (
	"github.com/previoip/srcds-resource-manager/internal/domain"
	"github.com/previoip/srcds-resource-manager/internal/paths"
)

// Provider binds the config operations to one file and implements
// domain.ConfigProvider.
type Provider struct {
	path string
}

// NewProvider creates a provider for the file at path. An empty path selects
// the default location.
func NewProvider(path string) (*Provider, error) {
	if path == "" {
		p, err := paths.ConfigFilePath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &Provider{path: path}, nil
}

// Path is the config file this provider reads and writes.
func (p *Provider) Path() string {
	return p.path
}

func (p *Provider) Get(key string) (string, bool) {
	return Get(p.path, key)
}

func (p *Provider) GetAll() (map[string]string, error) {
	return GetAll(p.path)
}

// Set writes key=value, keeping comments and the position of an existing key.
func (p *Provider) Set(key, value string) error {
	return WithLock(p.path, func() error {
		lines, err := ReadLines(p.path)
		if err != nil {
			return err
		}

		lines, _ = Set(lines, key, value)
		return WriteLines(p.path, lines)
	})
}

// Unset removes key so its default applies again.
func (p *Provider) Unset(key string) error {
	return WithLock(p.path, func() error {
		lines, err := ReadLines(p.path)
		if err != nil {
			return err
		}

		lines, _ = Unset(lines, key)
		return WriteLines(p.path, lines)
	})
}

var _ domain.ConfigProvider = (*Provider)(nil)
