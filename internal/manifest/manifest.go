// Package manifest holds the resource manifest of a dedicated server: the
// server config plus the plugins and workshop addons to install.
//
// The document is stored as JSON. Every entity carries an _id that is the
// SHA-1 of its name (resources hash their url) and is recomputed whenever the
// document is loaded or saved, so hand edits to _id never stick.
package manifest

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrNotFound     = errors.New("manifest: entry not found")
	ErrUnknownField = errors.New("manifest: unknown field")
	ErrNoPath       = errors.New("manifest: no file opened")
)

// Config describes the server the manifest installs into.
type Config struct {
	ID                   string `json:"_id"`
	Name                 string `json:"name"`
	AppID                string `json:"appId"`
	AppIDDedicatedServer string `json:"appIdDedicatedServer"`
	BaseDir              string `json:"baseDir"`
	WorkshopDir          string `json:"workshopDir"`
}

// Resource is one downloadable file of a plugin.
type Resource struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Exclude    bool   `json:"exclude"`
	Platform   string `json:"platform"`
	URL        string `json:"url"`
	Rel        string `json:"rel"`
	TargetPath string `json:"targetPath"`
}

type Plugin struct {
	ID        string     `json:"_id"`
	Name      string     `json:"name"`
	Exclude   bool       `json:"exclude"`
	Rel       string     `json:"rel"`
	Resources []Resource `json:"resources"`
}

// Addon is a workshop item or collection.
type Addon struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Exclude bool   `json:"exclude"`
	URL     string `json:"url"`
}

type Manifest struct {
	Config  Config   `json:"config"`
	Plugins []Plugin `json:"plugins"`
	Addons  []Addon  `json:"addons"`

	// IsNew is set when Load found no usable file.
	IsNew bool `json:"-"`
}

// New returns an empty manifest.
func New() *Manifest {
	m := &Manifest{
		Plugins: []Plugin{},
		Addons:  []Addon{},
	}
	m.Normalize()
	return m
}

// HashID returns the lowercase hex SHA-1 of v.
func HashID(v string) string {
	sum := sha1.Sum([]byte(v))
	return hex.EncodeToString(sum[:])
}

// Normalize recomputes every _id and replaces nil lists with empty ones.
func (m *Manifest) Normalize() {
	m.Config.ID = HashID(m.Config.Name)

	if m.Plugins == nil {
		m.Plugins = []Plugin{}
	}
	if m.Addons == nil {
		m.Addons = []Addon{}
	}

	for i := range m.Plugins {
		p := &m.Plugins[i]
		p.ID = HashID(p.Name)
		if p.Resources == nil {
			p.Resources = []Resource{}
		}
		for j := range p.Resources {
			p.Resources[j].ID = HashID(p.Resources[j].URL)
		}
	}

	for i := range m.Addons {
		m.Addons[i].ID = HashID(m.Addons[i].Name)
	}
}

// AddPlugin appends an empty plugin and returns it with its 1-based index.
func (m *Manifest) AddPlugin() (*Plugin, int) {
	n := len(m.Plugins) + 1
	m.Plugins = append(m.Plugins, Plugin{
		Name:      fmt.Sprintf("plugin-%d", n),
		Resources: []Resource{},
	})
	p := &m.Plugins[n-1]
	p.ID = HashID(p.Name)
	return p, n
}

// AddAddon appends an empty addon and returns it with its 1-based index.
func (m *Manifest) AddAddon() (*Addon, int) {
	n := len(m.Addons) + 1
	m.Addons = append(m.Addons, Addon{Name: fmt.Sprintf("addon-%d", n)})
	a := &m.Addons[n-1]
	a.ID = HashID(a.Name)
	return a, n
}

// AddResource appends an empty resource to the plugin at the 1-based index.
func (m *Manifest) AddResource(plugin int) (*Resource, int, error) {
	p, err := m.Plugin(plugin)
	if err != nil {
		return nil, 0, err
	}
	p.Resources = append(p.Resources, Resource{})
	n := len(p.Resources)
	r := &p.Resources[n-1]
	r.ID = HashID(r.URL)
	return r, n, nil
}

// Plugin returns the plugin at the 1-based index.
func (m *Manifest) Plugin(index int) (*Plugin, error) {
	if index < 1 || index > len(m.Plugins) {
		return nil, fmt.Errorf("%w: plugin %d", ErrNotFound, index)
	}
	return &m.Plugins[index-1], nil
}

// Addon returns the addon at the 1-based index.
func (m *Manifest) Addon(index int) (*Addon, error) {
	if index < 1 || index > len(m.Addons) {
		return nil, fmt.Errorf("%w: addon %d", ErrNotFound, index)
	}
	return &m.Addons[index-1], nil
}

// ResourcesFor returns the included resources of p that target platform.
// A resource with no platform matches every platform.
func (p *Plugin) ResourcesFor(platform string) []Resource {
	var out []Resource
	for _, r := range p.Resources {
		if r.Exclude {
			continue
		}
		if r.Platform != "" && !strings.EqualFold(r.Platform, platform) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// JSONPath forces a .json extension onto path.
func JSONPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return path
	}
	return path + ".json"
}
