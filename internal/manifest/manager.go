package manifest

import (
	"github.com/previoip/srcds-resource-manager/internal/domain"
	"github.com/previoip/srcds-resource-manager/internal/log"
)

// Manager owns the manifest the shell is editing and the file it came from.
type Manager struct {
	path   string
	doc    *Manifest
	logger domain.Logger
}

func NewManager(logger domain.Logger) *Manager {
	if logger == nil {
		logger = log.NopLogger{}
	}
	return &Manager{doc: New(), logger: logger}
}

// Open switches to the manifest at path, loading it or starting a new one.
// The .json extension is enforced. The previous document is dropped unsaved.
func (m *Manager) Open(path string) (*Manifest, error) {
	path = JSONPath(path)

	doc, err := Load(path)
	if err != nil {
		return nil, err
	}

	m.path = path
	m.doc = doc
	m.logger.Info("manifest: opened %s (new=%t, plugins=%d, addons=%d)",
		path, doc.IsNew, len(doc.Plugins), len(doc.Addons))
	return doc, nil
}

func (m *Manager) Path() string {
	return m.path
}

func (m *Manager) Doc() *Manifest {
	return m.doc
}

// Save writes the current document back to its path.
func (m *Manager) Save() error {
	if m.path == "" {
		return ErrNoPath
	}
	if err := Save(m.path, m.doc); err != nil {
		m.logger.Error("manifest: save %s: %v", m.path, err)
		return err
	}
	m.logger.Info("manifest: saved %s", m.path)
	return nil
}
