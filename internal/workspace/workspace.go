package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Directory permissions for workspace roots
const (
	DefaultDirPermissions = 0o700
)

// Prefix used for workspace directory names
const (
	DirPrefix = "tunedrop-"
)

// Workspace is an isolated temporary directory scoped to a single request.
// It is exclusively owned by the request that created it and must be
// destroyed exactly once when that request finishes.
type Workspace struct {
	ID   string
	Root string
}

// Manager allocates workspaces under a common base directory.
type Manager struct {
	base string
}

// NewManager creates a workspace manager. An empty base falls back to the
// system temp directory.
func NewManager(base string) *Manager {
	if base == "" {
		base = os.TempDir()
	}
	return &Manager{base: base}
}

// Create allocates a new uniquely named workspace directory. The random
// token makes collisions between concurrent requests impossible in
// practice, so no locking is needed anywhere above this.
func (m *Manager) Create() (*Workspace, error) {
	id := uuid.NewString()
	root := filepath.Join(m.base, DirPrefix+id)

	if err := os.MkdirAll(root, DefaultDirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create workspace directory: %w", err)
	}

	return &Workspace{ID: id, Root: root}, nil
}

// Join returns the path of name inside the workspace.
func (w *Workspace) Join(name string) string {
	return filepath.Join(w.Root, name)
}

// Destroy recursively deletes the workspace directory. It is idempotent:
// destroying an already-removed (or partially removed) workspace succeeds.
func (w *Workspace) Destroy() error {
	if err := os.RemoveAll(w.Root); err != nil {
		return fmt.Errorf("failed to remove workspace %s: %w", w.Root, err)
	}
	return nil
}
