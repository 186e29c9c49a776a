package kv

import (
	"fmt"
	"path/filepath"
)

// Open builds the backend named by b rooted at dataDir.
func Open(b Backend, dataDir string) (Store, error) {
	switch b {
	case BackendFile, "":
		return NewFileStore(dataDir)
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dataDir, "cardvault.db"))
	case BackendMemory:
		return NewMemStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", b)
	}
}
