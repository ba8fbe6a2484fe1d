// Package fs provides file-based storage for one generated documentation
// version with atomic update semantics: everything is written to a temporary
// directory, then moved into place on Commit.
package fs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/docdex"
)

// Ensure VersionStore implements docdex.PageWriter at compile time.
var _ docdex.PageWriter = (*VersionStore)(nil)

// VersionStore writes one version's output tree. Files are saved to
// baseDir/version.tmp and moved to baseDir/version on Commit.
type VersionStore struct {
	baseDir string
	version string
}

// NewVersionStore creates a store for a version directory under baseDir.
func NewVersionStore(baseDir, version string) *VersionStore {
	return &VersionStore{baseDir: baseDir, version: version}
}

func (s *VersionStore) tempDir() string {
	return filepath.Join(s.baseDir, s.version+".tmp")
}

func (s *VersionStore) finalDir() string {
	return filepath.Join(s.baseDir, s.version)
}

// Prepare checks the final directory and creates a clean temporary one. A
// populated final directory is a configuration error unless force is set:
// generation must abort before any output is written.
func (s *VersionStore) Prepare(force bool) error {
	if entries, err := os.ReadDir(s.finalDir()); err == nil && len(entries) > 0 && !force {
		return docdex.Errorf(docdex.ECONFLICT, "output directory %s already populated; pass --force to overwrite", s.finalDir())
	}
	if err := os.RemoveAll(s.tempDir()); err != nil {
		return err
	}
	return os.MkdirAll(s.tempDir(), 0755)
}

// WritePage writes a Markdown page at a version-root-relative path.
func (s *VersionStore) WritePage(relPath string, content string) error {
	return s.writeFile(relPath, []byte(content))
}

// WriteJSON writes v as indented JSON at a version-root-relative path.
func (s *VersionStore) WriteJSON(relPath string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return s.writeFile(relPath, append(data, '\n'))
}

func (s *VersionStore) writeFile(relPath string, data []byte) error {
	fullPath := filepath.Join(s.tempDir(), filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, data, 0644)
}

// Commit atomically replaces the final directory with the temporary one.
func (s *VersionStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards pending changes.
func (s *VersionStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
