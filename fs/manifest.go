package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/docdex"
)

// Artifact file names under a version root.
const (
	ManifestFile = "manifest.json"
	SymbolsFile  = "symbols.json"
)

// WriteManifest records the generation summary in the pending output.
func (s *VersionStore) WriteManifest(m *docdex.Manifest) error {
	return s.WriteJSON(ManifestFile, m)
}

// WriteSymbols records the symbols lookup table in the pending output.
func (s *VersionStore) WriteSymbols(symbols map[string]docdex.Symbol) error {
	return s.WriteJSON(SymbolsFile, symbols)
}

// LoadManifest reads a committed version's manifest. A manifest that fails to
// decode is a fatal error naming the file.
func LoadManifest(versionDir string) (*docdex.Manifest, error) {
	path := filepath.Join(versionDir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m docdex.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "malformed manifest %s: %v", path, err)
	}
	if m.Version == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "malformed manifest %s: missing version", path)
	}
	return &m, nil
}

// LoadSymbols reads a committed version's symbols table. A table that fails
// to decode is a fatal error naming the file.
func LoadSymbols(versionDir string) (map[string]docdex.Symbol, error) {
	path := filepath.Join(versionDir, SymbolsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read symbols table: %w", err)
	}
	var symbols map[string]docdex.Symbol
	if err := json.Unmarshal(data, &symbols); err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "malformed symbols table %s: %v", path, err)
	}
	return symbols, nil
}
