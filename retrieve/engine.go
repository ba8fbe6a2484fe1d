// Package retrieve implements the read-only query side: version resolution,
// streamed search over the chunk corpus, exact-id lookup, and anchor-based
// section extraction against the generated page tree. It depends only on the
// shape of the artifacts the generator produces.
package retrieve

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/fs"
)

// Engine answers queries against one generated version under a docs root.
type Engine struct {
	Root    string
	Version string
}

// NewEngine resolves a version under root: the explicit version when given,
// otherwise the latest version directory present (by numeric triple).
func NewEngine(root, version string) (*Engine, error) {
	if version == "" {
		versions, err := Versions(root)
		if err != nil {
			return nil, err
		}
		version = versions[len(versions)-1]
	} else {
		if _, err := docdex.ParseVersion(version); err != nil {
			return nil, err
		}
		if info, err := os.Stat(filepath.Join(root, version)); err != nil || !info.IsDir() {
			return nil, docdex.Errorf(docdex.ENOTFOUND, "version %s not found under %s", version, root)
		}
	}
	return &Engine{Root: root, Version: version}, nil
}

// Versions enumerates version directories under root, sorted ascending by
// numeric triple comparison. An empty docs root is an error, never a silent
// empty success.
func Versions(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "docs root %s not readable: %v", root, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	versions := docdex.SortVersions(names)
	if len(versions) == 0 {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "no version directories under %s", root)
	}
	return versions, nil
}

func (e *Engine) versionDir() string {
	return filepath.Join(e.Root, e.Version)
}

func (e *Engine) chunksPath() string {
	return filepath.Join(e.versionDir(), fs.ChunksFile)
}

// readPage reads a Markdown page by version-root-relative path, tolerating a
// path given without the markdown/ prefix.
func (e *Engine) readPage(relPath string) (string, error) {
	candidates := []string{relPath}
	if !strings.HasPrefix(relPath, "markdown/") {
		candidates = append(candidates, "markdown/"+relPath)
	}
	for _, rel := range candidates {
		data, err := os.ReadFile(filepath.Join(e.versionDir(), filepath.FromSlash(rel)))
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
	}
	return "", docdex.Errorf(docdex.ENOTFOUND, "page %q not found in version %s", relPath, e.Version)
}
