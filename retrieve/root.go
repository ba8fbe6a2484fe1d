package retrieve

import (
	"os"
	"path/filepath"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/fs"
)

// DefaultRootDepth bounds how deep FindRoot descends below its start
// directory.
const DefaultRootDepth = 3

// FindRoot locates a docs root at or below start: a directory containing at
// least one version directory that holds a chunk corpus. The search is an
// explicit breadth-first work queue with a depth counter, so the bound and
// the not-found path are first-class behavior rather than a stack limit.
func FindRoot(start string, maxDepth int) (string, error) {
	type candidate struct {
		dir   string
		depth int
	}

	queue := []candidate{{dir: start}}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(c.dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			if _, err := docdex.ParseVersion(entry.Name()); err != nil {
				continue
			}
			corpus := filepath.Join(c.dir, entry.Name(), fs.ChunksFile)
			if _, err := os.Stat(corpus); err == nil {
				return c.dir, nil
			}
		}

		if c.depth < maxDepth {
			for _, entry := range entries {
				if entry.IsDir() {
					queue = append(queue, candidate{dir: filepath.Join(c.dir, entry.Name()), depth: c.depth + 1})
				}
			}
		}
	}

	return "", docdex.Errorf(docdex.ENOTFOUND, "no docs root found within %d levels of %s", maxDepth, start)
}
