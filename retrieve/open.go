package retrieve

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/fs"
)

// OpenResult is the resolved content for an open target, with enough context
// to report where it came from.
type OpenResult struct {
	Text    string
	RelPath string
	Anchor  string
	Chunk   *docdex.Chunk
}

// Get returns the corpus chunk with the given id via a linear scan.
func (e *Engine) Get(id string) (*docdex.Chunk, error) {
	f, err := os.Open(e.chunksPath())
	if err != nil {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "chunk corpus for version %s not found: %v", e.Version, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		var chunk docdex.Chunk
		if err := json.Unmarshal(scanner.Bytes(), &chunk); err != nil {
			continue
		}
		if chunk.ID == id {
			return &chunk, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nil, docdex.Errorf(docdex.ENOTFOUND, "chunk %q not found in version %s", id, e.Version)
}

// Open resolves a target in precedence order: a path-shaped target resolves
// against the page tree, then a symbols-table key, then a chunk id. Path
// targets may carry a "#anchor" suffix selecting one section of the page.
func (e *Engine) Open(target string) (*OpenResult, error) {
	if looksLikePath(target) && !docdex.IsChunkID(target) {
		return e.openPage(target)
	}

	if sym, ok, err := e.lookupSymbol(target); err != nil {
		return nil, err
	} else if ok {
		page, err := e.readPage(sym.RelPath)
		if err != nil {
			return nil, err
		}
		if sym.Anchor == "" {
			return &OpenResult{Text: page, RelPath: sym.RelPath}, nil
		}
		section := docdex.ExtractSection(page, sym.Anchor)
		if section == "" {
			return nil, docdex.Errorf(docdex.ENOTFOUND, "anchor %q not found in %s", sym.Anchor, sym.RelPath)
		}
		return &OpenResult{Text: section, RelPath: sym.RelPath, Anchor: sym.Anchor}, nil
	}

	chunk, err := e.Get(target)
	if err != nil {
		return nil, err
	}
	if chunk.RelPath == "" {
		return &OpenResult{Text: chunk.Text, Chunk: chunk}, nil
	}
	page, err := e.readPage(chunk.RelPath)
	if err != nil {
		return nil, err
	}
	if chunk.Anchor == "" {
		return &OpenResult{Text: page, RelPath: chunk.RelPath, Chunk: chunk}, nil
	}
	section := docdex.ExtractSection(page, chunk.Anchor)
	if section == "" {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "anchor %q not found in %s", chunk.Anchor, chunk.RelPath)
	}
	return &OpenResult{Text: section, RelPath: chunk.RelPath, Anchor: chunk.Anchor, Chunk: chunk}, nil
}

// Call resolves a callable symbol by chunk id or symbols-table key and returns
// its chunk, whose call-convention fields describe how to invoke it.
func (e *Engine) Call(target string) (*docdex.Chunk, error) {
	if !docdex.IsChunkID(target) {
		if sym, ok, err := e.lookupSymbol(target); err != nil {
			return nil, err
		} else if ok {
			target = sym.ID
		}
	}
	return e.Get(target)
}

func (e *Engine) openPage(target string) (*OpenResult, error) {
	relPath, anchor, _ := strings.Cut(target, "#")
	page, err := e.readPage(relPath)
	if err != nil {
		return nil, err
	}
	if anchor == "" {
		return &OpenResult{Text: page, RelPath: relPath}, nil
	}
	section := docdex.ExtractSection(page, anchor)
	if section == "" {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "anchor %q not found in %s", anchor, relPath)
	}
	return &OpenResult{Text: section, RelPath: relPath, Anchor: anchor}, nil
}

// lookupSymbol consults the version's symbols table. A missing table means no
// symbol match; a malformed one is a fatal error.
func (e *Engine) lookupSymbol(key string) (docdex.Symbol, bool, error) {
	symbols, err := fs.LoadSymbols(e.versionDir())
	if err != nil {
		if docdex.ErrorCode(err) == docdex.EINVALID {
			return docdex.Symbol{}, false, err
		}
		return docdex.Symbol{}, false, nil
	}
	sym, ok := symbols[key]
	return sym, ok, nil
}

// looksLikePath reports whether the target should resolve against the page
// tree rather than the corpus or symbols table.
func looksLikePath(target string) bool {
	return strings.Contains(target, "/") ||
		strings.HasSuffix(target, ".md") ||
		strings.Contains(target, "#")
}
