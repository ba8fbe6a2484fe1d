package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docdex"
	docdexfs "github.com/fwojciec/docdex/fs"
	"github.com/fwojciec/docdex/retrieve"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// Run executes the verify command: it checks that a committed version is
// internally consistent, so retrieval never dead-ends on an artifact the
// generator wrote.
func (c *VerifyCmd) Run(deps *Dependencies) error {
	version := c.Version
	if version == "" {
		versions, err := retrieve.Versions(c.Root)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
			return err
		}
		version = versions[len(versions)-1]
	}
	versionDir := filepath.Join(c.Root, version)

	manifest, err := docdexfs.LoadManifest(versionDir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}
	symbols, err := docdexfs.LoadSymbols(versionDir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	var problems []string
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	pages, pageCount := loadPages(versionDir, manifest.Outputs.MarkdownRoot, report)
	deps.Logger.Debug("pages scanned", "count", pageCount)

	chunkIDs, chunkCount, checksum, err := c.verifyChunks(versionDir, version, pages, report)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	if manifest.Counts.Chunks != chunkCount {
		report("manifest records %d chunks, corpus has %d", manifest.Counts.Chunks, chunkCount)
	}
	if manifest.ChunksChecksum != "" && manifest.ChunksChecksum != checksum {
		report("manifest checksum %s does not match corpus %s", manifest.ChunksChecksum, checksum)
	}

	for key, sym := range symbols {
		if !chunkIDs[sym.ID] {
			report("symbol %s points at missing chunk %s", key, sym.ID)
		}
		page, ok := pages[sym.RelPath]
		if !ok {
			report("symbol %s points at missing page %s", key, sym.RelPath)
			continue
		}
		if sym.Anchor != "" && docdex.ExtractSection(page, sym.Anchor) == "" {
			report("symbol %s anchor %q not found in %s", key, sym.Anchor, sym.RelPath)
		}
	}

	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintf(deps.Stderr, "  %s\n", p)
		}
		return docdex.Errorf(docdex.EINVALID, "version %s failed verification with %d problem(s)", version, len(problems))
	}
	fmt.Fprintf(deps.Stdout, "Version %s OK: %d pages, %d chunks\n", version, pageCount, chunkCount)
	return nil
}

// loadPages reads every Markdown page under the tree, checks each parses into
// the heading structure the retrieval side expects, and returns contents keyed
// by version-root-relative path.
func loadPages(versionDir, markdownRoot string, report func(string, ...any)) (map[string]string, int) {
	pages := make(map[string]string)
	md := goldmark.New()

	root := filepath.Join(versionDir, markdownRoot)
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".md") {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			report("unreadable page %s: %v", path, err)
			return nil
		}
		rel, err := filepath.Rel(versionDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		pages[rel] = string(data)

		// The line scanner and a real Markdown parser must agree on the
		// heading structure, or generated anchors drift from what a
		// renderer of these pages would produce.
		doc := md.Parser().Parse(gmtext.NewReader(data))
		if countHeadings(doc) != len(docdex.ExtractSections(string(data))) {
			report("heading structure mismatch in %s", rel)
		}
		return nil
	})
	return pages, len(pages)
}

func countHeadings(doc gmast.Node) int {
	count := 0
	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if _, ok := n.(*gmast.Heading); ok && entering {
			count++
		}
		return gmast.WalkContinue, nil
	})
	return count
}

// verifyChunks streams the corpus, validating every record against the page
// tree, and returns the id set, record count, and recomputed checksum.
func (c *VerifyCmd) verifyChunks(versionDir, version string, pages map[string]string, report func(string, ...any)) (map[string]bool, int, string, error) {
	data, err := os.ReadFile(filepath.Join(versionDir, docdexfs.ChunksFile))
	if err != nil {
		return nil, 0, "", docdex.Errorf(docdex.ENOTFOUND, "chunk corpus for version %s not found: %v", version, err)
	}
	checksum := fmt.Sprintf("xxh64:%016x", xxhash.Sum64(data))

	ids := make(map[string]bool)
	count := 0
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	scanner.Buffer(make([]byte, 64*1024), 4<<20)
	for scanner.Scan() {
		count++
		var chunk docdex.Chunk
		if err := json.Unmarshal(scanner.Bytes(), &chunk); err != nil {
			report("malformed corpus line %d: %v", count, err)
			continue
		}
		if err := chunk.Validate(); err != nil {
			report("invalid chunk %q: %v", chunk.ID, err)
			continue
		}
		if chunk.Version != version {
			report("chunk %s carries version %q", chunk.ID, chunk.Version)
		}
		if ids[chunk.ID] {
			report("duplicate chunk id %s", chunk.ID)
		}
		ids[chunk.ID] = true

		if chunk.RelPath == "" {
			continue
		}
		page, ok := pages[chunk.RelPath]
		if !ok {
			report("chunk %s points at missing page %s", chunk.ID, chunk.RelPath)
			continue
		}
		if chunk.Anchor != "" && docdex.ExtractSection(page, chunk.Anchor) == "" {
			report("chunk %s anchor %q not found in %s", chunk.ID, chunk.Anchor, chunk.RelPath)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, "", err
	}
	return ids, count, checksum, nil
}
