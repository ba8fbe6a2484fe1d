package render

import (
	"regexp"
	"sort"
	"strings"

	"github.com/fwojciec/docdex"
)

// Renderer walks catalog symbols and produces Markdown pages and chunk
// records. It requires a fully built catalog: rendering against a partially
// populated catalog is a correctness bug, not a supported mode.
type Renderer struct {
	Catalog *docdex.Catalog
	Version string
	Pages   docdex.PageWriter
	Chunks  docdex.ChunkWriter

	counts  docdex.Counts
	symbols map[string]docdex.Symbol
	seenIDs map[string]struct{}
}

// NewRenderer returns a renderer writing through the given page and chunk
// writers.
func NewRenderer(catalog *docdex.Catalog, version string, pages docdex.PageWriter, chunks docdex.ChunkWriter) *Renderer {
	return &Renderer{
		Catalog: catalog,
		Version: version,
		Pages:   pages,
		Chunks:  chunks,
		symbols: make(map[string]docdex.Symbol),
		seenIDs: make(map[string]struct{}),
	}
}

// Counts returns the running counters accumulated so far.
func (r *Renderer) Counts() docdex.Counts {
	return r.counts
}

// Symbols returns the lookup table built while rendering, keyed by the
// canonical "stage:kind:name[.member]" form.
func (r *Renderer) Symbols() map[string]docdex.Symbol {
	return r.symbols
}

// emit validates and appends one chunk record, enforcing that IDs stay
// pairwise distinct within the version, and registers the matching symbols
// table row.
func (r *Renderer) emit(c *docdex.Chunk) error {
	c.ID = docdex.ChunkID(r.Version, c.Stage, c.Kind, c.Name, c.Member)
	c.Version = r.Version

	if err := c.Validate(); err != nil {
		return err
	}
	if _, ok := r.seenIDs[c.ID]; ok {
		return docdex.Errorf(docdex.ECONFLICT, "duplicate chunk id %q", c.ID)
	}
	r.seenIDs[c.ID] = struct{}{}

	if err := r.Chunks.WriteChunk(c); err != nil {
		return err
	}
	r.counts.Chunks++

	if c.RelPath != "" {
		key := docdex.SymbolKey(c.Stage, c.Kind, c.Name, c.Member)
		r.symbols[key] = docdex.Symbol{
			ID:      c.ID,
			Stage:   c.Stage,
			Kind:    c.Kind,
			Name:    c.Name,
			Member:  c.Member,
			RelPath: c.RelPath,
			Anchor:  c.Anchor,
		}
	}
	return nil
}

// linkRe matches inline markdown links; the target group excludes whitespace
// and parentheses so nested constructs fall through untouched.
var linkRe = regexp.MustCompile(`\[([^\]]*)\]\(([^()\s]+)\)`)

// rewriteLinks routes every link target in text through the catalog and
// rewrites resolvable ones relative to the page at fromRelPath. Unresolvable
// targets pass through unchanged.
func (r *Renderer) rewriteLinks(text, stage, fromRelPath string) string {
	return linkRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := linkRe.FindStringSubmatch(m)
		label, target := sub[1], sub[2]

		var link *docdex.ResolvedLink
		if strings.Contains(target, ".html") {
			link = r.Catalog.ResolveLegacy(target, stage)
		} else {
			link = r.Catalog.Resolve(target)
		}
		if link == nil {
			return m
		}
		return "[" + label + "](" + link.Href(fromRelPath) + ")"
	})
}

// sortByOrder stable-sorts a slice by its numeric display order, preserving
// input order on ties.
func sortByOrder[T any](items []T, order func(T) int) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return order(sorted[i]) < order(sorted[j])
	})
	return sorted
}

// firstLine returns the first non-empty line of a description, for index
// listings.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// page assembles non-empty markdown blocks separated by blank lines, with a
// trailing newline.
func page(blocks ...string) string {
	var parts []string
	for _, b := range blocks {
		if strings.TrimSpace(b) != "" {
			parts = append(parts, strings.TrimRight(b, "\n"))
		}
	}
	return strings.Join(parts, "\n\n") + "\n"
}
