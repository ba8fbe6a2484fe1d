package docdex

import (
	"path"
	"strings"
)

// Entry is the output location of a documented symbol or auxiliary page:
// a version-root-relative Markdown path plus an optional anchor within it.
type Entry struct {
	RelPath string
	Anchor  string
}

// Catalog maps every documented symbol and auxiliary page to its output
// location. It is built once per version, before any rendering begins, and is
// treated as immutable for the remainder of the invocation.
type Catalog struct {
	entries map[string]Entry // keyed stage + ":" + name
	aux     map[string]Entry // auxiliary pages keyed by bare name
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		entries: make(map[string]Entry),
		aux:     make(map[string]Entry),
	}
}

// Add registers a symbol under a stage. Returns ECONFLICT if the key is
// already taken: symbol keys must be unique within a version.
func (c *Catalog) Add(stage, name string, e Entry) error {
	key := stage + ":" + name
	if _, ok := c.entries[key]; ok {
		return Errorf(ECONFLICT, "duplicate catalog entry %q", key)
	}
	c.entries[key] = e
	return nil
}

// AddAux registers an auxiliary page by bare name. Auxiliary pages are
// referenced ambiguously by either stage, so lookups under any stage prefix
// fall back to this table.
func (c *Catalog) AddAux(name string, e Entry) {
	c.aux[name] = e
}

// Lookup returns the entry for a stage-scoped symbol name.
func (c *Catalog) Lookup(stage, name string) (Entry, bool) {
	e, ok := c.entries[stage+":"+name]
	return e, ok
}

// LookupAux returns the entry for an auxiliary page name.
func (c *Catalog) LookupAux(name string) (Entry, bool) {
	e, ok := c.aux[name]
	return e, ok
}

// Len returns the number of stage-scoped entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// ResolvedLink is the output of link resolution: a version-root-relative page
// path plus an optional anchor.
type ResolvedLink struct {
	RelPath string
	Anchor  string
}

// Href renders the link relative to the page at fromRelPath, with a fragment
// when an anchor is present.
func (l ResolvedLink) Href(fromRelPath string) string {
	href := relativePath(path.Dir(fromRelPath), l.RelPath)
	if l.Anchor != "" {
		href += "#" + Slug(l.Anchor)
	}
	return href
}

// relativePath computes the slash-separated path from fromDir to target.
func relativePath(fromDir, target string) string {
	if fromDir == "." || fromDir == "" {
		return target
	}
	from := strings.Split(fromDir, "/")
	to := strings.Split(target, "/")

	common := 0
	for common < len(from) && common < len(to) && from[common] == to[common] {
		common++
	}

	var parts []string
	for i := common; i < len(from); i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, to[common:]...)
	return strings.Join(parts, "/")
}

// definesPrefix marks a dotted defines path in both symbolic tokens and
// legacy fragments.
const definesPrefix = "defines."

// Resolve resolves a symbolic cross-reference token of the form "stage:Name",
// "stage:defines.Group[.Value...]", or "stage:Base::Member". Returns nil for
// tokens that have no catalog entry: broken references degrade to literal
// text, never an error. Resolution is pure and order-independent.
func (c *Catalog) Resolve(token string) *ResolvedLink {
	stage, rest, ok := strings.Cut(token, ":")
	if !ok || rest == "" {
		return nil
	}

	switch stage {
	case StageRuntime, StagePrototype:
	case StageAuxiliary:
		if e, ok := c.aux[rest]; ok {
			return &ResolvedLink{RelPath: e.RelPath, Anchor: e.Anchor}
		}
		return nil
	default:
		return nil
	}

	if strings.HasPrefix(rest, definesPrefix) {
		group, sub, _ := strings.Cut(rest[len(definesPrefix):], ".")
		if e, ok := c.Lookup(stage, definesPrefix+group); ok {
			return &ResolvedLink{RelPath: e.RelPath, Anchor: sub}
		}
		return nil
	}

	if base, member, found := strings.Cut(rest, "::"); found {
		if e, ok := c.Lookup(stage, base); ok {
			return &ResolvedLink{RelPath: e.RelPath, Anchor: member}
		}
		if e, ok := c.aux[base]; ok {
			return &ResolvedLink{RelPath: e.RelPath, Anchor: member}
		}
		return nil
	}

	if e, ok := c.Lookup(stage, rest); ok {
		return &ResolvedLink{RelPath: e.RelPath, Anchor: e.Anchor}
	}
	if e, ok := c.aux[rest]; ok {
		return &ResolvedLink{RelPath: e.RelPath, Anchor: e.Anchor}
	}
	return nil
}

// overviewPages are the fixed per-stage index page names.
var overviewPages = map[string]bool{
	"classes":    true,
	"concepts":   true,
	"events":     true,
	"defines":    true,
	"prototypes": true,
	"types":      true,
}

// kindDirStages maps a legacy member-page directory name to the stage it
// implies. Defines directories exist under both stages and are resolved
// against the linking page's stage first.
var kindDirStages = map[string]string{
	"classes":    StageRuntime,
	"concepts":   StageRuntime,
	"events":     StageRuntime,
	"globals":    StageRuntime,
	"prototypes": StagePrototype,
	"types":      StagePrototype,
}

// ResolveLegacy resolves a hyperlink in the prior site's URL structure:
// "name.html" for auxiliary and overview pages,
// "defines.html#defines.Group[.Value...]" for define references, and
// "../<kind>/<name>.html" for member pages. fromStage is the stage of the
// page doing the linking and decides which defines page an ambiguous
// reference lands on. Returns nil when the target has no catalog entry.
func (c *Catalog) ResolveLegacy(href, fromStage string) *ResolvedLink {
	pathPart, frag, _ := strings.Cut(href, "#")
	if !strings.HasSuffix(pathPart, ".html") {
		return nil
	}

	base := path.Base(pathPart)
	name := strings.TrimSuffix(base, ".html")
	dir := path.Base(path.Dir(pathPart))

	if base == "defines.html" && strings.HasPrefix(frag, definesPrefix) {
		group, sub, _ := strings.Cut(frag[len(definesPrefix):], ".")
		for _, stage := range stageOrder(fromStage) {
			if e, ok := c.Lookup(stage, definesPrefix+group); ok {
				return &ResolvedLink{RelPath: e.RelPath, Anchor: sub}
			}
		}
		return nil
	}

	// Member pages under a kind directory, e.g. ../classes/Widget.html.
	if dir != "." && dir != ".." && dir != "" {
		if implied, ok := kindDirStages[dir]; ok || dir == "defines" {
			lookupName := name
			if dir == "defines" {
				lookupName = definesPrefix + name
				implied = fromStage
			}
			for _, stage := range stageOrder(implied) {
				if e, ok := c.Lookup(stage, lookupName); ok {
					return &ResolvedLink{RelPath: e.RelPath, Anchor: frag}
				}
			}
			return nil
		}
	}

	if overviewPages[name] {
		for _, stage := range stageOrder(fromStage) {
			if e, ok := c.Lookup(stage, name); ok {
				return &ResolvedLink{RelPath: e.RelPath, Anchor: frag}
			}
		}
		return nil
	}

	if e, ok := c.aux[name]; ok {
		return &ResolvedLink{RelPath: e.RelPath, Anchor: frag}
	}
	return nil
}

// stageOrder returns the preferred lookup order starting from the linking
// page's stage.
func stageOrder(fromStage string) []string {
	if fromStage == StagePrototype {
		return []string{StagePrototype, StageRuntime}
	}
	return []string{StageRuntime, StagePrototype}
}
