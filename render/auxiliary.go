package render

import (
	"sort"
	"strings"

	"github.com/fwojciec/docdex"
)

// AuxPage is one auxiliary narrative page after HTML conversion: the bare
// page name (file stem), a display title, and Markdown content whose legacy
// links have already been rewritten through the catalog.
type AuxPage struct {
	Name     string
	Title    string
	Markdown string
}

// RenderAuxiliary writes every auxiliary page and its chunk. Pages are
// processed in name order so regeneration is deterministic.
func (r *Renderer) RenderAuxiliary(pages []AuxPage) error {
	sorted := make([]AuxPage, len(pages))
	copy(sorted, pages)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for _, p := range sorted {
		entry, ok := r.Catalog.LookupAux(p.Name)
		if !ok {
			return docdex.Errorf(docdex.EINTERNAL, "auxiliary page %q missing from catalog", p.Name)
		}

		content := p.Markdown
		if !strings.HasPrefix(strings.TrimSpace(content), "# ") {
			title := p.Title
			if title == "" {
				title = p.Name
			}
			content = "# " + title + "\n\n" + content
		}
		if !strings.HasSuffix(content, "\n") {
			content += "\n"
		}

		if err := r.Pages.WritePage(entry.RelPath, content); err != nil {
			return err
		}
		if err := r.emit(&docdex.Chunk{
			Stage:   docdex.StageAuxiliary,
			Kind:    "auxiliary",
			Name:    p.Name,
			RelPath: entry.RelPath,
			Text:    strings.TrimRight(content, "\n"),
		}); err != nil {
			return err
		}
		r.counts.Auxiliary.Pages++
	}
	return nil
}
