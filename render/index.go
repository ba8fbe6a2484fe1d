package render

import (
	"sort"
	"strings"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/schema"
)

// indexItem is one row of an overview page listing.
type indexItem struct {
	Name        string
	RelPath     string
	Description string
}

// renderIndex writes a stage overview page: the alphabetically sorted list of
// member names with first-line descriptions, plus one index chunk.
func (r *Renderer) renderIndex(stage, pageName, title, kind string, items []indexItem) error {
	entry, ok := r.Catalog.Lookup(stage, pageName)
	if !ok {
		return docdex.Errorf(docdex.EINTERNAL, "overview page %q missing from catalog", stage+":"+pageName)
	}
	relPath := entry.RelPath

	sorted := make([]indexItem, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var sb strings.Builder
	sb.WriteString("# " + title + "\n")
	for _, item := range sorted {
		sb.WriteString("\n- [" + item.Name + "](" + docdex.ResolvedLink{RelPath: item.RelPath}.Href(relPath) + ")")
		if desc := firstLine(item.Description); desc != "" {
			sb.WriteString(": " + r.rewriteLinks(firstJoined(desc), stage, relPath))
		}
	}
	sb.WriteString("\n")

	content := sb.String()
	if err := r.Pages.WritePage(relPath, content); err != nil {
		return err
	}
	return r.emit(&docdex.Chunk{
		Stage:   stage,
		Kind:    kind,
		Name:    pageName,
		RelPath: relPath,
		Text:    strings.TrimRight(content, "\n"),
	})
}

func (r *Renderer) lookupItems(stage string, names []string, descs []string) []indexItem {
	items := make([]indexItem, 0, len(names))
	for i, name := range names {
		if entry, ok := r.Catalog.Lookup(stage, name); ok {
			items = append(items, indexItem{Name: name, RelPath: entry.RelPath, Description: descs[i]})
		}
	}
	return items
}

func (r *Renderer) renderRuntimeIndexes(doc *schema.RuntimeDoc) error {
	classNames := make([]string, len(doc.Classes))
	classDescs := make([]string, len(doc.Classes))
	for i, c := range doc.Classes {
		classNames[i], classDescs[i] = c.Name, c.Description
	}
	if err := r.renderIndex(docdex.StageRuntime, "classes", "Classes", "class_index",
		r.lookupItems(docdex.StageRuntime, classNames, classDescs)); err != nil {
		return err
	}

	conceptNames := make([]string, len(doc.Concepts))
	conceptDescs := make([]string, len(doc.Concepts))
	for i, c := range doc.Concepts {
		conceptNames[i], conceptDescs[i] = c.Name, c.Description
	}
	if err := r.renderIndex(docdex.StageRuntime, "concepts", "Concepts", "concept_index",
		r.lookupItems(docdex.StageRuntime, conceptNames, conceptDescs)); err != nil {
		return err
	}

	eventNames := make([]string, len(doc.Events))
	eventDescs := make([]string, len(doc.Events))
	for i, e := range doc.Events {
		eventNames[i], eventDescs[i] = e.Name, e.Description
	}
	if err := r.renderIndex(docdex.StageRuntime, "events", "Events", "event_index",
		r.lookupItems(docdex.StageRuntime, eventNames, eventDescs)); err != nil {
		return err
	}

	defineNames := make([]string, len(doc.Defines))
	defineDescs := make([]string, len(doc.Defines))
	for i, d := range doc.Defines {
		defineNames[i], defineDescs[i] = "defines."+d.Name, d.Description
	}
	return r.renderIndex(docdex.StageRuntime, "defines", "Defines", "define_index",
		r.lookupItems(docdex.StageRuntime, defineNames, defineDescs))
}

func (r *Renderer) renderPrototypeIndexes(doc *schema.PrototypeDoc) error {
	protoNames := make([]string, len(doc.Prototypes))
	protoDescs := make([]string, len(doc.Prototypes))
	for i, p := range doc.Prototypes {
		protoNames[i], protoDescs[i] = p.Name, p.Description
	}
	if err := r.renderIndex(docdex.StagePrototype, "prototypes", "Prototypes", "prototype_index",
		r.lookupItems(docdex.StagePrototype, protoNames, protoDescs)); err != nil {
		return err
	}

	typeNames := make([]string, len(doc.Types))
	typeDescs := make([]string, len(doc.Types))
	for i, tc := range doc.Types {
		typeNames[i], typeDescs[i] = tc.Name, tc.Description
	}
	if err := r.renderIndex(docdex.StagePrototype, "types", "Types", "type_index",
		r.lookupItems(docdex.StagePrototype, typeNames, typeDescs)); err != nil {
		return err
	}

	defineNames := make([]string, len(doc.Defines))
	defineDescs := make([]string, len(doc.Defines))
	for i, d := range doc.Defines {
		defineNames[i], defineDescs[i] = "defines."+d.Name, d.Description
	}
	return r.renderIndex(docdex.StagePrototype, "defines", "Defines", "define_index",
		r.lookupItems(docdex.StagePrototype, defineNames, defineDescs))
}
