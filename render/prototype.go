package render

import (
	"strings"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/schema"
)

// RenderPrototype renders every prototype-stage symbol plus the stage's index
// pages. A nil document renders nothing.
func (r *Renderer) RenderPrototype(doc *schema.PrototypeDoc) error {
	if doc == nil {
		return nil
	}

	for _, proto := range doc.Prototypes {
		if err := r.renderPrototype(proto); err != nil {
			return err
		}
		r.counts.Prototype.Prototypes++
	}
	for _, typ := range doc.Types {
		if err := r.renderTypeConcept(typ); err != nil {
			return err
		}
		r.counts.Prototype.Types++
	}
	for _, define := range doc.Defines {
		if err := r.renderDefine(define, docdex.StagePrototype); err != nil {
			return err
		}
		r.counts.Prototype.Defines++
	}

	return r.renderPrototypeIndexes(doc)
}

func (r *Renderer) renderPrototype(proto *schema.Prototype) error {
	entry, ok := r.Catalog.Lookup(docdex.StagePrototype, proto.Name)
	if !ok {
		return docdex.Errorf(docdex.EINTERNAL, "prototype %q missing from catalog", proto.Name)
	}
	relPath := entry.RelPath
	rewrite := func(s string) string { return r.rewriteLinks(s, docdex.StagePrototype, relPath) }

	blocks := []string{"# " + proto.Name}
	if meta := r.prototypeMeta(proto, relPath); meta != "" {
		blocks = append(blocks, meta)
	}
	blocks = append(blocks, rewrite(proto.Description))

	properties := sortByOrder(proto.Properties, func(p *schema.Property) int { return p.Order })
	var memberChunks []*docdex.Chunk
	if len(properties) > 0 {
		blocks = append(blocks, "## Properties")
		for _, p := range properties {
			section := r.propertySection(p, rewrite)
			blocks = append(blocks, section)
			memberChunks = append(memberChunks, &docdex.Chunk{
				Stage:   docdex.StagePrototype,
				Kind:    "prototype_property",
				Name:    proto.Name,
				Member:  p.Name,
				RelPath: relPath,
				Anchor:  p.Name,
				Text:    section,
			})
		}
	}

	if err := r.Pages.WritePage(relPath, page(blocks...)); err != nil {
		return err
	}

	root := &docdex.Chunk{
		Stage:   docdex.StagePrototype,
		Kind:    "prototype",
		Name:    proto.Name,
		RelPath: relPath,
		Text:    r.prototypeRootText(proto, rewrite),
	}
	if err := r.emit(root); err != nil {
		return err
	}
	for _, c := range memberChunks {
		if err := r.emit(c); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) prototypeMeta(proto *schema.Prototype, relPath string) string {
	var parts []string
	if proto.Parent != "" {
		parts = append(parts, "**Inherits:** "+r.symbolRef(docdex.StagePrototype, proto.Parent, relPath))
	}
	if proto.Typename != "" {
		parts = append(parts, "**Type name:** `"+proto.Typename+"`")
	}
	if proto.Abstract {
		parts = append(parts, "*abstract*")
	}
	return strings.Join(parts, " · ")
}

func (r *Renderer) prototypeRootText(proto *schema.Prototype, rewrite func(string) string) string {
	blocks := []string{"# " + proto.Name, rewrite(proto.Description)}
	if len(proto.Properties) > 0 {
		names := make([]string, len(proto.Properties))
		for i, p := range proto.Properties {
			names[i] = p.Name
		}
		blocks = append(blocks, "Properties: "+strings.Join(names, ", "))
	}
	return strings.TrimRight(page(blocks...), "\n")
}

// propertySection renders one property sub-section; the heading is the bare
// property name so the chunk anchor matches it verbatim.
func (r *Renderer) propertySection(p *schema.Property, rewrite func(string) string) string {
	blocks := []string{"### " + p.Name, fieldLine(p.Name, p.Type, p.Optional)}
	if p.Default != nil && p.Default.Text != "" {
		blocks = append(blocks, "**Default:** `"+p.Default.Text+"`")
	}
	blocks = append(blocks, rewrite(p.Description))
	return strings.TrimRight(page(blocks...), "\n")
}

func (r *Renderer) renderTypeConcept(typ *schema.TypeConcept) error {
	entry, ok := r.Catalog.Lookup(docdex.StagePrototype, typ.Name)
	if !ok {
		return docdex.Errorf(docdex.EINTERNAL, "type %q missing from catalog", typ.Name)
	}
	relPath := entry.RelPath
	rewrite := func(s string) string { return r.rewriteLinks(s, docdex.StagePrototype, relPath) }

	blocks := []string{"# " + typ.Name}
	if typ.Type != nil {
		blocks = append(blocks, "**Type:** `"+typ.Type.Render()+"`")
	}
	blocks = append(blocks, rewrite(typ.Description))

	properties := sortByOrder(typ.Properties, func(p *schema.Property) int { return p.Order })
	var memberChunks []*docdex.Chunk
	if len(properties) > 0 {
		blocks = append(blocks, "## Properties")
		for _, p := range properties {
			section := r.propertySection(p, rewrite)
			blocks = append(blocks, section)
			memberChunks = append(memberChunks, &docdex.Chunk{
				Stage:   docdex.StagePrototype,
				Kind:    "type_property",
				Name:    typ.Name,
				Member:  p.Name,
				RelPath: relPath,
				Anchor:  p.Name,
				Text:    section,
			})
		}
	}

	if err := r.Pages.WritePage(relPath, page(blocks...)); err != nil {
		return err
	}

	root := &docdex.Chunk{
		Stage:   docdex.StagePrototype,
		Kind:    "type",
		Name:    typ.Name,
		RelPath: relPath,
		Text:    strings.TrimRight(page("# "+typ.Name, rewrite(typ.Description)), "\n"),
	}
	if err := r.emit(root); err != nil {
		return err
	}
	for _, c := range memberChunks {
		if err := r.emit(c); err != nil {
			return err
		}
	}
	return nil
}
