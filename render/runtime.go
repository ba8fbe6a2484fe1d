package render

import (
	"strings"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/schema"
)

// RenderRuntime renders every runtime-stage symbol plus the stage's index
// pages. A nil document renders nothing.
func (r *Renderer) RenderRuntime(doc *schema.RuntimeDoc) error {
	if doc == nil {
		return nil
	}

	for _, class := range doc.Classes {
		if err := r.renderClass(class); err != nil {
			return err
		}
		r.counts.Runtime.Classes++
	}
	for _, concept := range doc.Concepts {
		if err := r.renderConcept(concept); err != nil {
			return err
		}
		r.counts.Runtime.Concepts++
	}
	for _, event := range doc.Events {
		if err := r.renderEvent(event); err != nil {
			return err
		}
		r.counts.Runtime.Events++
	}
	for _, define := range doc.Defines {
		if err := r.renderDefine(define, docdex.StageRuntime); err != nil {
			return err
		}
		r.counts.Runtime.Defines++
	}
	for _, fn := range doc.GlobalFunctions {
		if err := r.renderGlobalFunction(fn); err != nil {
			return err
		}
		r.counts.Runtime.GlobalFunctions++
	}
	for _, obj := range doc.GlobalObjects {
		if err := r.renderGlobalObject(obj); err != nil {
			return err
		}
		r.counts.Runtime.GlobalObjects++
	}

	return r.renderRuntimeIndexes(doc)
}

func (r *Renderer) renderClass(class *schema.Class) error {
	entry, ok := r.Catalog.Lookup(docdex.StageRuntime, class.Name)
	if !ok {
		return docdex.Errorf(docdex.EINTERNAL, "class %q missing from catalog", class.Name)
	}
	relPath := entry.RelPath
	rewrite := func(s string) string { return r.rewriteLinks(s, docdex.StageRuntime, relPath) }

	blocks := []string{"# " + class.Name}
	if meta := r.classMeta(class, relPath); meta != "" {
		blocks = append(blocks, meta)
	}
	blocks = append(blocks, rewrite(class.Description))

	methods := sortByOrder(class.Methods, func(m *schema.Method) int { return m.Order })
	attributes := sortByOrder(class.Attributes, func(a *schema.Attribute) int { return a.Order })

	type memberChunk struct {
		chunk *docdex.Chunk
	}
	var members []memberChunk

	if len(methods) > 0 {
		blocks = append(blocks, "## Methods")
		for _, m := range methods {
			section := r.methodSection(m, rewrite)
			blocks = append(blocks, section)
			members = append(members, memberChunk{chunk: &docdex.Chunk{
				Stage:         docdex.StageRuntime,
				Kind:          "class_method",
				Name:          class.Name,
				Member:        m.Name,
				RelPath:       relPath,
				Anchor:        m.Name,
				Call:          signature(m),
				TakesTable:    m.TakesTable,
				TableOptional: m.TableOptional,
				Text:          section,
			}})
		}
	}

	if len(attributes) > 0 {
		blocks = append(blocks, "## Attributes")
		for _, a := range attributes {
			section := r.attributeSection(a, rewrite)
			blocks = append(blocks, section)
			members = append(members, memberChunk{chunk: &docdex.Chunk{
				Stage:   docdex.StageRuntime,
				Kind:    "class_attribute",
				Name:    class.Name,
				Member:  a.Name,
				RelPath: relPath,
				Anchor:  a.Name,
				Text:    section,
			}})
		}
	}

	if err := r.Pages.WritePage(relPath, page(blocks...)); err != nil {
		return err
	}

	root := &docdex.Chunk{
		Stage:   docdex.StageRuntime,
		Kind:    "class",
		Name:    class.Name,
		RelPath: relPath,
		Text:    r.classRootText(class, rewrite),
	}
	if err := r.emit(root); err != nil {
		return err
	}
	for _, m := range members {
		if err := r.emit(m.chunk); err != nil {
			return err
		}
	}
	return nil
}

// classMeta renders the inheritance/abstract line under a class title.
func (r *Renderer) classMeta(class *schema.Class, relPath string) string {
	var parts []string
	if class.Parent != "" {
		parts = append(parts, "**Inherits:** "+r.symbolRef(docdex.StageRuntime, class.Parent, relPath))
	}
	if class.Abstract {
		parts = append(parts, "*abstract*")
	}
	return strings.Join(parts, " · ")
}

// symbolRef renders a stage-scoped symbol as a link when resolvable, plain
// text otherwise.
func (r *Renderer) symbolRef(stage, name, fromRelPath string) string {
	if link := r.Catalog.Resolve(stage + ":" + name); link != nil {
		return "[" + name + "](" + link.Href(fromRelPath) + ")"
	}
	return name
}

func (r *Renderer) classRootText(class *schema.Class, rewrite func(string) string) string {
	blocks := []string{"# " + class.Name, rewrite(class.Description)}

	if len(class.Methods) > 0 {
		names := make([]string, len(class.Methods))
		for i, m := range class.Methods {
			names[i] = m.Name
		}
		blocks = append(blocks, "Methods: "+strings.Join(names, ", "))
	}
	if len(class.Attributes) > 0 {
		names := make([]string, len(class.Attributes))
		for i, a := range class.Attributes {
			names[i] = a.Name
		}
		blocks = append(blocks, "Attributes: "+strings.Join(names, ", "))
	}
	return strings.TrimRight(page(blocks...), "\n")
}

// methodSection renders one method sub-section. The heading text is the bare
// member name so the member chunk's anchor matches it verbatim.
func (r *Renderer) methodSection(m *schema.Method, rewrite func(string) string) string {
	blocks := []string{"### " + m.Name, "`" + signature(m) + "`"}
	if m.TakesTable && m.TableOptional {
		blocks = append(blocks, "The argument table may be omitted entirely.")
	}
	blocks = append(blocks, rewrite(m.Description))

	if params := parameterList(m.Parameters, rewrite); params != "" {
		blocks = append(blocks, "**Parameters**", params)
	}
	if returns := returnList(m.ReturnValues, rewrite); returns != "" {
		blocks = append(blocks, "**Returns**", returns)
	}
	return strings.TrimRight(page(blocks...), "\n")
}

func (r *Renderer) attributeSection(a *schema.Attribute, rewrite func(string) string) string {
	blocks := []string{
		"### " + a.Name,
		fieldLine(a.Name, a.Type, a.Optional) + " (" + accessNote(a.Read, a.Write) + ")",
		rewrite(a.Description),
	}
	return strings.TrimRight(page(blocks...), "\n")
}

func (r *Renderer) renderConcept(concept *schema.Concept) error {
	entry, ok := r.Catalog.Lookup(docdex.StageRuntime, concept.Name)
	if !ok {
		return docdex.Errorf(docdex.EINTERNAL, "concept %q missing from catalog", concept.Name)
	}
	rewrite := func(s string) string { return r.rewriteLinks(s, docdex.StageRuntime, entry.RelPath) }

	blocks := []string{"# " + concept.Name}
	if concept.Type != nil {
		blocks = append(blocks, "**Type:** `"+concept.Type.Render()+"`")
	}
	blocks = append(blocks, rewrite(concept.Description))

	content := page(blocks...)
	if err := r.Pages.WritePage(entry.RelPath, content); err != nil {
		return err
	}
	return r.emit(&docdex.Chunk{
		Stage:   docdex.StageRuntime,
		Kind:    "concept",
		Name:    concept.Name,
		RelPath: entry.RelPath,
		Text:    strings.TrimRight(content, "\n"),
	})
}

func (r *Renderer) renderEvent(event *schema.Event) error {
	entry, ok := r.Catalog.Lookup(docdex.StageRuntime, event.Name)
	if !ok {
		return docdex.Errorf(docdex.EINTERNAL, "event %q missing from catalog", event.Name)
	}
	relPath := entry.RelPath
	rewrite := func(s string) string { return r.rewriteLinks(s, docdex.StageRuntime, relPath) }

	blocks := []string{"# " + event.Name, rewrite(event.Description)}

	fields := sortByOrder(event.Data, func(p *schema.Parameter) int { return p.Order })
	var memberChunks []*docdex.Chunk
	if len(fields) > 0 {
		blocks = append(blocks, "## Fields")
		for _, f := range fields {
			section := strings.TrimRight(page(
				"### "+f.Name,
				fieldLine(f.Name, f.Type, f.Optional),
				rewrite(f.Description),
			), "\n")
			blocks = append(blocks, section)
			memberChunks = append(memberChunks, &docdex.Chunk{
				Stage:   docdex.StageRuntime,
				Kind:    "event_field",
				Name:    event.Name,
				Member:  f.Name,
				RelPath: relPath,
				Anchor:  f.Name,
				Text:    section,
			})
		}
	}

	if err := r.Pages.WritePage(relPath, page(blocks...)); err != nil {
		return err
	}

	root := &docdex.Chunk{
		Stage:   docdex.StageRuntime,
		Kind:    "event",
		Name:    event.Name,
		RelPath: relPath,
		Text:    strings.TrimRight(page("# "+event.Name, rewrite(event.Description)), "\n"),
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

// flatDefineValue is one define value flattened out of a possibly nested
// group, with its dotted member path relative to the group root.
type flatDefineValue struct {
	Member      string
	Description string
}

// flattenDefine lists a group's values depth-first: own values in display
// order, then each subkey's values prefixed with the subkey name.
func flattenDefine(d *schema.Define, prefix string) []flatDefineValue {
	var out []flatDefineValue
	for _, v := range sortByOrder(d.Values, func(v *schema.DefineValue) int { return v.Order }) {
		out = append(out, flatDefineValue{Member: prefix + v.Name, Description: v.Description})
	}
	for _, sub := range sortByOrder(d.Subkeys, func(s *schema.Define) int { return s.Order }) {
		out = append(out, flattenDefine(sub, prefix+sub.Name+".")...)
	}
	return out
}

func (r *Renderer) renderDefine(define *schema.Define, stage string) error {
	groupName := "defines." + define.Name
	entry, ok := r.Catalog.Lookup(stage, groupName)
	if !ok {
		return docdex.Errorf(docdex.EINTERNAL, "define group %q missing from catalog", groupName)
	}
	relPath := entry.RelPath
	rewrite := func(s string) string { return r.rewriteLinks(s, stage, relPath) }

	blocks := []string{"# " + groupName, rewrite(define.Description)}

	values := flattenDefine(define, "")
	var memberChunks []*docdex.Chunk
	for _, v := range values {
		section := strings.TrimRight(page("## "+v.Member, rewrite(v.Description)), "\n")
		blocks = append(blocks, section)
		memberChunks = append(memberChunks, &docdex.Chunk{
			Stage:   stage,
			Kind:    "define_value",
			Name:    groupName,
			Member:  v.Member,
			RelPath: relPath,
			Anchor:  v.Member,
			Text:    section,
		})
	}

	if err := r.Pages.WritePage(relPath, page(blocks...)); err != nil {
		return err
	}

	root := &docdex.Chunk{
		Stage:   stage,
		Kind:    "define",
		Name:    groupName,
		RelPath: relPath,
		Text:    strings.TrimRight(page("# "+groupName, rewrite(define.Description)), "\n"),
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

func (r *Renderer) renderGlobalFunction(fn *schema.Method) error {
	entry, ok := r.Catalog.Lookup(docdex.StageRuntime, fn.Name)
	if !ok {
		return docdex.Errorf(docdex.EINTERNAL, "global function %q missing from catalog", fn.Name)
	}
	rewrite := func(s string) string { return r.rewriteLinks(s, docdex.StageRuntime, entry.RelPath) }

	blocks := []string{"# " + fn.Name, "`" + signature(fn) + "`", rewrite(fn.Description)}
	if params := parameterList(fn.Parameters, rewrite); params != "" {
		blocks = append(blocks, "**Parameters**", params)
	}
	if returns := returnList(fn.ReturnValues, rewrite); returns != "" {
		blocks = append(blocks, "**Returns**", returns)
	}

	content := page(blocks...)
	if err := r.Pages.WritePage(entry.RelPath, content); err != nil {
		return err
	}
	return r.emit(&docdex.Chunk{
		Stage:         docdex.StageRuntime,
		Kind:          "global_function",
		Name:          fn.Name,
		RelPath:       entry.RelPath,
		Call:          signature(fn),
		TakesTable:    fn.TakesTable,
		TableOptional: fn.TableOptional,
		Text:          strings.TrimRight(content, "\n"),
	})
}

func (r *Renderer) renderGlobalObject(obj *schema.GlobalObject) error {
	entry, ok := r.Catalog.Lookup(docdex.StageRuntime, obj.Name)
	if !ok {
		return docdex.Errorf(docdex.EINTERNAL, "global object %q missing from catalog", obj.Name)
	}
	rewrite := func(s string) string { return r.rewriteLinks(s, docdex.StageRuntime, entry.RelPath) }

	blocks := []string{"# " + obj.Name}
	if obj.Type != nil {
		blocks = append(blocks, "**Type:** "+r.symbolRef(docdex.StageRuntime, obj.Type.Render(), entry.RelPath))
	}
	blocks = append(blocks, rewrite(obj.Description))

	content := page(blocks...)
	if err := r.Pages.WritePage(entry.RelPath, content); err != nil {
		return err
	}
	return r.emit(&docdex.Chunk{
		Stage:   docdex.StageRuntime,
		Kind:    "global_object",
		Name:    obj.Name,
		RelPath: entry.RelPath,
		Text:    strings.TrimRight(content, "\n"),
	})
}
