// Package render walks the vendor documents and produces the output tree:
// one Markdown page per symbol, one or more chunk records per symbol, index
// pages, counters, and the symbols lookup table. The catalog is built first
// and held immutable; every link in every page and chunk routes through it.
package render

import (
	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/schema"
)

// MarkdownRoot is the directory under the version root that holds the page
// tree. All catalog relPaths are version-root-relative and start with it.
const MarkdownRoot = "markdown"

// Per-stage overview page names. Fixed sets: symbols never shadow them.
var (
	runtimeOverviews   = []string{"classes", "concepts", "events", "defines"}
	prototypeOverviews = []string{"prototypes", "types", "defines"}
)

// BuildCatalog registers every documented symbol, overview page, and
// auxiliary page with its eventual output location. It fails when neither
// stage document is supplied; absent optional collections contribute no
// entries.
func BuildCatalog(rt *schema.RuntimeDoc, pt *schema.PrototypeDoc, auxNames []string) (*docdex.Catalog, error) {
	if rt == nil && pt == nil {
		return nil, docdex.Errorf(docdex.EINVALID, "at least one stage document is required to build a catalog")
	}

	c := docdex.NewCatalog()

	for _, name := range auxNames {
		c.AddAux(name, docdex.Entry{RelPath: auxPagePath(name)})
	}

	if rt != nil {
		for _, name := range runtimeOverviews {
			if err := c.Add(docdex.StageRuntime, name, docdex.Entry{RelPath: overviewPath(docdex.StageRuntime, name)}); err != nil {
				return nil, err
			}
		}
		for _, class := range rt.Classes {
			if err := c.Add(docdex.StageRuntime, class.Name, docdex.Entry{RelPath: symbolPath(docdex.StageRuntime, "classes", class.Name)}); err != nil {
				return nil, err
			}
		}
		for _, concept := range rt.Concepts {
			if err := c.Add(docdex.StageRuntime, concept.Name, docdex.Entry{RelPath: symbolPath(docdex.StageRuntime, "concepts", concept.Name)}); err != nil {
				return nil, err
			}
		}
		for _, event := range rt.Events {
			if err := c.Add(docdex.StageRuntime, event.Name, docdex.Entry{RelPath: symbolPath(docdex.StageRuntime, "events", event.Name)}); err != nil {
				return nil, err
			}
		}
		for _, define := range rt.Defines {
			if err := c.Add(docdex.StageRuntime, "defines."+define.Name, docdex.Entry{RelPath: symbolPath(docdex.StageRuntime, "defines", define.Name)}); err != nil {
				return nil, err
			}
		}
		for _, fn := range rt.GlobalFunctions {
			if err := c.Add(docdex.StageRuntime, fn.Name, docdex.Entry{RelPath: symbolPath(docdex.StageRuntime, "globals", fn.Name)}); err != nil {
				return nil, err
			}
		}
		for _, obj := range rt.GlobalObjects {
			if err := c.Add(docdex.StageRuntime, obj.Name, docdex.Entry{RelPath: symbolPath(docdex.StageRuntime, "globals", obj.Name)}); err != nil {
				return nil, err
			}
		}
	}

	if pt != nil {
		for _, name := range prototypeOverviews {
			if err := c.Add(docdex.StagePrototype, name, docdex.Entry{RelPath: overviewPath(docdex.StagePrototype, name)}); err != nil {
				return nil, err
			}
		}
		for _, proto := range pt.Prototypes {
			if err := c.Add(docdex.StagePrototype, proto.Name, docdex.Entry{RelPath: symbolPath(docdex.StagePrototype, "prototypes", proto.Name)}); err != nil {
				return nil, err
			}
		}
		for _, typ := range pt.Types {
			if err := c.Add(docdex.StagePrototype, typ.Name, docdex.Entry{RelPath: symbolPath(docdex.StagePrototype, "types", typ.Name)}); err != nil {
				return nil, err
			}
		}
		for _, define := range pt.Defines {
			if err := c.Add(docdex.StagePrototype, "defines."+define.Name, docdex.Entry{RelPath: symbolPath(docdex.StagePrototype, "defines", define.Name)}); err != nil {
				return nil, err
			}
		}
	}

	return c, nil
}

func overviewPath(stage, name string) string {
	return MarkdownRoot + "/" + stage + "/" + name + ".md"
}

func symbolPath(stage, kindDir, name string) string {
	return MarkdownRoot + "/" + stage + "/" + kindDir + "/" + name + ".md"
}

func auxPagePath(name string) string {
	return MarkdownRoot + "/" + docdex.StageAuxiliary + "/" + name + ".md"
}
