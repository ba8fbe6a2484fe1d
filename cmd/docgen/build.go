package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/fs"
	"github.com/fwojciec/docdex/goquery"
	"github.com/fwojciec/docdex/htmltomarkdown"
	"github.com/fwojciec/docdex/render"
	"github.com/fwojciec/docdex/schema"
	docdexslog "github.com/fwojciec/docdex/slog"
	"github.com/google/uuid"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	cfg, err := c.resolve()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	begin := time.Now()

	rt, err := schema.LoadRuntime(cfg.Runtime)
	if err != nil {
		return err
	}
	pt, err := schema.LoadPrototype(cfg.Prototype)
	if err != nil {
		return err
	}

	auxNames := make([]string, 0, len(cfg.Aux))
	for _, path := range cfg.Aux {
		auxNames = append(auxNames, pageStem(path))
	}

	catalog, err := render.BuildCatalog(rt, pt, auxNames)
	if err != nil {
		return err
	}
	deps.Logger.Info("catalog built",
		"symbols", catalog.Len(),
		"aux_pages", len(auxNames),
	)

	store := fs.NewVersionStore(cfg.Out, cfg.Version)
	if err := store.Prepare(c.Force); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	if err := c.generate(deps, cfg, store, catalog, rt, pt); err != nil {
		// A failed build leaves no partial version directory behind.
		if abortErr := store.Abort(); abortErr != nil {
			deps.Logger.Error("abort failed", "error", abortErr)
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	if err := store.Commit(); err != nil {
		return err
	}
	deps.Logger.Info("build committed",
		"version", cfg.Version,
		"out", cfg.Out,
		"duration", time.Since(begin),
	)
	fmt.Fprintf(deps.Stdout, "Generated %s into %s\n", cfg.Version, filepath.Join(cfg.Out, cfg.Version))
	return nil
}

// generate runs the rendering pipeline against a prepared store.
func (c *BuildCmd) generate(deps *Dependencies, cfg *Config, store *fs.VersionStore, catalog *docdex.Catalog, rt *schema.RuntimeDoc, pt *schema.PrototypeDoc) error {
	chunks, err := store.CreateChunks()
	if err != nil {
		return err
	}

	renderer := render.NewRenderer(catalog, cfg.Version,
		docdexslog.NewPageWriter(store, deps.Logger),
		docdexslog.NewChunkWriter(chunks, deps.Logger),
	)

	if rt != nil {
		if err := renderer.RenderRuntime(rt); err != nil {
			return err
		}
	}
	if pt != nil {
		if err := renderer.RenderPrototype(pt); err != nil {
			return err
		}
	}

	auxPages, err := c.convertAuxPages(cfg, catalog)
	if err != nil {
		return err
	}
	if err := renderer.RenderAuxiliary(auxPages); err != nil {
		return err
	}

	if err := renderer.Chunks.Close(); err != nil {
		return err
	}

	if err := store.WriteManifest(&docdex.Manifest{
		Version:     cfg.Version,
		GeneratedAt: time.Now().UTC(),
		BuildID:     uuid.NewString(),
		Outputs: docdex.Outputs{
			MarkdownRoot: render.MarkdownRoot,
			ChunksJSONL:  fs.ChunksFile,
		},
		Counts:         renderer.Counts(),
		ChunksChecksum: chunks.Checksum(),
	}); err != nil {
		return err
	}
	return store.WriteSymbols(renderer.Symbols())
}

// convertAuxPages preprocesses and converts every auxiliary HTML page.
func (c *BuildCmd) convertAuxPages(cfg *Config, catalog *docdex.Catalog) ([]render.AuxPage, error) {
	if len(cfg.Aux) == 0 {
		return nil, nil
	}

	conv := htmltomarkdown.NewConverter()
	pages := make([]render.AuxPage, 0, len(cfg.Aux))
	for _, path := range cfg.Aux {
		name := pageStem(path)
		entry, ok := catalog.LookupAux(name)
		if !ok {
			return nil, docdex.Errorf(docdex.EINTERNAL, "auxiliary page %q missing from catalog", name)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, docdex.Errorf(docdex.ENOTFOUND, "auxiliary page %s: %v", path, err)
		}

		prepared, err := goquery.PrepareAuxPage(name, string(data), catalog, entry.RelPath)
		if err != nil {
			return nil, err
		}
		markdown, err := conv.Convert(prepared.HTML)
		if err != nil {
			return nil, err
		}
		pages = append(pages, render.AuxPage{
			Name:     prepared.Name,
			Title:    prepared.Title,
			Markdown: markdown,
		})
	}
	return pages, nil
}

// pageStem returns the file name without its extension.
func pageStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
