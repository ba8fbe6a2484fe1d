package retrieve_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/fs"
	"github.com/fwojciec/docdex/retrieve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const widgetPage = `# Widget

A window widget that draws itself on the screen.

## Methods

### destroy

destroy()

Removes the widget from the screen.

### teleport

teleport{position: Vector, silent?: boolean}

Moves the widget instantly to a new position.
`

// writeFixture builds a committed version with a small corpus, a symbols
// table, and one page, and returns the docs root.
func writeFixture(t *testing.T, version string) string {
	t.Helper()

	baseDir := t.TempDir()
	store := fs.NewVersionStore(baseDir, version)
	require.NoError(t, store.Prepare(false))

	require.NoError(t, store.WritePage("markdown/runtime/classes/Widget.md", widgetPage))

	w, err := store.CreateChunks()
	require.NoError(t, err)
	chunks := []*docdex.Chunk{
		{
			ID: version + "/runtime/class/Widget", Version: version,
			Stage: "runtime", Kind: "class", Name: "Widget",
			RelPath: "markdown/runtime/classes/Widget.md", Anchor: "Widget",
			Text: "# Widget\n\nA window widget that draws itself on the screen.",
		},
		{
			ID: version + "/runtime/class_method/Widget#destroy", Version: version,
			Stage: "runtime", Kind: "class_method", Name: "Widget", Member: "destroy",
			RelPath: "markdown/runtime/classes/Widget.md", Anchor: "destroy",
			Call:    "destroy()",
			Text:    "### destroy\n\ndestroy()\n\nRemoves the widget from the screen.",
		},
		{
			ID: version + "/runtime/class_method/Widget#teleport", Version: version,
			Stage: "runtime", Kind: "class_method", Name: "Widget", Member: "teleport",
			RelPath: "markdown/runtime/classes/Widget.md", Anchor: "teleport",
			Call:    "teleport{position: Vector, silent?: boolean}", TakesTable: true, TableOptional: true,
			Text: "### teleport\n\nMoves the widget instantly to a new position.",
		},
		{
			ID: version + "/runtime/concept/Vector", Version: version,
			Stage: "runtime", Kind: "concept", Name: "Vector",
			Text: "# Vector\n\nA two component vector. " + strings.Repeat("Padding sentence about coordinates. ", 20),
		},
	}
	for _, c := range chunks {
		require.NoError(t, w.WriteChunk(c))
	}
	require.NoError(t, w.Close())

	require.NoError(t, store.WriteSymbols(map[string]docdex.Symbol{
		"runtime:class:Widget": {
			ID: version + "/runtime/class/Widget", Stage: "runtime", Kind: "class", Name: "Widget",
			RelPath: "markdown/runtime/classes/Widget.md", Anchor: "Widget",
		},
		"runtime:class_method:Widget.teleport": {
			ID: version + "/runtime/class_method/Widget#teleport", Stage: "runtime", Kind: "class_method",
			Name: "Widget", Member: "teleport",
			RelPath: "markdown/runtime/classes/Widget.md", Anchor: "teleport",
		},
	}))
	require.NoError(t, store.WriteManifest(&docdex.Manifest{Version: version}))
	require.NoError(t, store.Commit())
	return baseDir
}

func TestVersions(t *testing.T) {
	t.Parallel()

	t.Run("orders numerically not lexically", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		for _, v := range []string{"2.0.71", "2.0.9", "1.1.110"} {
			require.NoError(t, os.MkdirAll(filepath.Join(root, v), 0755))
		}
		require.NoError(t, os.MkdirAll(filepath.Join(root, "not-a-version"), 0755))

		versions, err := retrieve.Versions(root)

		require.NoError(t, err)
		assert.Equal(t, []string{"1.1.110", "2.0.9", "2.0.71"}, versions)
	})

	t.Run("empty docs root is an error", func(t *testing.T) {
		t.Parallel()

		_, err := retrieve.Versions(t.TempDir())

		assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))
	})
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	t.Run("defaults to latest version", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		for _, v := range []string{"2.0.9", "2.0.71"} {
			require.NoError(t, os.MkdirAll(filepath.Join(root, v), 0755))
		}

		engine, err := retrieve.NewEngine(root, "")

		require.NoError(t, err)
		assert.Equal(t, "2.0.71", engine.Version)
	})

	t.Run("explicit version must exist", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "2.0.71"), 0755))

		_, err := retrieve.NewEngine(root, "9.9.9")

		assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))
	})
}

func TestFindRoot(t *testing.T) {
	t.Parallel()

	t.Run("finds a nested docs root", func(t *testing.T) {
		t.Parallel()

		root := writeFixture(t, "2.0.71")
		start := filepath.Dir(root)

		found, err := retrieve.FindRoot(start, retrieve.DefaultRootDepth)

		require.NoError(t, err)
		assert.Equal(t, root, found)
	})

	t.Run("version directory without a corpus does not qualify", func(t *testing.T) {
		t.Parallel()

		start := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(start, "docs", "2.0.71"), 0755))

		_, err := retrieve.FindRoot(start, retrieve.DefaultRootDepth)

		assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))
	})

	t.Run("respects the depth bound", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		deep := filepath.Join(base, "a", "b", "2.0.71")
		require.NoError(t, os.MkdirAll(deep, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(deep, fs.ChunksFile), []byte("{}\n"), 0644))

		_, err := retrieve.FindRoot(base, 1)
		assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))

		found, err := retrieve.FindRoot(base, 2)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "a", "b"), found)
	})
}

func TestSearch(t *testing.T) {
	t.Parallel()

	root := writeFixture(t, "2.0.71")
	engine, err := retrieve.NewEngine(root, "2.0.71")
	require.NoError(t, err)

	t.Run("name and member matches outrank text-only matches", func(t *testing.T) {
		t.Parallel()

		hits, err := engine.Search(retrieve.Query{Text: "widget"})

		require.NoError(t, err)
		require.NotEmpty(t, hits)
		assert.Equal(t, "2.0.71/runtime/class/Widget", hits[0].ID)
		for i := 1; i < len(hits); i++ {
			assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
		}
	})

	t.Run("ties break on id ascending", func(t *testing.T) {
		t.Parallel()

		hits, err := engine.Search(retrieve.Query{Text: "widget", Kinds: []string{"class_method"}})

		require.NoError(t, err)
		require.Len(t, hits, 2)
		assert.Equal(t, "2.0.71/runtime/class_method/Widget#destroy", hits[0].ID)
		assert.Equal(t, "2.0.71/runtime/class_method/Widget#teleport", hits[1].ID)
	})

	t.Run("limit bounds the result set", func(t *testing.T) {
		t.Parallel()

		hits, err := engine.Search(retrieve.Query{Text: "widget", Limit: 1})

		require.NoError(t, err)
		assert.Len(t, hits, 1)
	})

	t.Run("filters are case-insensitive", func(t *testing.T) {
		t.Parallel()

		hits, err := engine.Search(retrieve.Query{
			Text:    "widget",
			Stages:  []string{"Runtime"},
			Kinds:   []string{"CLASS"},
			Names:   []string{"widget"},
			Members: nil,
		})

		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, "class", hits[0].Kind)
	})

	t.Run("non-matching chunks are discarded", func(t *testing.T) {
		t.Parallel()

		hits, err := engine.Search(retrieve.Query{Text: "zzznope"})

		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("snippet windows around the first occurrence", func(t *testing.T) {
		t.Parallel()

		hits, err := engine.Search(retrieve.Query{Text: "coordinates", Kinds: []string{"concept"}})

		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Contains(t, hits[0].Snippet, "coordinates")
		assert.True(t, strings.HasSuffix(hits[0].Snippet, "…"), "long text should be truncated: %q", hits[0].Snippet)
		assert.NotContains(t, hits[0].Snippet, "\n")
	})

	t.Run("empty query is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := engine.Search(retrieve.Query{Text: "  "})

		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})

	t.Run("malformed corpus lines are skipped", func(t *testing.T) {
		t.Parallel()

		dirtyRoot := writeFixture(t, "1.0.0")
		corpus := filepath.Join(dirtyRoot, "1.0.0", fs.ChunksFile)
		data, err := os.ReadFile(corpus)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(corpus, append([]byte("not json\n"), data...), 0644))

		dirty, err := retrieve.NewEngine(dirtyRoot, "1.0.0")
		require.NoError(t, err)

		hits, err := dirty.Search(retrieve.Query{Text: "widget"})

		require.NoError(t, err)
		assert.NotEmpty(t, hits)
	})
}

func TestGet(t *testing.T) {
	t.Parallel()

	root := writeFixture(t, "2.0.71")
	engine, err := retrieve.NewEngine(root, "")
	require.NoError(t, err)

	t.Run("returns the chunk by id", func(t *testing.T) {
		t.Parallel()

		chunk, err := engine.Get("2.0.71/runtime/class_method/Widget#teleport")

		require.NoError(t, err)
		assert.Equal(t, "teleport", chunk.Member)
		assert.True(t, chunk.TakesTable)
		assert.True(t, chunk.TableOptional)
	})

	t.Run("unknown id is ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		_, err := engine.Get("2.0.71/runtime/class/Nope")

		assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))
		assert.Contains(t, docdex.ErrorMessage(err), "Nope")
	})
}

func TestOpen(t *testing.T) {
	t.Parallel()

	root := writeFixture(t, "2.0.71")
	engine, err := retrieve.NewEngine(root, "")
	require.NoError(t, err)

	t.Run("page path returns the whole page", func(t *testing.T) {
		t.Parallel()

		res, err := engine.Open("markdown/runtime/classes/Widget.md")

		require.NoError(t, err)
		assert.Equal(t, widgetPage, res.Text)
	})

	t.Run("page path with anchor returns one section", func(t *testing.T) {
		t.Parallel()

		res, err := engine.Open("markdown/runtime/classes/Widget.md#teleport")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(res.Text, "### teleport"))
		assert.NotContains(t, res.Text, "destroy")
	})

	t.Run("path works without the markdown prefix", func(t *testing.T) {
		t.Parallel()

		res, err := engine.Open("runtime/classes/Widget.md")

		require.NoError(t, err)
		assert.Equal(t, widgetPage, res.Text)
	})

	t.Run("symbols key resolves through the table", func(t *testing.T) {
		t.Parallel()

		res, err := engine.Open("runtime:class_method:Widget.teleport")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(res.Text, "### teleport"))
		assert.Equal(t, "teleport", res.Anchor)
	})

	t.Run("chunk id extracts its section", func(t *testing.T) {
		t.Parallel()

		res, err := engine.Open("2.0.71/runtime/class_method/Widget#destroy")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(res.Text, "### destroy"))
		require.NotNil(t, res.Chunk)
		assert.Equal(t, "destroy()", res.Chunk.Call)
	})

	t.Run("chunk without a page falls back to chunk text", func(t *testing.T) {
		t.Parallel()

		res, err := engine.Open("2.0.71/runtime/concept/Vector")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(res.Text, "# Vector"))
		assert.Empty(t, res.RelPath)
	})

	t.Run("missing anchor is ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		_, err := engine.Open("markdown/runtime/classes/Widget.md#nope")

		assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))
	})

	t.Run("missing page is ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		_, err := engine.Open("markdown/runtime/classes/Ghost.md")

		assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))
	})
}

func TestCall(t *testing.T) {
	t.Parallel()

	root := writeFixture(t, "2.0.71")
	engine, err := retrieve.NewEngine(root, "")
	require.NoError(t, err)

	t.Run("by chunk id", func(t *testing.T) {
		t.Parallel()

		chunk, err := engine.Call("2.0.71/runtime/class_method/Widget#teleport")

		require.NoError(t, err)
		assert.Equal(t, "teleport{position: Vector, silent?: boolean}", chunk.Call)
	})

	t.Run("by symbols key", func(t *testing.T) {
		t.Parallel()

		chunk, err := engine.Call("runtime:class_method:Widget.teleport")

		require.NoError(t, err)
		assert.True(t, chunk.TakesTable)
	})

	t.Run("unknown target is ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		_, err := engine.Call("runtime:class_method:Widget.nope")

		assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))
	})
}
