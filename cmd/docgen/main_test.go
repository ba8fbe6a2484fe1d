package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docdex"
	docdexfs "github.com/fwojciec/docdex/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const runtimeJSON = `{
  "application": "factorio",
  "stage": "runtime",
  "application_version": "2.0.71",
  "classes": [
    {
      "name": "Widget",
      "order": 1,
      "description": "A window widget.",
      "methods": [
        {
          "name": "teleport",
          "order": 1,
          "description": "Moves the widget instantly.",
          "takes_table": true,
          "table_is_optional": false,
          "parameters": [
            {"name": "position", "order": 1, "description": "Target position.", "type": "Vector", "optional": false}
          ],
          "return_values": []
        }
      ],
      "attributes": [
        {"name": "valid", "order": 1, "description": "Whether the widget is live.", "type": "boolean", "read": true, "write": false}
      ]
    }
  ],
  "events": [],
  "concepts": [
    {"name": "Vector", "order": 1, "description": "A two component vector referenced by [Widget](runtime:Widget)."}
  ],
  "defines": [
    {
      "name": "direction",
      "order": 1,
      "description": "Cardinal directions.",
      "values": [
        {"name": "north", "order": 1, "description": "Up."},
        {"name": "south", "order": 2, "description": "Down."}
      ],
      "subkeys": []
    }
  ],
  "global_functions": [],
  "global_objects": []
}`

const prototypeJSON = `{
  "application": "factorio",
  "stage": "prototype",
  "application_version": "2.0.71",
  "prototypes": [
    {
      "name": "WidgetPrototype",
      "order": 1,
      "description": "Declares a widget.",
      "typename": "widget",
      "properties": [
        {"name": "width", "order": 1, "description": "Pixel width.", "type": "double", "optional": true, "default": "32"}
      ]
    }
  ],
  "types": [],
  "defines": []
}`

const auxHTML = `<html><head><title>Migration Guide</title></head>
<body><h1>Migration Guide</h1>
<p>See <a href="../classes/Widget.html">Widget</a> before upgrading.</p>
</body></html>`

// writeInputs lays out the vendor documents and returns their paths.
func writeInputs(t *testing.T) (runtime, prototype, aux string) {
	t.Helper()

	dir := t.TempDir()
	runtime = filepath.Join(dir, "runtime-api.json")
	prototype = filepath.Join(dir, "prototype-api.json")
	aux = filepath.Join(dir, "migration.html")
	require.NoError(t, os.WriteFile(runtime, []byte(runtimeJSON), 0644))
	require.NoError(t, os.WriteFile(prototype, []byte(prototypeJSON), 0644))
	require.NoError(t, os.WriteFile(aux, []byte(auxHTML), 0644))
	return runtime, prototype, aux
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := NewMain().Run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestBuild(t *testing.T) {
	t.Parallel()

	t.Run("generates a complete version", func(t *testing.T) {
		t.Parallel()

		runtime, prototype, aux := writeInputs(t)
		out := t.TempDir()

		stdout, _, err := run(t,
			"build",
			"--runtime", runtime,
			"--prototype", prototype,
			"--aux", aux,
			"--out", out,
			"--doc-version", "2.0.71",
		)
		require.NoError(t, err)
		assert.Contains(t, stdout, "Generated 2.0.71")

		versionDir := filepath.Join(out, "2.0.71")
		manifest, err := docdexfs.LoadManifest(versionDir)
		require.NoError(t, err)
		assert.Equal(t, "2.0.71", manifest.Version)
		assert.Equal(t, 1, manifest.Counts.Runtime.Classes)
		assert.Equal(t, 1, manifest.Counts.Prototype.Prototypes)
		assert.Equal(t, 1, manifest.Counts.Auxiliary.Pages)
		assert.NotEmpty(t, manifest.BuildID)
		assert.NotEmpty(t, manifest.ChunksChecksum)
		assert.False(t, manifest.GeneratedAt.IsZero())

		symbols, err := docdexfs.LoadSymbols(versionDir)
		require.NoError(t, err)
		assert.Contains(t, symbols, "runtime:class:Widget")
		assert.Contains(t, symbols, "runtime:class_method:Widget.teleport")
		assert.Contains(t, symbols, "prototype:prototype:WidgetPrototype")

		page, err := os.ReadFile(filepath.Join(versionDir, "markdown", "auxiliary", "migration.md"))
		require.NoError(t, err)
		assert.Contains(t, string(page), "(../runtime/classes/Widget.md)")
	})

	t.Run("symbolic links in descriptions are rewritten", func(t *testing.T) {
		t.Parallel()

		runtime, _, _ := writeInputs(t)
		out := t.TempDir()

		_, _, err := run(t, "build", "--runtime", runtime, "--out", out, "--doc-version", "2.0.71")
		require.NoError(t, err)

		page, err := os.ReadFile(filepath.Join(out, "2.0.71", "markdown", "runtime", "concepts", "Vector.md"))
		require.NoError(t, err)
		assert.Contains(t, string(page), "[Widget](../classes/Widget.md)")
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		t.Parallel()

		runtime, _, _ := writeInputs(t)
		out := t.TempDir()

		_, _, err := run(t, "build", "--runtime", runtime, "--out", out, "--doc-version", "2.0.71")
		require.NoError(t, err)

		_, stderr, err := run(t, "build", "--runtime", runtime, "--out", out, "--doc-version", "2.0.71")
		assert.Equal(t, docdex.ECONFLICT, docdex.ErrorCode(err))
		assert.Contains(t, stderr, "--force")

		_, _, err = run(t, "build", "--runtime", runtime, "--out", out, "--doc-version", "2.0.71", "--force")
		assert.NoError(t, err)
	})

	t.Run("reads settings from a config file", func(t *testing.T) {
		t.Parallel()

		runtime, prototype, _ := writeInputs(t)
		out := t.TempDir()
		cfgPath := filepath.Join(t.TempDir(), "docgen.yaml")
		cfg := "version: 2.0.71\nout: " + out + "\nruntime: " + runtime + "\nprototype: " + prototype + "\n"
		require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0644))

		_, _, err := run(t, "build", "--config", cfgPath)

		require.NoError(t, err)
		_, err = os.Stat(filepath.Join(out, "2.0.71", docdexfs.ManifestFile))
		assert.NoError(t, err)
	})

	t.Run("requires a version label", func(t *testing.T) {
		t.Parallel()

		runtime, _, _ := writeInputs(t)

		_, _, err := run(t, "build", "--runtime", runtime, "--out", t.TempDir())

		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})

	t.Run("requires at least one stage document", func(t *testing.T) {
		t.Parallel()

		_, _, err := run(t, "build", "--out", t.TempDir(), "--doc-version", "2.0.71")

		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})

	t.Run("failed build leaves no version directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		badRuntime := filepath.Join(dir, "runtime-api.json")
		require.NoError(t, os.WriteFile(badRuntime, []byte("not json"), 0644))
		out := t.TempDir()

		_, _, err := run(t, "build", "--runtime", badRuntime, "--out", out, "--doc-version", "2.0.71")

		require.Error(t, err)
		_, statErr := os.Stat(filepath.Join(out, "2.0.71"))
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestVerify(t *testing.T) {
	t.Parallel()

	build := func(t *testing.T) string {
		t.Helper()
		runtime, prototype, aux := writeInputs(t)
		out := t.TempDir()
		_, _, err := run(t,
			"build",
			"--runtime", runtime,
			"--prototype", prototype,
			"--aux", aux,
			"--out", out,
			"--doc-version", "2.0.71",
		)
		require.NoError(t, err)
		return out
	}

	t.Run("fresh build passes", func(t *testing.T) {
		t.Parallel()

		out := build(t)

		stdout, _, err := run(t, "verify", out)

		require.NoError(t, err)
		assert.Contains(t, stdout, "Version 2.0.71 OK")
	})

	t.Run("detects a deleted page", func(t *testing.T) {
		t.Parallel()

		out := build(t)
		require.NoError(t, os.Remove(filepath.Join(out, "2.0.71", "markdown", "runtime", "classes", "Widget.md")))

		_, stderr, err := run(t, "verify", out)

		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
		assert.Contains(t, stderr, "missing page")
	})

	t.Run("detects a tampered corpus", func(t *testing.T) {
		t.Parallel()

		out := build(t)
		corpus := filepath.Join(out, "2.0.71", docdexfs.ChunksFile)
		data, err := os.ReadFile(corpus)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(corpus, append(data, []byte("{}\n")...), 0644))

		_, stderr, err := run(t, "verify", out)

		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
		assert.Contains(t, stderr, "checksum")
	})

	t.Run("missing root is an error", func(t *testing.T) {
		t.Parallel()

		_, _, err := run(t, "verify", t.TempDir())

		assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))
	})
}
