package slog_test

import (
	"bytes"
	"errors"
	stdslog "log/slog"
	"testing"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/mock"
	docdexslog "github.com/fwojciec/docdex/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger(buf *bytes.Buffer) *stdslog.Logger {
	return stdslog.New(stdslog.NewTextHandler(buf, &stdslog.HandlerOptions{Level: stdslog.LevelDebug}))
}

func TestChunkWriter(t *testing.T) {
	t.Parallel()

	t.Run("delegates and logs writes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		next := &mock.ChunkWriter{}
		w := docdexslog.NewChunkWriter(next, newLogger(&buf))

		chunk := &docdex.Chunk{ID: "2.0.71/runtime/class/Widget", Kind: "class", Text: "# Widget"}
		require.NoError(t, w.WriteChunk(chunk))
		require.NoError(t, w.Close())

		require.Len(t, next.Chunks, 1)
		assert.True(t, next.Closed)
		assert.Contains(t, buf.String(), "chunk written")
		assert.Contains(t, buf.String(), "2.0.71/runtime/class/Widget")
		assert.Contains(t, buf.String(), "chunk corpus closed")
		assert.Contains(t, buf.String(), "chunks=1")
	})

	t.Run("logs and propagates write errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		next := &mock.ChunkWriter{
			WriteFn: func(*docdex.Chunk) error { return errors.New("disk full") },
		}
		w := docdexslog.NewChunkWriter(next, newLogger(&buf))

		err := w.WriteChunk(&docdex.Chunk{ID: "x"})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "chunk write failed")
		assert.Contains(t, buf.String(), "disk full")
	})
}

func TestPageWriter(t *testing.T) {
	t.Parallel()

	t.Run("delegates and logs pages", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		next := &mock.PageWriter{}
		w := docdexslog.NewPageWriter(next, newLogger(&buf))

		require.NoError(t, w.WritePage("markdown/runtime/classes/Widget.md", "# Widget\n"))

		assert.Equal(t, "# Widget\n", next.Pages["markdown/runtime/classes/Widget.md"])
		assert.Contains(t, buf.String(), "page written")
	})

	t.Run("logs and propagates page errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		next := &mock.PageWriter{
			WriteFn: func(string, string) error { return errors.New("read-only filesystem") },
		}
		w := docdexslog.NewPageWriter(next, newLogger(&buf))

		err := w.WritePage("index.md", "# Index\n")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "page write failed")
	})
}
