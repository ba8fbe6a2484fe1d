// Package slog provides logging decorators for the write-side interfaces.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/docdex"
)

// Ensure ChunkWriter implements docdex.ChunkWriter.
var _ docdex.ChunkWriter = (*ChunkWriter)(nil)

// ChunkWriter wraps a ChunkWriter with debug logging per record and a summary
// on Close.
type ChunkWriter struct {
	next   docdex.ChunkWriter
	logger *slog.Logger
	begin  time.Time
	count  int
}

// NewChunkWriter creates a new logging ChunkWriter.
func NewChunkWriter(next docdex.ChunkWriter, logger *slog.Logger) *ChunkWriter {
	return &ChunkWriter{next: next, logger: logger, begin: time.Now()}
}

// WriteChunk delegates to the wrapped writer and logs the record.
func (w *ChunkWriter) WriteChunk(chunk *docdex.Chunk) error {
	err := w.next.WriteChunk(chunk)
	if err != nil {
		w.logger.Error("chunk write failed",
			"id", chunk.ID,
			"error", err,
		)
		return err
	}
	w.count++
	w.logger.Debug("chunk written",
		"id", chunk.ID,
		"kind", chunk.Kind,
		"bytes", len(chunk.Text),
	)
	return nil
}

// Close delegates to the wrapped writer and logs a corpus summary.
func (w *ChunkWriter) Close() error {
	err := w.next.Close()
	w.logger.Info("chunk corpus closed",
		"chunks", w.count,
		"duration", time.Since(w.begin),
		"error", err,
	)
	return err
}

// Ensure PageWriter implements docdex.PageWriter.
var _ docdex.PageWriter = (*PageWriter)(nil)

// PageWriter wraps a PageWriter with debug logging per page.
type PageWriter struct {
	next   docdex.PageWriter
	logger *slog.Logger
}

// NewPageWriter creates a new logging PageWriter.
func NewPageWriter(next docdex.PageWriter, logger *slog.Logger) *PageWriter {
	return &PageWriter{next: next, logger: logger}
}

// WritePage delegates to the wrapped writer and logs the page.
func (w *PageWriter) WritePage(relPath string, content string) error {
	begin := time.Now()
	err := w.next.WritePage(relPath, content)
	if err != nil {
		w.logger.Error("page write failed",
			"relPath", relPath,
			"error", err,
		)
		return err
	}
	w.logger.Debug("page written",
		"relPath", relPath,
		"bytes", len(content),
		"duration", time.Since(begin),
	)
	return nil
}
