// Package mock provides hand-written mock implementations of docdex
// interfaces for tests.
package mock

import "github.com/fwojciec/docdex"

var _ docdex.ChunkWriter = (*ChunkWriter)(nil)

// ChunkWriter is a mock implementation of docdex.ChunkWriter. When WriteFn is
// nil, written chunks are recorded in Chunks.
type ChunkWriter struct {
	WriteFn func(chunk *docdex.Chunk) error
	CloseFn func() error

	Chunks []*docdex.Chunk
	Closed bool
}

func (w *ChunkWriter) WriteChunk(chunk *docdex.Chunk) error {
	if w.WriteFn != nil {
		return w.WriteFn(chunk)
	}
	w.Chunks = append(w.Chunks, chunk)
	return nil
}

func (w *ChunkWriter) Close() error {
	w.Closed = true
	if w.CloseFn != nil {
		return w.CloseFn()
	}
	return nil
}
