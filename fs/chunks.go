package fs

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docdex"
)

// ChunksFile is the corpus file name under a version root.
const ChunksFile = "chunks.jsonl"

// Ensure ChunkWriter implements docdex.ChunkWriter at compile time.
var _ docdex.ChunkWriter = (*ChunkWriter)(nil)

// ChunkWriter appends chunk records to the corpus, one JSON object per line.
// The file is rebuilt wholesale on regeneration, never patched in place. A
// running xxhash digest of the written bytes is kept for the manifest.
type ChunkWriter struct {
	file   *os.File
	writer *bufio.Writer
	digest *xxhash.Digest
	count  int
}

// CreateChunks opens the corpus file for writing inside the store's pending
// output.
func (s *VersionStore) CreateChunks() (*ChunkWriter, error) {
	fullPath := filepath.Join(s.tempDir(), ChunksFile)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, err
	}
	f, err := os.Create(fullPath)
	if err != nil {
		return nil, err
	}
	return &ChunkWriter{
		file:   f,
		writer: bufio.NewWriter(f),
		digest: xxhash.New(),
	}, nil
}

// WriteChunk appends a single record.
func (w *ChunkWriter) WriteChunk(chunk *docdex.Chunk) error {
	if err := chunk.Validate(); err != nil {
		return err
	}
	line, err := json.Marshal(chunk)
	if err != nil {
		return err
	}
	line = append(line, '\n')
	if _, err := w.writer.Write(line); err != nil {
		return err
	}
	_, _ = w.digest.Write(line)
	w.count++
	return nil
}

// Count returns the number of records written so far.
func (w *ChunkWriter) Count() int {
	return w.count
}

// Checksum returns the hex digest of everything written so far.
func (w *ChunkWriter) Checksum() string {
	return fmt.Sprintf("xxh64:%016x", w.digest.Sum64())
}

// Close flushes buffered records and syncs the file, so a later read of the
// corpus is guaranteed consistent before the process reports success.
func (w *ChunkWriter) Close() error {
	if err := w.writer.Flush(); err != nil {
		return err
	}
	if err := w.file.Sync(); err != nil {
		return err
	}
	return w.file.Close()
}
