package docdex

import (
	"strings"
)

// Stage names used throughout the corpus. Auxiliary denotes supplementary
// narrative pages not tied to either stage's schema.
const (
	StageRuntime   = "runtime"
	StagePrototype = "prototype"
	StageAuxiliary = "auxiliary"
)

// Chunk is one retrievable, independently readable unit of the corpus,
// corresponding to a whole symbol or a single member of it. Chunks are created
// once by the renderer, appended once, and never mutated.
type Chunk struct {
	ID      string `json:"id"`
	Version string `json:"version"`
	Stage   string `json:"stage"`
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Member  string `json:"member,omitempty"`

	// RelPath is the version-root-relative path to the Markdown page and
	// Anchor the heading within it, when the chunk maps to a page section.
	RelPath string `json:"relPath,omitempty"`
	Anchor  string `json:"anchor,omitempty"`

	// Call-convention metadata for callable symbols.
	Call          string `json:"call,omitempty"`
	TakesTable    bool   `json:"takes_table,omitempty"`
	TableOptional bool   `json:"table_optional,omitempty"`

	Text string `json:"text"`
}

// ChunkID builds the stable chunk identifier:
// <version>/<stage>/<kind>/<name>[#<member>].
func ChunkID(version, stage, kind, name, member string) string {
	id := version + "/" + stage + "/" + kind + "/" + name
	if member != "" {
		id += "#" + member
	}
	return id
}

// IsChunkID reports whether s is shaped like a chunk identifier: at least four
// slash-separated segments with a three-part numeric version first.
func IsChunkID(s string) bool {
	parts := strings.SplitN(s, "/", 4)
	if len(parts) < 4 {
		return false
	}
	_, err := ParseVersion(parts[0])
	return err == nil
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.ID == "" {
		return Errorf(EINVALID, "chunk ID required")
	}
	if c.Version == "" {
		return Errorf(EINVALID, "chunk version required")
	}
	if c.Stage == "" {
		return Errorf(EINVALID, "chunk stage required")
	}
	if c.Kind == "" {
		return Errorf(EINVALID, "chunk kind required")
	}
	if c.Name == "" {
		return Errorf(EINVALID, "chunk name required")
	}
	return nil
}

// ChunkWriter appends chunk records to an output sequence.
type ChunkWriter interface {
	// WriteChunk appends a single chunk record. Records must be flushed by
	// Close before the corpus is read back.
	WriteChunk(chunk *Chunk) error

	// Close flushes buffered records and releases the underlying writer.
	Close() error
}

// PageWriter persists rendered Markdown pages.
type PageWriter interface {
	// WritePage writes a page at the given version-root-relative path.
	WritePage(relPath string, content string) error
}
