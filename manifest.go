package docdex

import "time"

// StageCounts tallies symbols rendered for one stage.
type StageCounts struct {
	Classes         int `json:"classes,omitempty"`
	Concepts        int `json:"concepts,omitempty"`
	Events          int `json:"events,omitempty"`
	Defines         int `json:"defines,omitempty"`
	GlobalFunctions int `json:"global_functions,omitempty"`
	GlobalObjects   int `json:"global_objects,omitempty"`
	Prototypes      int `json:"prototypes,omitempty"`
	Types           int `json:"types,omitempty"`
}

// AuxiliaryCounts tallies converted auxiliary pages.
type AuxiliaryCounts struct {
	Pages int `json:"pages"`
}

// Counts aggregates the running counters accumulated while emitting chunks.
type Counts struct {
	Runtime   StageCounts     `json:"runtime"`
	Prototype StageCounts     `json:"prototype"`
	Auxiliary AuxiliaryCounts `json:"auxiliary"`
	Chunks    int             `json:"chunks"`
}

// Outputs lists the artifact paths recorded in the manifest, relative to the
// version root.
type Outputs struct {
	MarkdownRoot string `json:"markdown_root"`
	ChunksJSONL  string `json:"chunks_jsonl"`
}

// Manifest summarizes one generated version. The generation timestamp and
// build ID live only here, keeping the chunk corpus byte-identical across
// regenerations with identical inputs.
type Manifest struct {
	Version        string    `json:"version"`
	GeneratedAt    time.Time `json:"generated_at"`
	BuildID        string    `json:"build_id,omitempty"`
	Outputs        Outputs   `json:"outputs"`
	Counts         Counts    `json:"counts"`
	ChunksChecksum string    `json:"chunks_checksum,omitempty"`
}

// Symbol is one row of the symbols lookup table, keyed by the canonical
// "stage:kind:name[.member]" form. The table is sufficient to resolve a
// symbol to its page, anchor, and chunk ID without reading the corpus.
type Symbol struct {
	ID      string `json:"id"`
	Stage   string `json:"stage"`
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Member  string `json:"member,omitempty"`
	RelPath string `json:"relPath"`
	Anchor  string `json:"anchor,omitempty"`
}

// SymbolKey builds the canonical symbols-table key.
func SymbolKey(stage, kind, name, member string) string {
	key := stage + ":" + kind + ":" + name
	if member != "" {
		key += "." + member
	}
	return key
}
