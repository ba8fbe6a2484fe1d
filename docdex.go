// Package docdex turns a vendor's structured API description (a runtime-stage
// JSON document, a prototype-stage JSON document, and a directory of auxiliary
// HTML pages) into a versioned documentation tree: Markdown pages with internal
// cross-references rewritten into local links, a JSONL corpus of self-describing
// chunk records for retrieval, a symbols lookup table, and a manifest. A
// companion CLI queries the generated tree.
//
// This package contains domain types and pure algorithms following Ben
// Johnson's Standard Package Layout. Implementations live in subdirectories
// named after their primary dependency (e.g., fs/, goquery/, htmltomarkdown/)
// or their role (render/, retrieve/).
package docdex
