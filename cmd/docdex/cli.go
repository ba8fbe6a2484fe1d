package main

import (
	"context"
	"io"

	"github.com/fwojciec/docdex/retrieve"
)

// Dependencies holds resolved configuration and services for command
// execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Root   string
	JSON   bool
	Engine *retrieve.Engine
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Root    string `help:"Docs root containing version directories (default: discovered below the working directory)" type:"path"`
	Version string `help:"Docs version to query (default: latest present)"`
	JSON    bool   `help:"Emit JSON instead of text"`

	Search   SearchCmd   `cmd:"" help:"Search the chunk corpus"`
	Get      GetCmd      `cmd:"" help:"Print one chunk by id"`
	Open     OpenCmd     `cmd:"" help:"Open a page, symbol, or chunk and print its Markdown"`
	Call     CallCmd     `cmd:"" help:"Show how to invoke a callable symbol"`
	Versions VersionsCmd `cmd:"" help:"List generated versions"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query    []string `arg:"" help:"Search terms"`
	Limit    int      `short:"n" default:"10" help:"Maximum number of hits"`
	Stage    string   `help:"Filter by stage (comma-separated)"`
	Kind     string   `help:"Filter by kind (comma-separated)"`
	Name     string   `help:"Filter by symbol name (comma-separated)"`
	Member   string   `help:"Filter by member name (comma-separated)"`
	PrintIDs bool     `name:"print-ids" help:"Print hit ids only"`
	Quiet    bool     `short:"q" help:"Omit snippets"`
	Open     bool     `help:"Open the top hit instead of listing"`
}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	ID string `arg:"" help:"Chunk id"`
}

// OpenCmd is the "open" subcommand.
type OpenCmd struct {
	Target string `arg:"" help:"Page path (with optional #anchor), symbol key, or chunk id"`
}

// CallCmd is the "call" subcommand.
type CallCmd struct {
	Target string `arg:"" help:"Chunk id or symbol key of a callable"`
}

// VersionsCmd is the "versions" subcommand.
type VersionsCmd struct{}
