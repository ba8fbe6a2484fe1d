package main

import (
	"context"
	"io"
	"log/slog"
)

// Dependencies holds configuration and services for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Build  BuildCmd  `cmd:"" help:"Transform vendor documents into a versioned docs tree"`
	Verify VerifyCmd `cmd:"" help:"Check a generated version for internal consistency"`
}

// BuildCmd is the "build" subcommand. Flags override config file values.
type BuildCmd struct {
	Config     string   `short:"c" help:"Path to a docgen.yaml config file" type:"path"`
	Runtime    string   `help:"Path to the runtime-stage JSON document" type:"path"`
	Prototype  string   `help:"Path to the prototype-stage JSON document" type:"path"`
	Aux        []string `help:"Auxiliary HTML pages (repeatable)" type:"path"`
	Out        string   `help:"Output docs root" type:"path"`
	DocVersion string   `name:"doc-version" help:"Version label for this build, e.g. 2.0.71"`
	Force      bool     `short:"f" help:"Overwrite an existing version directory"`
}

// VerifyCmd is the "verify" subcommand.
type VerifyCmd struct {
	Root    string `arg:"" help:"Docs root containing version directories" type:"path"`
	Version string `help:"Version to verify (default: latest present)"`
}
