package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docdex/retrieve"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// StartDir anchors docs-root discovery when --root is not given. Set
	// before calling Run().
	StartDir string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	return &Main{StartDir: dir}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docdex"),
		kong.Description("Query generated API documentation."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docdex --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	root := cli.Root
	if root == "" {
		root, err = retrieve.FindRoot(m.StartDir, retrieve.DefaultRootDepth)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: pass --root to point at a generated docs directory")
			return err
		}
	}
	deps.Root = root
	deps.JSON = cli.JSON

	// The versions command enumerates the root itself; every other command
	// operates on one resolved version.
	if kongCtx.Command() != "versions" {
		deps.Engine, err = retrieve.NewEngine(root, cli.Version)
		if err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}
