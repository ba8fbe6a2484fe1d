package main

import (
	"fmt"

	"github.com/fwojciec/docdex"
)

// Run executes the get command.
func (c *GetCmd) Run(deps *Dependencies) error {
	chunk, err := deps.Engine.Get(c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	if deps.JSON {
		return printJSON(deps, chunk)
	}

	fmt.Fprintln(deps.Stdout, chunk.Text)
	return nil
}
