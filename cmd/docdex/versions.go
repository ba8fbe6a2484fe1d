package main

import (
	"fmt"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/retrieve"
)

// Run executes the versions command.
func (c *VersionsCmd) Run(deps *Dependencies) error {
	versions, err := retrieve.Versions(deps.Root)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	if deps.JSON {
		return printJSON(deps, versions)
	}

	for _, v := range versions {
		fmt.Fprintln(deps.Stdout, v)
	}
	return nil
}
