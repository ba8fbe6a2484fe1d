package main

import (
	"fmt"

	"github.com/fwojciec/docdex"
)

// Run executes the call command.
func (c *CallCmd) Run(deps *Dependencies) error {
	chunk, err := deps.Engine.Call(c.Target)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	if chunk.Call == "" {
		fmt.Fprintf(deps.Stderr, "error: %q is not callable\n", c.Target)
		return docdex.Errorf(docdex.ENOTFOUND, "no call convention recorded for %q", c.Target)
	}

	if deps.JSON {
		return printJSON(deps, struct {
			ID            string `json:"id"`
			Call          string `json:"call"`
			TakesTable    bool   `json:"takes_table"`
			TableOptional bool   `json:"table_optional"`
		}{ID: chunk.ID, Call: chunk.Call, TakesTable: chunk.TakesTable, TableOptional: chunk.TableOptional})
	}

	fmt.Fprintln(deps.Stdout, chunk.Call)
	if chunk.TakesTable {
		style := "Takes a table argument."
		if chunk.TableOptional {
			style += " The table may be omitted entirely."
		}
		fmt.Fprintln(deps.Stdout, style)
	}
	return nil
}
