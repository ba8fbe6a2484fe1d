package main

import (
	"fmt"

	"github.com/fwojciec/docdex"
)

// Run executes the open command.
func (c *OpenCmd) Run(deps *Dependencies) error {
	return openTarget(deps, c.Target)
}

func openTarget(deps *Dependencies, target string) error {
	res, err := deps.Engine.Open(target)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	if deps.JSON {
		return printJSON(deps, struct {
			RelPath string `json:"relPath,omitempty"`
			Anchor  string `json:"anchor,omitempty"`
			Text    string `json:"text"`
		}{RelPath: res.RelPath, Anchor: res.Anchor, Text: res.Text})
	}

	fmt.Fprintln(deps.Stdout, res.Text)
	return nil
}
