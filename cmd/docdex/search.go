package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/retrieve"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	hits, err := deps.Engine.Search(retrieve.Query{
		Text:    strings.Join(c.Query, " "),
		Stages:  splitFilter(c.Stage),
		Kinds:   splitFilter(c.Kind),
		Names:   splitFilter(c.Name),
		Members: splitFilter(c.Member),
		Limit:   c.Limit,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	if len(hits) == 0 {
		fmt.Fprintln(deps.Stderr, "no results")
		return docdex.Errorf(docdex.ENOTFOUND, "no results for %q", strings.Join(c.Query, " "))
	}

	if c.Open {
		return openTarget(deps, hits[0].ID)
	}

	if deps.JSON {
		return printJSON(deps, hits)
	}

	if c.PrintIDs {
		for _, hit := range hits {
			fmt.Fprintln(deps.Stdout, hit.ID)
		}
		return nil
	}

	for _, hit := range hits {
		fmt.Fprintf(deps.Stdout, "%3d  %s\n", hit.Score, hit.ID)
		if hit.RelPath != "" {
			loc := hit.RelPath
			if hit.Anchor != "" {
				loc += "#" + hit.Anchor
			}
			fmt.Fprintf(deps.Stdout, "     %s\n", loc)
		}
		if !c.Quiet && hit.Snippet != "" {
			fmt.Fprintf(deps.Stdout, "     %s\n", hit.Snippet)
		}
	}
	return nil
}

// splitFilter turns a comma-separated flag value into its parts.
func splitFilter(value string) []string {
	if value == "" {
		return nil
	}
	var parts []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func printJSON(deps *Dependencies, v any) error {
	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
