package main

import (
	"fmt"

	"github.com/fwojciec/texdex"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	svc := deps.Search
	if c.Limit > 0 && deps.NewSearch != nil {
		svc = deps.NewSearch(c.Limit)
	}

	result, err := svc.Search(deps.Ctx, c.Query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", texdex.ErrorMessage(err))
		return err
	}

	if len(result.Records) == 0 {
		fmt.Fprintln(deps.Stdout, "No results found.")
		return nil
	}

	for _, r := range result.Records {
		fmt.Fprintf(deps.Stdout, "%s  %s  (%s)\n", r.Title, r.URL, r.Source)
	}

	return nil
}
