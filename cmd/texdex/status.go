package main

import (
	"fmt"

	"github.com/fwojciec/texdex"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	status, err := deps.Search.Status(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", texdex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed entries: %d\n", status.IndexedEntries)
	return nil
}
