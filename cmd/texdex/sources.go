package main

import (
	"fmt"

	texdexyaml "github.com/fwojciec/texdex/yaml"
)

// Run executes the sources command.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	if c.YAML {
		return texdexyaml.EncodeSources(deps.Stdout, deps.Sources)
	}

	for _, s := range deps.Sources {
		fmt.Fprintf(deps.Stdout, "%s  %s\n", s.Name, s.Endpoint)
	}
	return nil
}
