package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/formpull"
)

// Run executes the get command.
func (c *GetCmd) Run(deps *Dependencies) error {
	result, err := deps.Extractor.Extract(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", formpull.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintln(deps.Stdout, formpull.FormatResult(result))
	return nil
}
