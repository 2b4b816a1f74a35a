package main

import (
	"fmt"

	"github.com/fwojciec/kitchensage"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	answer, err := deps.Asker.Ask(deps.Ctx, c.Plan, c.Question)
	if err != nil {
		if c.Plan != "" && kitchensage.ErrorCode(err) == kitchensage.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: %s. Use 'kitchensage plan list' to see available plans.\n", kitchensage.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", kitchensage.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
