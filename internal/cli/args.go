package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// OptionalDataDir accepts zero or one data_dir argument.
// Returns a helpful error message with usage and examples if there are more.
func OptionalDataDir(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf(`accepts at most 1 arg(s), received %d

Usage: %s

Example:
  %s ./data`, len(args), cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}
