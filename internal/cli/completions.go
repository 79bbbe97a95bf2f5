package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// sslModes contains valid PostgreSQL SSL modes for shell completion.
var sslModes = []string{"disable", "allow", "prefer", "require", "verify-ca", "verify-full"}

// backends contains the store backend names for shell completion.
var backends = []string{"sqlite", "postgres"}

func completeFrom(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var matches []string
		for _, v := range values {
			if strings.HasPrefix(v, toComplete) {
				matches = append(matches, v)
			}
		}
		return matches, cobra.ShellCompDirectiveNoFileComp
	}
}

// completeSSLModes provides shell completion for SSL mode flag values.
var completeSSLModes = completeFrom(sslModes)

// completeBackends provides shell completion for --backend.
var completeBackends = completeFrom(backends)

// completeDataDir offers directories for the optional data_dir argument.
func completeDataDir(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveFilterDirs
}

// registerStoreCompletions attaches value completion to the store flags of cmd.
func registerStoreCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("sslmode", completeSSLModes)
	_ = cmd.RegisterFlagCompletionFunc("backend", completeBackends)
}
