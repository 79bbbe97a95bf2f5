package cli

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestCompleteSSLModes(t *testing.T) {
	cmd := &cobra.Command{}

	t.Run("returns all modes for empty input", func(t *testing.T) {
		completions, directive := completeSSLModes(cmd, nil, "")
		if len(completions) != len(sslModes) {
			t.Errorf("expected %d completions, got %d", len(sslModes), len(completions))
		}
		if directive != cobra.ShellCompDirectiveNoFileComp {
			t.Errorf("expected ShellCompDirectiveNoFileComp, got %v", directive)
		}
	})

	t.Run("filters by prefix", func(t *testing.T) {
		completions, _ := completeSSLModes(cmd, nil, "ver")
		if len(completions) != 2 {
			t.Errorf("expected 2 completions (verify-ca, verify-full), got %d", len(completions))
		}
		for _, c := range completions {
			if c != "verify-ca" && c != "verify-full" {
				t.Errorf("unexpected completion: %s", c)
			}
		}
	})

	t.Run("returns empty for non-matching prefix", func(t *testing.T) {
		completions, _ := completeSSLModes(cmd, nil, "xyz")
		if len(completions) != 0 {
			t.Errorf("expected 0 completions, got %d", len(completions))
		}
	})
}

func TestCompleteBackends(t *testing.T) {
	completions, _ := completeBackends(&cobra.Command{}, nil, "p")
	if len(completions) != 1 || completions[0] != "postgres" {
		t.Errorf("expected [postgres], got %v", completions)
	}
}

func TestCompleteDataDir(t *testing.T) {
	cmd := &cobra.Command{}

	t.Run("returns FilterDirs directive for first arg", func(t *testing.T) {
		_, directive := completeDataDir(cmd, nil, "")
		if directive != cobra.ShellCompDirectiveFilterDirs {
			t.Errorf("expected ShellCompDirectiveFilterDirs, got %v", directive)
		}
	})

	t.Run("returns NoFileComp when args already provided", func(t *testing.T) {
		_, directive := completeDataDir(cmd, []string{"./existing"}, "")
		if directive != cobra.ShellCompDirectiveNoFileComp {
			t.Errorf("expected ShellCompDirectiveNoFileComp, got %v", directive)
		}
	})
}

func TestStoreFlagsHaveCompletions(t *testing.T) {
	for _, cmd := range []*cobra.Command{ingestCmd, summaryCmd, tablesCmd} {
		for _, flag := range []string{"sslmode", "backend"} {
			if _, ok := cmd.GetFlagCompletionFunc(flag); !ok {
				t.Errorf("%s --%s has no completion", cmd.Name(), flag)
			}
		}
	}
}
